package usecase

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/fadilmartias/freelance-ledger/internal/dto"
	"github.com/fadilmartias/freelance-ledger/internal/export"
	"github.com/fadilmartias/freelance-ledger/internal/model"
	"github.com/fadilmartias/freelance-ledger/internal/repository"
	"github.com/fadilmartias/freelance-ledger/internal/util"
	"github.com/shopspring/decimal"
)

// RandomInvoiceNumber builds INV-YYYYMM-### with a random suffix. Numbers are
// not checked for collisions.
func RandomInvoiceNumber(now time.Time) string {
	return fmt.Sprintf("INV-%s-%03d", now.Format("200601"), rand.IntN(1000))
}

type InvoiceUsecase struct {
	taskRepo *repository.TaskRepository
	pdf      *export.InvoicePDF
	number   func(time.Time) string
	now      func() time.Time

	mu      sync.RWMutex
	current *dto.Invoice
}

func NewInvoiceUsecase(taskRepo *repository.TaskRepository, pdf *export.InvoicePDF) *InvoiceUsecase {
	return &InvoiceUsecase{
		taskRepo: taskRepo,
		pdf:      pdf,
		number:   RandomInvoiceNumber,
		now:      time.Now,
	}
}

// WithNumberer replaces the invoice number generator.
func (uc *InvoiceUsecase) WithNumberer(number func(time.Time) string) *InvoiceUsecase {
	uc.number = number
	return uc
}

// Generate selects the freelancer's tasks contained in the date range and
// prices them. When nothing matches it returns ErrNoInvoiceTasks and the
// previously generated invoice stays current.
func (uc *InvoiceUsecase) Generate(ctx context.Context, req dto.InvoiceRequest) (*dto.Invoice, error) {
	if req.FreelancerName == "" || req.DateRange.Start == "" || req.DateRange.End == "" {
		return nil, ErrIncompleteSelection
	}
	if err := util.ValidateStruct(req); err != nil {
		return nil, err
	}

	q := repository.Query{}.
		Where(repository.Eq("freelancer_name", req.FreelancerName)).
		Where(repository.Gte("start_date", req.DateRange.Start)).
		Where(repository.Lte("completion_date", req.DateRange.End)).
		OrderBy("start_date", false).
		OrderBy("created_at", false)
	tasks, err := uc.taskRepo.FindTasks(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("select invoice tasks: %w", err)
	}
	if len(tasks) == 0 {
		return nil, ErrNoInvoiceTasks
	}

	now := uc.now()
	invoice := BuildInvoice(tasks, req, uc.number(now), now)
	uc.mu.Lock()
	uc.current = invoice
	uc.mu.Unlock()
	log.Printf("invoice %s generated for %s (%d tasks)", invoice.Number, invoice.FreelancerName, len(invoice.Tasks))
	return invoice, nil
}

func (uc *InvoiceUsecase) Current() *dto.Invoice {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.current
}

// PDF generates an invoice and renders it, returning the download filename.
func (uc *InvoiceUsecase) PDF(ctx context.Context, req dto.InvoiceRequest) (string, []byte, error) {
	invoice, err := uc.Generate(ctx, req)
	if err != nil {
		return "", nil, err
	}
	body, err := uc.pdf.Render(invoice)
	if err != nil {
		return "", nil, fmt.Errorf("render invoice %s: %w", invoice.Number, err)
	}
	return export.InvoiceFilename(invoice), body, nil
}

// Preview renders the first page of the invoice PDF as PNG, along with the
// PDF's page count.
func (uc *InvoiceUsecase) Preview(ctx context.Context, req dto.InvoiceRequest) ([]byte, int, error) {
	_, body, err := uc.PDF(ctx, req)
	if err != nil {
		return nil, 0, err
	}
	return export.PreviewPNG(body)
}

// BuildInvoice prices each task as rate × days and adds tax on the subtotal.
func BuildInvoice(tasks []model.Task, req dto.InvoiceRequest, number string, now time.Time) *dto.Invoice {
	invoice := &dto.Invoice{
		Number:         number,
		IssuedOn:       now.Format(util.DateLayout),
		FreelancerName: req.FreelancerName,
		DateRange:      req.DateRange,
		Tasks:          make([]dto.InvoiceLine, 0, len(tasks)),
		TotalAmount:    decimal.Zero,
	}
	for _, t := range tasks {
		payment := t.Payment()
		invoice.Tasks = append(invoice.Tasks, dto.InvoiceLine{
			TaskGroup:      t.Group(),
			Task:           t.TaskDescription,
			Model:          t.Model,
			Language:       t.Language,
			StartDate:      t.StartDate,
			CompletionDate: t.CompletionDate,
			PayRatePerDay:  decimal.NewFromFloat(t.PayRatePerDay),
			TotalTimeTaken: decimal.NewFromFloat(t.TotalTimeTaken),
			TotalPayment:   payment,
		})
		invoice.TotalAmount = invoice.TotalAmount.Add(payment)
	}
	invoice.Tax = invoice.TotalAmount.Mul(export.TaxRate)
	invoice.GrandTotal = invoice.TotalAmount.Add(invoice.Tax)
	return invoice
}
