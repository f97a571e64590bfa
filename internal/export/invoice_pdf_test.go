package export

import (
	"fmt"
	"testing"

	"github.com/fadilmartias/freelance-ledger/internal/config"
	"github.com/fadilmartias/freelance-ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInvoice(lines int) *dto.Invoice {
	inv := &dto.Invoice{
		Number:         "INV-202401-007",
		IssuedOn:       "2024-02-01",
		FreelancerName: "Asha Devi",
		DateRange:      dto.DateRange{Start: "2024-01-01", End: "2024-01-31"},
		TotalAmount:    decimal.Zero,
	}
	for i := 0; i < lines; i++ {
		payment := decimal.NewFromInt(1500)
		inv.Tasks = append(inv.Tasks, dto.InvoiceLine{
			Task:           fmt.Sprintf("Task %d with a fairly long description that needs truncating", i+1),
			Model:          "ASR",
			Language:       "Hindi",
			StartDate:      "2024-01-02",
			CompletionDate: "2024-01-03",
			PayRatePerDay:  decimal.NewFromInt(750),
			TotalTimeTaken: decimal.NewFromInt(2),
			TotalPayment:   payment,
		})
		inv.TotalAmount = inv.TotalAmount.Add(payment)
	}
	inv.Tax = inv.TotalAmount.Mul(TaxRate)
	inv.GrandTotal = inv.TotalAmount.Add(inv.Tax)
	return inv
}

func testCompany() config.CompanyConfig {
	return config.CompanyConfig{
		Name:    "BharatGen",
		Tagline: "Language Solutions",
		Email:   "accounts@example.com",
		Bank:    config.BankDetails{BankName: "State Bank", AccountNumber: "0001", IFSCCode: "SBIN0000001"},
	}
}

func TestRenderSinglePageInvoice(t *testing.T) {
	body, err := NewInvoicePDF(testCompany()).Render(sampleInvoice(3))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(body[:5]))

	_, pages, err := PreviewPNG(body)
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
}

func TestRenderBreaksLongTablesAcrossPages(t *testing.T) {
	body, err := NewInvoicePDF(testCompany()).Render(sampleInvoice(60))
	require.NoError(t, err)

	_, pages, err := PreviewPNG(body)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pages, 3)
}

func TestPreviewPNG(t *testing.T) {
	body, err := NewInvoicePDF(config.CompanyConfig{Name: "BharatGen"}).Render(sampleInvoice(1))
	require.NoError(t, err)

	png, pages, err := PreviewPNG(body)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(png[:4]))
	assert.Equal(t, 1, pages)
}

func TestInvoiceFilename(t *testing.T) {
	assert.Equal(t, "invoice-Asha-Devi-INV-202401-007.pdf", InvoiceFilename(sampleInvoice(0)))
}

func TestTaxPercent(t *testing.T) {
	assert.Equal(t, "18", TaxPercent())
}
