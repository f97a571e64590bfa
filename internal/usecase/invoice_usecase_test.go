package usecase

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/fadilmartias/freelance-ledger/internal/dto"
	"github.com/fadilmartias/freelance-ledger/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func januaryInvoice(name string) dto.InvoiceRequest {
	return dto.InvoiceRequest{
		FreelancerName: name,
		DateRange:      dto.DateRange{Start: "2024-01-01", End: "2024-01-31"},
	}
}

func TestRandomInvoiceNumberFormat(t *testing.T) {
	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^INV-202403-\d{3}$`)
	for i := 0; i < 50; i++ {
		assert.Regexp(t, pattern, RandomInvoiceNumber(now))
	}
}

func TestGenerateSelectsContainedTasks(t *testing.T) {
	env := newTestEnv(t)
	env.addTask(t, taskInput("Asha", "Hindi", "2024-01-10", 100, 2))
	env.addTask(t, taskInput("Asha", "Tamil", "2024-01-02", 150, 1))
	env.addTask(t, taskInput("Asha", "Hindi", "2024-01-30", 100, 5)) // ends in February
	env.addTask(t, taskInput("Ravi", "Hindi", "2024-01-10", 100, 2))
	env.addTask(t, taskInput("asha", "Hindi", "2024-01-10", 100, 2))

	invoice, err := env.invoices.Generate(context.Background(), januaryInvoice("Asha"))
	require.NoError(t, err)

	require.Len(t, invoice.Tasks, 2)
	assert.Equal(t, "2024-01-02", invoice.Tasks[0].StartDate, "ordered by start date")
	assert.Equal(t, "350", invoice.TotalAmount.String())
	assert.Equal(t, "63", invoice.Tax.String())
	assert.Equal(t, "413", invoice.GrandTotal.String())
	assert.Regexp(t, `^INV-\d{6}-042$`, invoice.Number)
	assert.Same(t, invoice, env.invoices.Current())
}

func TestGenerateWithNoTasksKeepsCurrentInvoice(t *testing.T) {
	env := newTestEnv(t)
	env.addTask(t, taskInput("Asha", "Hindi", "2024-01-10", 100, 2))

	first, err := env.invoices.Generate(context.Background(), januaryInvoice("Asha"))
	require.NoError(t, err)

	_, err = env.invoices.Generate(context.Background(), januaryInvoice("Ravi"))
	assert.ErrorIs(t, err, ErrNoInvoiceTasks)
	assert.Same(t, first, env.invoices.Current())
}

func TestGenerateRequiresFullSelection(t *testing.T) {
	env := newTestEnv(t)
	req := januaryInvoice("Asha")
	req.DateRange.End = ""

	_, err := env.invoices.Generate(context.Background(), req)
	assert.ErrorIs(t, err, ErrIncompleteSelection)
	assert.Nil(t, env.invoices.Current())
}

func TestBuildInvoiceUsesExactDecimalArithmetic(t *testing.T) {
	tasks := []model.Task{
		{TaskDescription: "a", PayRatePerDay: 0.1, TotalTimeTaken: 3},
		{TaskDescription: "b", PayRatePerDay: 1234.5, TotalTimeTaken: 2.5},
	}
	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	invoice := BuildInvoice(tasks, januaryInvoice("Asha"), "INV-202402-001", now)

	assert.Equal(t, "0.3", invoice.Tasks[0].TotalPayment.String())
	assert.Equal(t, "3086.55", invoice.TotalAmount.String())
	assert.Equal(t, "555.579", invoice.Tax.String())
	assert.Equal(t, "3642.129", invoice.GrandTotal.String())
	assert.Equal(t, "2024-02-01", invoice.IssuedOn)
}

func TestInvoicePDF(t *testing.T) {
	env := newTestEnv(t)
	env.addTask(t, taskInput("Asha Devi", "Hindi", "2024-01-10", 100, 2))

	name, body, err := env.invoices.PDF(context.Background(), januaryInvoice("Asha Devi"))
	require.NoError(t, err)
	assert.Regexp(t, `^invoice-Asha-Devi-INV-\d{6}-042\.pdf$`, name)
	assert.True(t, len(body) > 4 && string(body[:5]) == "%PDF-")
}
