package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/fadilmartias/freelance-ledger/internal/config"
	"github.com/fadilmartias/freelance-ledger/internal/dto"
	"github.com/fadilmartias/freelance-ledger/internal/export"
	"github.com/fadilmartias/freelance-ledger/internal/model"
	"github.com/fadilmartias/freelance-ledger/internal/repository"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	gw          *repository.MemoryGateway
	cache       *TaskCache
	tasks       *TaskUsecase
	freelancers *FreelancerUsecase
	rates       *RateCardUsecase
	form        *TaskFormUsecase
	reports     *ReportUsecase
	invoices    *InvoiceUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gw := repository.NewMemoryGateway()
	taskRepo := repository.NewTaskRepository(gw)
	freelancerRepo := repository.NewFreelancerRepository(gw)
	cache := NewTaskCache()
	rates := NewRateCardUsecase(repository.NewRateCardRepository(gw), cache)
	invoices := NewInvoiceUsecase(taskRepo, export.NewInvoicePDF(config.CompanyConfig{Name: "BharatGen"})).
		WithNumberer(func(now time.Time) string { return "INV-" + now.Format("200601") + "-042" })
	return &testEnv{
		gw:          gw,
		cache:       cache,
		tasks:       NewTaskUsecase(taskRepo, cache),
		freelancers: NewFreelancerUsecase(freelancerRepo, cache),
		rates:       rates,
		form:        NewTaskFormUsecase(rates, freelancerRepo),
		reports:     NewReportUsecase(cache),
		invoices:    invoices,
	}
}

func taskInput(name, language, start string, rate, days float64) dto.TaskInput {
	return dto.TaskInput{
		TaskGroup:       model.TaskGroupA,
		TaskDescription: "Transcribe " + language + " audio",
		Model:           "ASR",
		Language:        language,
		FreelancerName:  name,
		FreelancerType:  model.FreelancerTypeLinguist,
		PayRatePerDay:   rate,
		TotalTimeTaken:  days,
		StartDate:       start,
	}
}

func (e *testEnv) addTask(t *testing.T, input dto.TaskInput) *model.Task {
	t.Helper()
	task, err := e.tasks.Add(context.Background(), input)
	require.NoError(t, err)
	return task
}

func ptr[T any](v T) *T {
	return &v
}
