package dto

import (
	"github.com/fadilmartias/freelance-ledger/internal/model"
	"github.com/shopspring/decimal"
)

type ChartData struct {
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
}

type ChartSummary struct {
	Total   float64 `json:"total"`
	Highest float64 `json:"highest"`
	Average float64 `json:"average"`
}

type Chart struct {
	Dimension string       `json:"dimension"`
	Data      []ChartData  `json:"data"`
	Summary   ChartSummary `json:"summary"`
}

type SortState struct {
	Field string `json:"field"`
	Desc  bool   `json:"desc"`
}

type TaskRow struct {
	model.Task
	TotalPayment float64 `json:"total_payment"`
}

type InvoiceRequest struct {
	FreelancerName string    `json:"freelancer_name" validate:"required"`
	DateRange      DateRange `json:"date_range"`
}

type InvoiceLine struct {
	TaskGroup      string          `json:"task_group,omitempty"`
	Task           string          `json:"task"`
	Model          string          `json:"model"`
	Language       string          `json:"language"`
	StartDate      string          `json:"start_date"`
	CompletionDate string          `json:"completion_date"`
	PayRatePerDay  decimal.Decimal `json:"pay_rate_per_day"`
	TotalTimeTaken decimal.Decimal `json:"total_time_taken"`
	TotalPayment   decimal.Decimal `json:"total_payment"`
}

type Invoice struct {
	Number         string          `json:"invoice_number"`
	IssuedOn       string          `json:"issued_on"`
	FreelancerName string          `json:"freelancer_name"`
	DateRange      DateRange       `json:"date_range"`
	Tasks          []InvoiceLine   `json:"tasks"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Tax            decimal.Decimal `json:"tax"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
}
