package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fadilmartias/freelance-ledger/internal/model"
	"github.com/fadilmartias/freelance-ledger/internal/util"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	TasksFilePrefix = "freelancer-tasks"
	tasksSheet      = "Tasks"
	summarySheet    = "Summary"
)

var taskColumns = []struct {
	header string
	width  float64
}{
	{"Task Group", 20},
	{"Task Description", 40},
	{"Model", 12},
	{"Language", 15},
	{"Freelancer Name", 20},
	{"Freelancer Type", 15},
	{"Task Status", 12},
	{"Pay Rate (₹/day)", 15},
	{"Total Days", 12},
	{"Total Payment (₹)", 15},
	{"Start Date", 12},
	{"Completion Date", 15},
	{"Created At", 12},
}

// Filename is prefix-YYYY-MM-DD.ext for the export day.
func Filename(prefix, ext string, now time.Time) string {
	return fmt.Sprintf("%s-%s.%s", prefix, now.Format(util.DateLayout), ext)
}

// WriteCSV writes one row per task. Fields holding commas, quotes or newlines
// are quoted with doubled inner quotes.
func WriteCSV(w io.Writer, tasks []model.Task) error {
	cw := csv.NewWriter(w)
	headers := make([]string, len(taskColumns))
	for i, c := range taskColumns {
		headers[i] = c.header
	}
	if err := cw.Write(headers); err != nil {
		return err
	}
	for _, t := range tasks {
		if err := cw.Write(csvRecord(t)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRecord(t model.Task) []string {
	return []string{
		t.Group(),
		t.TaskDescription,
		t.Model,
		t.Language,
		t.FreelancerName,
		t.FreelancerType,
		t.Status(),
		formatNumber(t.PayRatePerDay),
		formatNumber(t.TotalTimeTaken),
		t.Payment().String(),
		util.FormatDate(t.StartDate, "02/01/2006"),
		util.FormatDate(t.CompletionDate, "02/01/2006"),
		t.CreatedAt.Format("02/01/2006 15:04:05"),
	}
}

// Summary holds the counts and totals of the Summary sheet.
type Summary struct {
	TotalTasks        int
	TotalPayment      decimal.Decimal
	TotalDays         decimal.Decimal
	UniqueFreelancers int
	UniqueLanguages   int
}

func Summarize(tasks []model.Task) Summary {
	s := Summary{TotalTasks: len(tasks), TotalPayment: decimal.Zero, TotalDays: decimal.Zero}
	freelancers := map[string]struct{}{}
	languages := map[string]struct{}{}
	for _, t := range tasks {
		s.TotalPayment = s.TotalPayment.Add(t.Payment())
		s.TotalDays = s.TotalDays.Add(decimal.NewFromFloat(t.TotalTimeTaken))
		freelancers[t.FreelancerName] = struct{}{}
		languages[t.Language] = struct{}{}
	}
	s.UniqueFreelancers = len(freelancers)
	s.UniqueLanguages = len(languages)
	return s
}

// WriteExcel builds a workbook with a Tasks sheet and a Summary sheet.
func WriteExcel(w io.Writer, tasks []model.Task, now time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", tasksSheet); err != nil {
		return err
	}
	header := make([]any, len(taskColumns))
	for i, c := range taskColumns {
		header[i] = c.header
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(tasksSheet, col, col, c.width); err != nil {
			return err
		}
	}
	if err := f.SetSheetRow(tasksSheet, "A1", &header); err != nil {
		return err
	}
	for i, t := range tasks {
		row := []any{
			t.Group(),
			t.TaskDescription,
			t.Model,
			t.Language,
			t.FreelancerName,
			t.FreelancerType,
			t.Status(),
			t.PayRatePerDay,
			t.TotalTimeTaken,
			t.TotalPayment(),
			util.FormatDate(t.StartDate, "2/1/2006"),
			util.FormatDate(t.CompletionDate, "2/1/2006"),
			t.CreatedAt.Format("2/1/2006"),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(tasksSheet, cell, &row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	s := Summarize(tasks)
	summary := [][]any{
		{"Metric", "Value"},
		{"Total Tasks", s.TotalTasks},
		{"Total Payment", "₹" + s.TotalPayment.StringFixed(2)},
		{"Total Days", s.TotalDays.StringFixed(2)},
		{"Unique Freelancers", s.UniqueFreelancers},
		{"Unique Languages", s.UniqueLanguages},
		{"Export Date", now.Format("2/1/2006")},
	}
	for i, row := range summary {
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 20); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "B", "B", 30); err != nil {
		return err
	}

	_, err := f.WriteTo(w)
	return err
}

// ExcelBytes is WriteExcel into memory.
func ExcelBytes(tasks []model.Task, now time.Time) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteExcel(&buf, tasks, now); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
