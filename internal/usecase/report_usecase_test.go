package usecase

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReportSortAndPage(t *testing.T) {
	env := newTestEnv(t)
	env.addTask(t, taskInput("Asha", "Hindi", "2024-01-01", 50, 1))
	env.addTask(t, taskInput("Ravi", "Tamil", "2024-01-01", 100, 1))

	_, err := env.reports.SortBy(FieldTotalPayment)
	require.NoError(t, err)
	rows, _, state, err := env.reports.Table()
	require.NoError(t, err)
	assert.False(t, state.Desc)
	assert.Equal(t, []float64{50, 100}, []float64{rows[0].TotalPayment, rows[1].TotalPayment})

	_, err = env.reports.SortBy(FieldTotalPayment)
	require.NoError(t, err)
	rows, _, state, err = env.reports.Table()
	require.NoError(t, err)
	assert.True(t, state.Desc)
	assert.Equal(t, []float64{100, 50}, []float64{rows[0].TotalPayment, rows[1].TotalPayment})

	_, err = env.reports.SortBy("nope")
	assert.ErrorIs(t, err, ErrUnknownSortField)
}

func TestReportCSVHasRowPerTask(t *testing.T) {
	env := newTestEnv(t)
	env.reports.now = func() time.Time { return time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC) }
	input := taskInput("Asha", "Hindi", "2024-01-01", 120, 2.5)
	input.TaskDescription = `Label "noisy", overlapping speech`
	env.addTask(t, input)
	env.addTask(t, taskInput("Ravi", "Tamil", "2024-01-01", 100, 1))

	name, body, err := env.reports.CSV()
	require.NoError(t, err)
	assert.Equal(t, "freelancer-tasks-2024-05-06.csv", name)

	records, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, `Label "noisy", overlapping speech`, records[2][1])
	assert.Equal(t, "300", records[2][9])
}

func TestReportExcelSheets(t *testing.T) {
	env := newTestEnv(t)
	env.reports.now = func() time.Time { return time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC) }
	env.addTask(t, taskInput("Asha", "Hindi", "2024-01-01", 120, 2.5))

	name, body, err := env.reports.Excel()
	require.NoError(t, err)
	assert.Equal(t, "freelancer-tasks-2024-05-06.xlsx", name)

	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Tasks", "Summary"}, f.GetSheetList())

	total, err := f.GetCellValue("Summary", "B3")
	require.NoError(t, err)
	assert.Equal(t, "₹300.00", total)
}

func TestReportChart(t *testing.T) {
	env := newTestEnv(t)
	env.addTask(t, taskInput("Asha", "Hindi", "2024-01-01", 100, 3))
	env.addTask(t, taskInput("Ravi", "Tamil", "2024-01-01", 350, 2))

	chart, err := env.reports.Chart(DimensionLanguage)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, chart.Summary.Total)
}
