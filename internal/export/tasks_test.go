package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/fadilmartias/freelance-ledger/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleTasks() []model.Task {
	group := model.TaskGroupB
	status := model.TaskStatusCompleted
	created := time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)
	return []model.Task{
		{
			TaskGroup:       &group,
			TaskDescription: "Transcribe, then \"review\"\nsegments",
			Model:           "ASR",
			Language:        "Hindi",
			FreelancerName:  "Asha",
			FreelancerType:  model.FreelancerTypeLinguist,
			PayRatePerDay:   120,
			TotalTimeTaken:  2.5,
			StartDate:       "2024-01-01",
			CompletionDate:  "2024-01-03",
			TaskStatus:      &status,
			CreatedAt:       created,
		},
		{
			TaskDescription: "Label intents",
			Model:           "NLU",
			Language:        "Tamil",
			FreelancerName:  "Ravi",
			FreelancerType:  model.FreelancerTypeExpert,
			PayRatePerDay:   300,
			TotalTimeTaken:  1,
			StartDate:       "2024-01-05",
			CompletionDate:  "2024-01-05",
			CreatedAt:       created,
		},
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "freelancer-tasks-2024-05-06.csv", Filename(TasksFilePrefix, "csv", time.Date(2024, 5, 6, 23, 0, 0, 0, time.UTC)))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleTasks()))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Len(t, records[0], len(taskColumns))
	assert.Equal(t, "Total Payment (₹)", records[0][9])

	first := records[1]
	assert.Equal(t, "Group B", first[0])
	assert.Equal(t, "Transcribe, then \"review\"\nsegments", first[1])
	assert.Equal(t, "Completed", first[6])
	assert.Equal(t, "300", first[9])
	assert.Equal(t, "01/01/2024", first[10])
	assert.Equal(t, "02/01/2024 09:30:00", first[12])

	second := records[2]
	assert.Equal(t, "", second[0])
	assert.Equal(t, "Planned", second[6])

	assert.Contains(t, buf.String(), `"Transcribe, then ""review""`)
}

func TestWriteCSVPaymentHasNoFloatNoise(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []model.Task{{PayRatePerDay: 0.1, TotalTimeTaken: 3}}))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "0.3", records[1][9])
}

func TestSummarize(t *testing.T) {
	s := Summarize(append(sampleTasks(), model.Task{FreelancerName: "Asha", Language: "Hindi", PayRatePerDay: 0.5, TotalTimeTaken: 0.5}))
	assert.Equal(t, 3, s.TotalTasks)
	assert.Equal(t, "600.25", s.TotalPayment.String())
	assert.Equal(t, "4", s.TotalDays.String())
	assert.Equal(t, 2, s.UniqueFreelancers)
	assert.Equal(t, 2, s.UniqueLanguages)
}

func TestWriteExcel(t *testing.T) {
	body, err := ExcelBytes(sampleTasks(), time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{tasksSheet, summarySheet}, f.GetSheetList())

	rows, err := f.GetRows(tasksSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Task Group", rows[0][0])
	assert.Equal(t, "Ravi", rows[2][4])

	width, err := f.GetColWidth(tasksSheet, "B")
	require.NoError(t, err)
	assert.Equal(t, 40.0, width)

	summary, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Total Tasks", "2"}, summary[1])
	assert.Equal(t, []string{"Total Payment", "₹600.00"}, summary[2])
	assert.Equal(t, []string{"Export Date", "6/5/2024"}, summary[6])
}
