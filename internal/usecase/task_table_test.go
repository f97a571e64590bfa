package usecase

import (
	"fmt"
	"testing"
	"time"

	"github.com/fadilmartias/freelance-ledger/internal/dto"
	"github.com/fadilmartias/freelance-ledger/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paymentTasks(payments ...float64) []model.Task {
	tasks := make([]model.Task, len(payments))
	for i, p := range payments {
		tasks[i] = model.Task{FreelancerName: fmt.Sprintf("F%d", i), PayRatePerDay: p, TotalTimeTaken: 1}
	}
	return tasks
}

func payments(tasks []model.Task) []float64 {
	out := make([]float64, len(tasks))
	for i, t := range tasks {
		out[i] = t.TotalPayment()
	}
	return out
}

func TestNextSortTogglesSameField(t *testing.T) {
	state := NextSort(dto.SortState{}, FieldTotalPayment)
	assert.Equal(t, dto.SortState{Field: FieldTotalPayment}, state)

	state = NextSort(state, FieldTotalPayment)
	assert.Equal(t, dto.SortState{Field: FieldTotalPayment, Desc: true}, state)

	state = NextSort(state, "language")
	assert.Equal(t, dto.SortState{Field: "language"}, state, "a new column starts ascending")
}

func TestSortByTotalPaymentTwiceReverses(t *testing.T) {
	tasks := paymentTasks(50, 100)

	state := NextSort(dto.SortState{Field: "created_at", Desc: true}, FieldTotalPayment)
	asc, err := SortTasks(tasks, state)
	require.NoError(t, err)
	assert.Equal(t, []float64{50, 100}, payments(asc))

	desc, err := SortTasks(tasks, NextSort(state, FieldTotalPayment))
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 50}, payments(desc))
}

func TestSortStringsIgnoreCaseAndStayStable(t *testing.T) {
	tasks := []model.Task{
		{FreelancerName: "bala", Model: "1"},
		{FreelancerName: "Asha", Model: "2"},
		{FreelancerName: "asha", Model: "3"},
	}
	sorted, err := SortTasks(tasks, dto.SortState{Field: "freelancer_name"})
	require.NoError(t, err)
	assert.Equal(t, "2", sorted[0].Model)
	assert.Equal(t, "3", sorted[1].Model)
	assert.Equal(t, "1", sorted[2].Model)
	assert.Equal(t, "bala", tasks[0].FreelancerName, "input is not reordered")
}

func TestSortByTimestamp(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		{Model: "old", CreatedAt: base},
		{Model: "new", CreatedAt: base.Add(time.Hour)},
	}
	sorted, err := SortTasks(tasks, dto.SortState{Field: "created_at", Desc: true})
	require.NoError(t, err)
	assert.Equal(t, "new", sorted[0].Model)
}

func TestSortUnknownField(t *testing.T) {
	_, err := SortTasks(nil, dto.SortState{Field: "colour"})
	assert.ErrorIs(t, err, ErrUnknownSortField)
	assert.False(t, IsSortField("colour"))
	assert.True(t, IsSortField(FieldTotalPayment))
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0, 25))
	assert.Equal(t, 3, ClampPage(3, 25))
	assert.Equal(t, 3, ClampPage(7, 25))
	assert.Equal(t, 1, ClampPage(2, 10))
	assert.Equal(t, 1, ClampPage(4, 0))
}

func TestPaginate(t *testing.T) {
	tasks := paymentTasks(make([]float64, 23)...)

	rows, p := Paginate(tasks, 3)
	assert.Len(t, rows, 3)
	assert.Equal(t, 3, p.Page)
	assert.EqualValues(t, 3, p.TotalPages)
	assert.EqualValues(t, 23, p.TotalItems)
	assert.False(t, p.HasMore)
	assert.Equal(t, 21, p.From)
	assert.Equal(t, 23, p.To)

	rows, p = Paginate(tasks, 1)
	assert.Len(t, rows, PageSize)
	assert.True(t, p.HasMore)

	rows, p = Paginate(nil, 5)
	assert.Empty(t, rows)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 0, p.From)
}

func TestTableViewClampsAfterResultShrinks(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 25; i++ {
		env.addTask(t, taskInput("Asha", "Hindi", "2024-01-01", float64(100+i), 1))
	}
	view := NewTableView(env.cache)
	view.SetPage(3)
	rows, p, state, err := view.Page()
	require.NoError(t, err)
	assert.Len(t, rows, 5)
	assert.Equal(t, dto.SortState{Field: "created_at", Desc: true}, state)
	assert.Equal(t, 3, p.Page)

	env.cache.replace(env.cache.Tasks()[:12], dto.TaskFilter{})
	_, p, _, err = view.Page()
	require.NoError(t, err)
	assert.Equal(t, 2, p.Page)
}

func TestTableViewRowsCarryTotalPayment(t *testing.T) {
	env := newTestEnv(t)
	env.addTask(t, taskInput("Asha", "Hindi", "2024-01-01", 120, 2.5))

	rows, _, _, err := NewTableView(env.cache).Page()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 300.0, rows[0].TotalPayment)
}
