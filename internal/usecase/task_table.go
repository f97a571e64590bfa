package usecase

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fadilmartias/freelance-ledger/internal/dto"
	"github.com/fadilmartias/freelance-ledger/internal/model"
	"github.com/fadilmartias/freelance-ledger/internal/response"
)

const (
	PageSize          = 10
	FieldTotalPayment = "total_payment"
)

var taskStringFields = map[string]func(model.Task) string{
	"id":               func(t model.Task) string { return t.ID.String() },
	"task_group":       func(t model.Task) string { return t.Group() },
	"task_description": func(t model.Task) string { return t.TaskDescription },
	"model":            func(t model.Task) string { return t.Model },
	"language":         func(t model.Task) string { return t.Language },
	"freelancer_name":  func(t model.Task) string { return t.FreelancerName },
	"freelancer_type":  func(t model.Task) string { return t.FreelancerType },
	"start_date":       func(t model.Task) string { return t.StartDate },
	"completion_date":  func(t model.Task) string { return t.CompletionDate },
	"task_status":      func(t model.Task) string { return t.Status() },
}

var taskNumberFields = map[string]func(model.Task) float64{
	"pay_rate_per_day": func(t model.Task) float64 { return t.PayRatePerDay },
	"total_time_taken": func(t model.Task) float64 { return t.TotalTimeTaken },
	FieldTotalPayment:  func(t model.Task) float64 { return t.TotalPayment() },
}

var taskTimeFields = map[string]func(model.Task) time.Time{
	"created_at": func(t model.Task) time.Time { return t.CreatedAt },
	"updated_at": func(t model.Task) time.Time { return t.UpdatedAt },
}

func IsSortField(field string) bool {
	_, s := taskStringFields[field]
	_, n := taskNumberFields[field]
	_, t := taskTimeFields[field]
	return s || n || t
}

// NextSort is the state after clicking the header of field: the same column
// flips direction, a new column starts ascending.
func NextSort(current dto.SortState, field string) dto.SortState {
	if current.Field == field {
		return dto.SortState{Field: field, Desc: !current.Desc}
	}
	return dto.SortState{Field: field}
}

// SortTasks returns a stably sorted copy. Strings compare case-insensitively.
func SortTasks(tasks []model.Task, state dto.SortState) ([]model.Task, error) {
	compare, err := comparator(state.Field)
	if err != nil {
		return nil, err
	}
	sorted := slices.Clone(tasks)
	slices.SortStableFunc(sorted, func(a, b model.Task) int {
		c := compare(a, b)
		if state.Desc {
			return -c
		}
		return c
	})
	return sorted, nil
}

func comparator(field string) (func(a, b model.Task) int, error) {
	if get, ok := taskStringFields[field]; ok {
		return func(a, b model.Task) int {
			return strings.Compare(strings.ToLower(get(a)), strings.ToLower(get(b)))
		}, nil
	}
	if get, ok := taskNumberFields[field]; ok {
		return func(a, b model.Task) int { return cmp.Compare(get(a), get(b)) }, nil
	}
	if get, ok := taskTimeFields[field]; ok {
		return func(a, b model.Task) int { return get(a).Compare(get(b)) }, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownSortField, field)
}

// ClampPage keeps page within 1..totalPages (1 when there are no rows).
func ClampPage(page, totalItems int) int {
	totalPages := (totalItems + PageSize - 1) / PageSize
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

func Paginate(tasks []model.Task, page int) ([]dto.TaskRow, *response.Pagination) {
	page = ClampPage(page, len(tasks))
	start := (page - 1) * PageSize
	end := min(start+PageSize, len(tasks))

	rows := make([]dto.TaskRow, 0, end-start)
	for _, t := range tasks[start:end] {
		rows = append(rows, dto.TaskRow{Task: t, TotalPayment: t.TotalPayment()})
	}
	return rows, response.NewPagination(page, PageSize, len(tasks))
}

// TableView is the sort and page state of the task table, applied to the
// cached task list.
type TableView struct {
	mu    sync.Mutex
	cache *TaskCache
	sort  dto.SortState
	page  int
}

func NewTableView(cache *TaskCache) *TableView {
	return &TableView{
		cache: cache,
		sort:  dto.SortState{Field: "created_at", Desc: true},
		page:  1,
	}
}

func (v *TableView) SortBy(field string) (dto.SortState, error) {
	if !IsSortField(field) {
		return dto.SortState{}, fmt.Errorf("%w: %s", ErrUnknownSortField, field)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sort = NextSort(v.sort, field)
	return v.sort, nil
}

func (v *TableView) SetPage(page int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.page = page
}

// Sorted returns every cached task in table order.
func (v *TableView) Sorted() ([]model.Task, dto.SortState, error) {
	v.mu.Lock()
	state := v.sort
	v.mu.Unlock()
	sorted, err := SortTasks(v.cache.Tasks(), state)
	return sorted, state, err
}

// Page renders the current page, clamping the stored page index to the
// current result size.
func (v *TableView) Page() ([]dto.TaskRow, *response.Pagination, dto.SortState, error) {
	sorted, state, err := v.Sorted()
	if err != nil {
		return nil, nil, state, err
	}
	v.mu.Lock()
	v.page = ClampPage(v.page, len(sorted))
	page := v.page
	v.mu.Unlock()
	rows, pagination := Paginate(sorted, page)
	return rows, pagination, state, nil
}
