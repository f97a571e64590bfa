package usecase

import (
	"bytes"
	"fmt"
	"time"

	"github.com/fadilmartias/freelance-ledger/internal/dto"
	"github.com/fadilmartias/freelance-ledger/internal/export"
	"github.com/fadilmartias/freelance-ledger/internal/response"
)

// ReportUsecase renders the cached task list as a table, charts and
// downloadable files.
type ReportUsecase struct {
	cache *TaskCache
	table *TableView
	now   func() time.Time
}

func NewReportUsecase(cache *TaskCache) *ReportUsecase {
	return &ReportUsecase{cache: cache, table: NewTableView(cache), now: time.Now}
}

func (uc *ReportUsecase) Table() ([]dto.TaskRow, *response.Pagination, dto.SortState, error) {
	return uc.table.Page()
}

func (uc *ReportUsecase) SortBy(field string) (dto.SortState, error) {
	return uc.table.SortBy(field)
}

func (uc *ReportUsecase) SetPage(page int) {
	uc.table.SetPage(page)
}

func (uc *ReportUsecase) Chart(dimension string) (dto.Chart, error) {
	return Expenditure(uc.cache.Tasks(), dimension)
}

// CSV exports every cached task in table order.
func (uc *ReportUsecase) CSV() (string, []byte, error) {
	tasks, _, err := uc.table.Sorted()
	if err != nil {
		return "", nil, err
	}
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, tasks); err != nil {
		return "", nil, fmt.Errorf("write csv: %w", err)
	}
	return export.Filename(export.TasksFilePrefix, "csv", uc.now()), buf.Bytes(), nil
}

func (uc *ReportUsecase) Excel() (string, []byte, error) {
	tasks, _, err := uc.table.Sorted()
	if err != nil {
		return "", nil, err
	}
	now := uc.now()
	body, err := export.ExcelBytes(tasks, now)
	if err != nil {
		return "", nil, fmt.Errorf("write workbook: %w", err)
	}
	return export.Filename(export.TasksFilePrefix, "xlsx", now), body, nil
}
