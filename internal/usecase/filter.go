package usecase

import (
	"strings"

	"github.com/fadilmartias/freelance-ledger/internal/dto"
	"github.com/fadilmartias/freelance-ledger/internal/repository"
)

// searchColumns are matched by the free-text search box.
var searchColumns = []string{
	"task_description",
	"task_group",
	"model",
	"language",
	"freelancer_name",
	"freelancer_type",
	"task_status",
}

// BuildTaskQuery translates the dashboard filter into data service
// predicates. The date range bounds start_date and completion_date
// independently, so only tasks contained in the range match.
func BuildTaskQuery(f dto.TaskFilter) repository.Query {
	q := repository.Query{}
	if f.DateRange.Start != "" {
		q = q.Where(repository.Gte("start_date", f.DateRange.Start))
	}
	if f.DateRange.End != "" {
		q = q.Where(repository.Lte("completion_date", f.DateRange.End))
	}
	sets := []struct {
		column string
		values []string
	}{
		{"freelancer_name", f.FreelancerNames},
		{"language", f.Languages},
		{"model", f.Models},
		{"freelancer_type", f.FreelancerTypes},
		{"task_status", f.Statuses},
	}
	for _, s := range sets {
		if values := nonEmpty(s.values); len(values) > 0 {
			q = q.Where(repository.In(s.column, values))
		}
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		q = q.Where(repository.Search(term, searchColumns...))
	}
	return q.OrderBy("created_at", true)
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
