package repository

import (
	"context"
	"errors"
)

const (
	TableTasks       = "master"
	TableFreelancers = "freelancers"
	TableRateCard    = "rate_card"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrUniqueViolation = errors.New("unique constraint violated")
)

// Gateway issues single CRUD requests against the hosted tables. Rows passed
// to Insert and Upsert are pointers and are overwritten with the stored
// representation.
type Gateway interface {
	Select(ctx context.Context, table string, q Query, dest any) error
	Insert(ctx context.Context, table string, row any) error
	Update(ctx context.Context, table string, id string, fields map[string]any, dest any) error
	Delete(ctx context.Context, table string, id string) error
	Upsert(ctx context.Context, table string, rows any, conflict []string, updateColumns []string) error
}
