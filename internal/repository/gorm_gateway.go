package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const pgUniqueViolation = "23505"

// GormGateway talks to the Postgres database behind the hosted service
// directly.
type GormGateway struct {
	db *gorm.DB
}

func NewGormGateway(db *gorm.DB) *GormGateway {
	return &GormGateway{db}
}

func (g *GormGateway) Select(ctx context.Context, table string, q Query, dest any) error {
	tx := ApplyQuery(g.db.WithContext(ctx).Table(table), q)
	return translateError(tx.Find(dest).Error)
}

func (g *GormGateway) Insert(ctx context.Context, table string, row any) error {
	return translateError(g.db.WithContext(ctx).Table(table).Create(row).Error)
}

func (g *GormGateway) Update(ctx context.Context, table string, id string, fields map[string]any, dest any) error {
	res := g.db.WithContext(ctx).Table(table).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return translateError(g.db.WithContext(ctx).Table(table).Where("id = ?", id).Take(dest).Error)
}

func (g *GormGateway) Delete(ctx context.Context, table string, id string) error {
	res := g.db.WithContext(ctx).Exec("DELETE FROM ? WHERE id = ?", clause.Table{Name: table}, id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormGateway) Upsert(ctx context.Context, table string, rows any, conflict []string, updateColumns []string) error {
	columns := make([]clause.Column, len(conflict))
	for i, c := range conflict {
		columns[i] = clause.Column{Name: c}
	}
	err := g.db.WithContext(ctx).Table(table).Clauses(clause.OnConflict{
		Columns:   columns,
		DoUpdates: clause.AssignmentColumns(updateColumns),
	}).Create(rows).Error
	return translateError(err)
}

// ApplyQuery renders the predicates of q as gorm conditions.
func ApplyQuery(tx *gorm.DB, q Query) *gorm.DB {
	for _, p := range q.Predicates {
		col := clause.Column{Name: p.Column}
		switch p.Op {
		case OpEq:
			tx = tx.Where(clause.Eq{Column: col, Value: p.Value})
		case OpILike:
			tx = tx.Where("? ILIKE ?", col, p.Value)
		case OpGte:
			tx = tx.Where(clause.Gte{Column: col, Value: p.Value})
		case OpLte:
			tx = tx.Where(clause.Lte{Column: col, Value: p.Value})
		case OpIn:
			values := make([]any, len(p.Values))
			for i, v := range p.Values {
				values[i] = v
			}
			tx = tx.Where(clause.IN{Column: col, Values: values})
		case OpSearch:
			pattern := "%" + p.Value + "%"
			exprs := make([]clause.Expression, len(p.Columns))
			for i, c := range p.Columns {
				exprs[i] = clause.Expr{SQL: "CAST(? AS TEXT) ILIKE ?", Vars: []any{clause.Column{Name: c}, pattern}}
			}
			tx = tx.Where(clause.Or(exprs...))
		}
	}
	for _, o := range q.Orders {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Column}, Desc: o.Desc})
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	return tx
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s", ErrUniqueViolation, pgErr.Message)
	}
	return err
}
