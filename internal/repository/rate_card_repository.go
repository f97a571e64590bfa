package repository

import (
	"context"
	"time"

	"github.com/fadilmartias/freelance-ledger/internal/model"
)

var rateCardConflict = []string{"freelancer_type", "group_type"}

type RateCardRepository struct {
	gw Gateway
}

func NewRateCardRepository(gw Gateway) *RateCardRepository {
	return &RateCardRepository{gw}
}

func (r *RateCardRepository) GetRates(ctx context.Context) ([]model.RateCard, error) {
	var rates []model.RateCard
	err := r.gw.Select(ctx, TableRateCard, Query{}, &rates)
	return rates, err
}

// UpsertRates writes all rows in a single request keyed by
// (freelancer_type, group_type).
func (r *RateCardRepository) UpsertRates(ctx context.Context, rates []model.RateCard) ([]model.RateCard, error) {
	now := time.Now()
	for i := range rates {
		rates[i].UpdatedAt = now
	}
	err := r.gw.Upsert(ctx, TableRateCard, &rates, rateCardConflict, []string{"rate", "updated_at"})
	return rates, err
}
