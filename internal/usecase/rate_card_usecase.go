package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/fadilmartias/freelance-ledger/internal/dto"
	"github.com/fadilmartias/freelance-ledger/internal/model"
	"github.com/fadilmartias/freelance-ledger/internal/repository"
	"github.com/fadilmartias/freelance-ledger/internal/util"
)

type RateCardUsecase struct {
	rateRepo *repository.RateCardRepository
	cache    *TaskCache

	mu    sync.RWMutex
	rates dto.RateCardData
}

func NewRateCardUsecase(rateRepo *repository.RateCardRepository, cache *TaskCache) *RateCardUsecase {
	return &RateCardUsecase{rateRepo: rateRepo, cache: cache}
}

func (uc *RateCardUsecase) Fetch(ctx context.Context) (dto.RateCardData, error) {
	rows, err := uc.rateRepo.GetRates(ctx)
	if err != nil {
		return dto.RateCardData{}, fmt.Errorf("fetch rates: %w", err)
	}
	var data dto.RateCardData
	for _, r := range rows {
		if p := rateSlot(&data, r.FreelancerType, r.GroupType); p != nil {
			*p = r.Rate
		}
	}
	uc.mu.Lock()
	uc.rates = data
	uc.mu.Unlock()
	return data, nil
}

// Save upserts the four rate rows in one request. Either all rows are
// written or the whole save fails.
func (uc *RateCardUsecase) Save(ctx context.Context, data dto.RateCardData) (dto.RateCardData, error) {
	if err := util.ValidateStruct(data); err != nil {
		return dto.RateCardData{}, err
	}
	rows := []model.RateCard{
		{FreelancerType: model.FreelancerTypeLinguist, GroupType: model.TaskGroupA, Rate: data.LinguistGroupA},
		{FreelancerType: model.FreelancerTypeLinguist, GroupType: model.TaskGroupB, Rate: data.LinguistGroupB},
		{FreelancerType: model.FreelancerTypeExpert, GroupType: model.TaskGroupA, Rate: data.ExpertGroupA},
		{FreelancerType: model.FreelancerTypeExpert, GroupType: model.TaskGroupB, Rate: data.ExpertGroupB},
	}
	if _, err := uc.rateRepo.UpsertRates(ctx, rows); err != nil {
		return dto.RateCardData{}, fmt.Errorf("save rates: %w", err)
	}
	uc.mu.Lock()
	uc.rates = data
	uc.mu.Unlock()
	uc.cache.publish(Event{Type: EventRatesSaved})
	return data, nil
}

// Rates returns the last fetched or saved rates.
func (uc *RateCardUsecase) Rates() dto.RateCardData {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.rates
}

// Lookup returns the rate for a type and group, and false when either is
// unknown.
func (uc *RateCardUsecase) Lookup(freelancerType, group string) (float64, bool) {
	data := uc.Rates()
	p := rateSlot(&data, freelancerType, group)
	if p == nil {
		return 0, false
	}
	return *p, true
}

func rateSlot(data *dto.RateCardData, freelancerType, group string) *float64 {
	switch {
	case freelancerType == model.FreelancerTypeLinguist && group == model.TaskGroupA:
		return &data.LinguistGroupA
	case freelancerType == model.FreelancerTypeLinguist && group == model.TaskGroupB:
		return &data.LinguistGroupB
	case freelancerType == model.FreelancerTypeExpert && group == model.TaskGroupA:
		return &data.ExpertGroupA
	case freelancerType == model.FreelancerTypeExpert && group == model.TaskGroupB:
		return &data.ExpertGroupB
	}
	return nil
}
