package usecase

import (
	"context"
	"errors"
	"slices"

	"github.com/fadilmartias/freelance-ledger/internal/dto"
	"github.com/fadilmartias/freelance-ledger/internal/model"
	"github.com/fadilmartias/freelance-ledger/internal/repository"
	"github.com/fadilmartias/freelance-ledger/internal/util"
)

// TaskFormUsecase computes the dependent fields of the task form.
type TaskFormUsecase struct {
	rates          *RateCardUsecase
	freelancerRepo *repository.FreelancerRepository
}

func NewTaskFormUsecase(rates *RateCardUsecase, freelancerRepo *repository.FreelancerRepository) *TaskFormUsecase {
	return &TaskFormUsecase{rates: rates, freelancerRepo: freelancerRepo}
}

func (uc *TaskFormUsecase) Derive(ctx context.Context, draft dto.TaskDraft) (dto.DerivedFields, error) {
	if _, err := uc.rates.Fetch(ctx); err != nil {
		return dto.DerivedFields{}, err
	}
	var freelancer *model.Freelancer
	if draft.FreelancerName != "" {
		f, err := uc.freelancerRepo.FindFreelancerByName(ctx, draft.FreelancerName)
		switch {
		case err == nil:
			freelancer = f
		case !errors.Is(err, repository.ErrNotFound):
			return dto.DerivedFields{}, err
		}
	}
	return DeriveFields(draft, uc.rates.Lookup, freelancer), nil
}

// DeriveFields fills the completion date, the rate card rate and the
// language choice for a draft.
//
// A rate card rate replaces the manual rate whenever both freelancer type and
// task group are set. Once either is cleared a card-filled rate resets to 0.
func DeriveFields(draft dto.TaskDraft, lookup func(freelancerType, group string) (float64, bool), freelancer *model.Freelancer) dto.DerivedFields {
	out := dto.DerivedFields{
		PayRatePerDay: draft.PayRatePerDay,
		Language:      draft.Language,
	}

	if draft.StartDate != "" && draft.TotalTimeTaken > 0 {
		if completion, err := util.CompletionDate(draft.StartDate, draft.TotalTimeTaken); err == nil {
			out.CompletionDate = completion
		}
	}

	freelancerType := draft.FreelancerType
	if freelancerType == "" && freelancer != nil {
		freelancerType = freelancer.Type()
	}
	if freelancerType != "" && draft.TaskGroup != "" {
		if rate, ok := lookup(freelancerType, draft.TaskGroup); ok {
			out.PayRatePerDay = rate
			out.RateFromCard = true
		}
	} else if draft.RateFromCard {
		out.PayRatePerDay = 0
	}
	out.TotalPayment = out.PayRatePerDay * draft.TotalTimeTaken

	out.LanguageOptions = LanguageCatalog
	if freelancer != nil && len(freelancer.Language) > 0 {
		out.LanguageOptions = []string(freelancer.Language)
		switch len(freelancer.Language) {
		case 1:
			out.Language = freelancer.Language[0]
			out.LanguageLocked = true
		default:
			if !slices.Contains(out.LanguageOptions, out.Language) {
				out.Language = ""
			}
		}
	}
	return out
}
