package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sort"
	"strings"

	"github.com/fadilmartias/freelance-ledger/internal/dto"
	"github.com/fadilmartias/freelance-ledger/internal/model"
	"github.com/fadilmartias/freelance-ledger/internal/repository"
	"github.com/fadilmartias/freelance-ledger/internal/util"
	"github.com/lib/pq"
)

// LanguageCatalog is offered when a freelancer has no registered languages.
var LanguageCatalog = []string{
	"Assamese", "Bengali", "English", "Gujarati", "Hindi", "Kannada",
	"Maithili", "Malayalam", "Marathi", "Nepali", "Odia", "Punjabi",
	"Sanskrit", "Sindhi", "Tamil", "Telugu",
}

type FreelancerUsecase struct {
	freelancerRepo *repository.FreelancerRepository
	cache          *TaskCache
}

func NewFreelancerUsecase(freelancerRepo *repository.FreelancerRepository, cache *TaskCache) *FreelancerUsecase {
	return &FreelancerUsecase{freelancerRepo: freelancerRepo, cache: cache}
}

func (uc *FreelancerUsecase) Fetch(ctx context.Context) ([]model.Freelancer, error) {
	freelancers, err := uc.freelancerRepo.GetFreelancers(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch freelancers: %w", err)
	}
	return freelancers, nil
}

func (uc *FreelancerUsecase) Get(ctx context.Context, id string) (*model.Freelancer, error) {
	return uc.freelancerRepo.FindFreelancerByID(ctx, id)
}

// Add rejects names that already exist in any letter case. The lookup runs
// first, and a unique violation raised by the store for a concurrent insert
// maps to the same error.
func (uc *FreelancerUsecase) Add(ctx context.Context, input dto.FreelancerInput) (*model.Freelancer, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := util.ValidateStruct(input); err != nil {
		return nil, err
	}

	existing, err := uc.freelancerRepo.FindFreelancerByName(ctx, input.Name)
	switch {
	case err == nil:
		return existing, ErrDuplicateFreelancer
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("check freelancer name: %w", err)
	}

	f := model.Freelancer{
		Name:           input.Name,
		FreelancerType: optional(input.FreelancerType),
		Language:       pq.StringArray(dedupe(input.Language)),
	}
	if err := uc.freelancerRepo.CreateFreelancer(ctx, &f); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrDuplicateFreelancer
		}
		return nil, fmt.Errorf("add freelancer: %w", err)
	}
	log.Printf("freelancer %s added", f.Name)
	uc.cache.publish(Event{Type: EventFreelancersChange, ID: f.ID.String()})
	return &f, nil
}

func (uc *FreelancerUsecase) Update(ctx context.Context, id string, patch dto.FreelancerPatch) (*model.Freelancer, error) {
	if err := util.ValidateStruct(patch); err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		existing, err := uc.freelancerRepo.FindFreelancerByName(ctx, name)
		switch {
		case err == nil && existing.ID.String() != id:
			return nil, ErrDuplicateFreelancer
		case err != nil && !errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("check freelancer name: %w", err)
		}
		fields["name"] = name
	}
	if patch.FreelancerType != nil {
		fields["freelancer_type"] = optional(*patch.FreelancerType)
	}
	if patch.Language != nil {
		fields["language"] = pq.StringArray(dedupe(*patch.Language))
	}
	if len(fields) == 0 {
		return nil, util.NewFormError("nothing to update", map[string]string{})
	}
	f, err := uc.freelancerRepo.UpdateFreelancer(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrDuplicateFreelancer
		}
		return nil, fmt.Errorf("update freelancer %s: %w", id, err)
	}
	uc.cache.publish(Event{Type: EventFreelancersChange, ID: id})
	return f, nil
}

func (uc *FreelancerUsecase) Delete(ctx context.Context, id string) error {
	if err := uc.freelancerRepo.DeleteFreelancer(ctx, id); err != nil {
		return fmt.Errorf("delete freelancer %s: %w", id, err)
	}
	uc.cache.publish(Event{Type: EventFreelancersChange, ID: id})
	return nil
}

// AddLanguage registers a language on a freelancer and returns it so the
// caller can select it in the active form.
func (uc *FreelancerUsecase) AddLanguage(ctx context.Context, id string, input dto.LanguageInput) (string, *model.Freelancer, error) {
	input.Language = strings.TrimSpace(input.Language)
	if err := util.ValidateStruct(input); err != nil {
		return "", nil, err
	}
	f, err := uc.freelancerRepo.FindFreelancerByID(ctx, id)
	if err != nil {
		return "", nil, fmt.Errorf("find freelancer %s: %w", id, err)
	}
	langs := dedupe(append(slices.Clone([]string(f.Language)), input.Language))
	updated, err := uc.freelancerRepo.UpdateFreelancer(ctx, id, map[string]any{"language": pq.StringArray(langs)})
	if err != nil {
		return "", nil, fmt.Errorf("add language to %s: %w", id, err)
	}
	uc.cache.publish(Event{Type: EventFreelancersChange, ID: id})
	return input.Language, updated, nil
}

// Search filters freelancers by a case-insensitive substring of name, type or
// any language.
func Search(freelancers []model.Freelancer, query string) []model.Freelancer {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return freelancers
	}
	var out []model.Freelancer
	for _, f := range freelancers {
		if strings.Contains(strings.ToLower(f.Name), q) || strings.Contains(strings.ToLower(f.Type()), q) {
			out = append(out, f)
			continue
		}
		for _, l := range f.Language {
			if strings.Contains(strings.ToLower(l), q) {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

// Languages is the catalog plus any language registered on a freelancer.
func Languages(freelancers []model.Freelancer) []string {
	all := slices.Clone(LanguageCatalog)
	for _, f := range freelancers {
		all = append(all, f.Language...)
	}
	all = dedupe(all)
	sort.Strings(all)
	return all
}

func dedupe(values []string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[strings.ToLower(v)]; ok {
			continue
		}
		seen[strings.ToLower(v)] = struct{}{}
		out = append(out, v)
	}
	return out
}
