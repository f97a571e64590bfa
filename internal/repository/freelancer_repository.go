package repository

import (
	"context"
	"strings"
	"time"

	"github.com/fadilmartias/freelance-ledger/internal/model"
)

type FreelancerRepository struct {
	gw Gateway
}

func NewFreelancerRepository(gw Gateway) *FreelancerRepository {
	return &FreelancerRepository{gw}
}

func (r *FreelancerRepository) GetFreelancers(ctx context.Context) ([]model.Freelancer, error) {
	var freelancers []model.Freelancer
	err := r.gw.Select(ctx, TableFreelancers, Query{}.OrderBy("name", false), &freelancers)
	return freelancers, err
}

func (r *FreelancerRepository) FindFreelancerByID(ctx context.Context, id string) (*model.Freelancer, error) {
	var freelancers []model.Freelancer
	q := Query{Limit: 1}.Where(Eq("id", id))
	if err := r.gw.Select(ctx, TableFreelancers, q, &freelancers); err != nil {
		return nil, err
	}
	if len(freelancers) == 0 {
		return nil, ErrNotFound
	}
	return &freelancers[0], nil
}

// FindFreelancerByName matches name ignoring case. Rows the store matched
// through a wider pattern are discarded.
func (r *FreelancerRepository) FindFreelancerByName(ctx context.Context, name string) (*model.Freelancer, error) {
	var freelancers []model.Freelancer
	if err := r.gw.Select(ctx, TableFreelancers, Query{}.Where(ILike("name", name)), &freelancers); err != nil {
		return nil, err
	}
	for i := range freelancers {
		if strings.EqualFold(freelancers[i].Name, name) {
			return &freelancers[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *FreelancerRepository) CreateFreelancer(ctx context.Context, f *model.Freelancer) error {
	return r.gw.Insert(ctx, TableFreelancers, f)
}

func (r *FreelancerRepository) UpdateFreelancer(ctx context.Context, id string, fields map[string]any) (*model.Freelancer, error) {
	fields["updated_at"] = time.Now()
	var f model.Freelancer
	err := r.gw.Update(ctx, TableFreelancers, id, fields, &f)
	return &f, err
}

func (r *FreelancerRepository) DeleteFreelancer(ctx context.Context, id string) error {
	return r.gw.Delete(ctx, TableFreelancers, id)
}
