package services

import (
	"context"
	"errors"
	"strings"

	"SchemePortalAPI/internal/model"
	"SchemePortalAPI/internal/repository"
)

type FundService struct {
	Repo *repository.FundRepository
}

func NewFundService(r *repository.FundRepository) *FundService {
	return &FundService{Repo: r}
}

func (s *FundService) Create(ctx context.Context, f *model.FundAllocation) (int64, error) {
	f.SchemeName = strings.TrimSpace(f.SchemeName)
	if f.SchemeName == "" {
		return 0, errors.New("scheme name is required")
	}
	if f.FiscalYear == "" {
		return 0, errors.New("fiscal year is required")
	}
	if f.District == "" {
		return 0, errors.New("district is required")
	}
	if f.Allocated < 0 || f.Utilized < 0 {
		return 0, errors.New("amounts cannot be negative")
	}
	if f.Utilized > f.Allocated {
		return 0, errors.New("utilized cannot exceed allocated")
	}
	return s.Repo.Create(ctx, f)
}

func (s *FundService) Get(ctx context.Context, id int64) (*model.FundAllocation, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *FundService) List(ctx context.Context, scheme string) ([]model.FundAllocation, error) {
	if scheme != "" {
		return s.Repo.ListByScheme(ctx, scheme)
	}
	return s.Repo.List(ctx)
}

func (s *FundService) UpdateAmounts(ctx context.Context, id int64, allocated, utilized float64) error {
	if allocated < 0 || utilized < 0 {
		return errors.New("amounts cannot be negative")
	}
	if utilized > allocated {
		return errors.New("utilized cannot exceed allocated")
	}
	return s.Repo.UpdateAmounts(ctx, id, allocated, utilized)
}

func (s *FundService) Delete(ctx context.Context, id int64) error {
	return s.Repo.Delete(ctx, id)
}
