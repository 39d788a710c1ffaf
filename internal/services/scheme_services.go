package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"SchemePortalAPI/internal/model"
	"SchemePortalAPI/internal/repository"
)

type SchemeService struct {
	Beneficiaries *repository.BeneficiaryRepository
	Checks        *repository.EligibilityRepository
}

func NewSchemeService(b *repository.BeneficiaryRepository, c *repository.EligibilityRepository) *SchemeService {
	return &SchemeService{Beneficiaries: b, Checks: c}
}

// ---- beneficiaries ----

func (s *SchemeService) AddBeneficiary(ctx context.Context, b *model.SchemeBeneficiary) (int64, error) {
	b.SchemeName = strings.TrimSpace(b.SchemeName)
	if b.SchemeName == "" {
		return 0, errors.New("scheme name is required")
	}
	if strings.TrimSpace(b.Name) == "" {
		return 0, errors.New("beneficiary name is required")
	}
	if b.BenefitAmount < 0 {
		return 0, errors.New("benefit amount cannot be negative")
	}
	return s.Beneficiaries.Create(ctx, b)
}

func (s *SchemeService) ListBeneficiaries(ctx context.Context, scheme string) ([]model.SchemeBeneficiary, error) {
	if scheme == "" {
		return nil, errors.New("scheme name is required")
	}
	return s.Beneficiaries.ListByScheme(ctx, scheme)
}

func (s *SchemeService) ListOwnBenefits(ctx context.Context, userID int64) ([]model.SchemeBeneficiary, error) {
	return s.Beneficiaries.ListByUser(ctx, userID)
}

func (s *SchemeService) RemoveBeneficiary(ctx context.Context, id int64) error {
	return s.Beneficiaries.Delete(ctx, id)
}

// ---- eligibility ----

// schemeRule is one scheme's admission criteria. Zero bounds are unchecked.
type schemeRule struct {
	MinAge    int
	MaxAge    int
	MaxIncome float64
}

// Criteria per scheme, as published in the portal guidelines.
var schemeRules = map[string]schemeRule{
	"post-matric-scholarship": {MinAge: 16, MaxAge: 30, MaxIncome: 250000},
	"old-age-pension":         {MinAge: 60},
	"housing-assistance":      {MinAge: 18, MaxIncome: 300000},
	"skill-development":       {MinAge: 18, MaxAge: 45, MaxIncome: 500000},
}

// evaluate applies a scheme's rules to the applicant. Unknown schemes are an
// input error, not a verdict.
func evaluate(scheme string, age int, income float64) (bool, string, error) {
	rule, ok := schemeRules[scheme]
	if !ok {
		return false, "", fmt.Errorf("unknown scheme: %s", scheme)
	}
	if age <= 0 || age > 120 {
		return false, "", errors.New("invalid age")
	}
	if income < 0 {
		return false, "", errors.New("invalid income")
	}

	switch {
	case rule.MinAge > 0 && age < rule.MinAge:
		return false, fmt.Sprintf("minimum age is %d", rule.MinAge), nil
	case rule.MaxAge > 0 && age > rule.MaxAge:
		return false, fmt.Sprintf("maximum age is %d", rule.MaxAge), nil
	case rule.MaxIncome > 0 && income > rule.MaxIncome:
		return false, fmt.Sprintf("annual income exceeds %.0f", rule.MaxIncome), nil
	}
	return true, "meets all criteria", nil
}

// CheckEligibility evaluates the applicant and stores the verdict.
func (s *SchemeService) CheckEligibility(ctx context.Context, userID int64, scheme string, age int, income float64, district, category string) (*model.EligibilityCheck, error) {
	eligible, reason, err := evaluate(scheme, age, income)
	if err != nil {
		return nil, err
	}

	check := &model.EligibilityCheck{
		UserID:       userID,
		SchemeName:   scheme,
		Age:          age,
		AnnualIncome: income,
		District:     district,
		Category:     category,
		Eligible:     eligible,
		Reason:       reason,
	}
	id, err := s.Checks.Create(ctx, check)
	if err != nil {
		return nil, err
	}
	check.CheckID = id
	return check, nil
}

func (s *SchemeService) ListOwnChecks(ctx context.Context, userID int64) ([]model.EligibilityCheck, error) {
	return s.Checks.ListByUser(ctx, userID)
}
