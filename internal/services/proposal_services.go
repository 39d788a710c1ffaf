package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"SchemePortalAPI/internal/model"
	"SchemePortalAPI/internal/repository"
)

type ProposalService struct {
	Repo     *repository.ProposalRepository
	Notifier *NotificationService
}

func NewProposalService(r *repository.ProposalRepository, n *NotificationService) *ProposalService {
	return &ProposalService{Repo: r, Notifier: n}
}

func (s *ProposalService) Submit(ctx context.Context, agencyID int64, title, description, scheme string, amount float64, district *string) (int64, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, errors.New("title is required")
	}
	if strings.TrimSpace(scheme) == "" {
		return 0, errors.New("scheme name is required")
	}
	if amount <= 0 {
		return 0, errors.New("amount must be positive")
	}
	return s.Repo.Create(ctx, &model.Proposal{
		AgencyID:    agencyID,
		Title:       title,
		Description: description,
		SchemeName:  scheme,
		Amount:      amount,
		District:    district,
	})
}

func (s *ProposalService) Get(ctx context.Context, id int64) (*model.Proposal, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *ProposalService) ListOwn(ctx context.Context, agencyID int64) ([]model.Proposal, error) {
	return s.Repo.ListByAgency(ctx, agencyID)
}

func (s *ProposalService) ListAll(ctx context.Context) ([]model.Proposal, error) {
	return s.Repo.ListAll(ctx)
}

func (s *ProposalService) ListReviews(ctx context.Context, proposalID int64) ([]model.ProposalReview, error) {
	return s.Repo.ListReviews(ctx, proposalID)
}

// Review records an admin decision, moves the proposal, and notifies the
// submitting agency.
func (s *ProposalService) Review(ctx context.Context, proposalID, reviewerID int64, decision string, comments *string) (int64, error) {
	if decision != model.ProposalApproved && decision != model.ProposalRejected {
		return 0, errors.New("decision must be approved or rejected")
	}

	p, err := s.Repo.GetByID(ctx, proposalID)
	if err != nil {
		return 0, err
	}
	if err := s.Repo.SetStatus(ctx, proposalID, decision); err != nil {
		return 0, err
	}
	reviewID, err := s.Repo.CreateReview(ctx, &model.ProposalReview{
		ProposalID: proposalID,
		ReviewerID: reviewerID,
		Decision:   decision,
		Comments:   comments,
	})
	if err != nil {
		return 0, err
	}

	link := fmt.Sprintf("/agency/proposals/%d", proposalID)
	if _, err := s.Notifier.Create(ctx, p.AgencyID,
		"Proposal reviewed",
		fmt.Sprintf("Your proposal %q was %s.", p.Title, decision),
		&link, "proposal", "high",
	); err != nil {
		log.Printf("proposal %d: notify failed: %v", proposalID, err)
	}
	return reviewID, nil
}
