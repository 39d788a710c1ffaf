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

type GrievanceService struct {
	Repo     *repository.GrievanceRepository
	Notifier *NotificationService
}

func NewGrievanceService(r *repository.GrievanceRepository, n *NotificationService) *GrievanceService {
	return &GrievanceService{Repo: r, Notifier: n}
}

func (s *GrievanceService) File(ctx context.Context, userID int64, subject, description, category string, scheme *string) (int64, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return 0, errors.New("subject is required")
	}
	if strings.TrimSpace(description) == "" {
		return 0, errors.New("description is required")
	}
	if category == "" {
		category = "general"
	}
	return s.Repo.Create(ctx, &model.Grievance{
		UserID:      userID,
		Subject:     subject,
		Description: description,
		Category:    category,
		SchemeName:  scheme,
	})
}

func (s *GrievanceService) Get(ctx context.Context, id int64) (*model.Grievance, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *GrievanceService) ListOwn(ctx context.Context, userID int64) ([]model.Grievance, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func (s *GrievanceService) ListAll(ctx context.Context, status string) ([]model.Grievance, error) {
	if status != "" {
		return s.Repo.ListByStatus(ctx, status)
	}
	return s.Repo.ListAll(ctx)
}

// UpdateStatus moves a grievance and notifies its owner.
func (s *GrievanceService) UpdateStatus(ctx context.Context, id int64, status string, remarks *string) error {
	switch status {
	case model.GrievanceInReview, model.GrievanceResolved, model.GrievanceRejected:
	default:
		return errors.New("invalid grievance status")
	}

	g, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.UpdateStatus(ctx, id, status, remarks); err != nil {
		return err
	}

	// the status change stands even if the notification insert fails
	link := fmt.Sprintf("/citizen/grievances/%d", id)
	if _, err := s.Notifier.Create(ctx, g.UserID,
		"Grievance update",
		fmt.Sprintf("Your grievance %q is now %s.", g.Subject, status),
		&link, "grievance", "normal",
	); err != nil {
		log.Printf("grievance %d: notify failed: %v", id, err)
	}
	return nil
}
