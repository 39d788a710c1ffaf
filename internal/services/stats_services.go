package services

import (
	"context"

	"SchemePortalAPI/internal/repository"
)

type StatsService struct {
	Repo *repository.StatsRepository
}

func NewStatsService(r *repository.StatsRepository) *StatsService {
	return &StatsService{Repo: r}
}

func (s *StatsService) TableCounts(ctx context.Context) (map[string]int64, error) {
	return s.Repo.Counts(ctx)
}
