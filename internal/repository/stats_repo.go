package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type StatsRepository struct {
	DB *pgxpool.Pool
}

func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{DB: db}
}

// Counts returns per-table row counts for the admin monitoring dashboard.
func (r *StatsRepository) Counts(ctx context.Context) (map[string]int64, error) {
	query := `SELECT
			(SELECT COUNT(*) FROM portal_users),
			(SELECT COUNT(*) FROM grievances),
			(SELECT COUNT(*) FROM proposals),
			(SELECT COUNT(*) FROM agency_proposals),
			(SELECT COUNT(*) FROM courses),
			(SELECT COUNT(*) FROM colleges),
			(SELECT COUNT(*) FROM course_registrations_new),
			(SELECT COUNT(*) FROM funds_allocation),
			(SELECT COUNT(*) FROM scheme_beneficiaries),
			(SELECT COUNT(*) FROM eligibility_checks),
			(SELECT COUNT(*) FROM notifications)`

	var users, grievances, proposals, reviews, courses, colleges, registrations, funds, beneficiaries, checks, notifications int64
	if err := r.DB.QueryRow(ctx, query).Scan(
		&users, &grievances, &proposals, &reviews, &courses, &colleges,
		&registrations, &funds, &beneficiaries, &checks, &notifications,
	); err != nil {
		return nil, err
	}

	return map[string]int64{
		"portal_users":             users,
		"grievances":               grievances,
		"proposals":                proposals,
		"agency_proposals":         reviews,
		"courses":                  courses,
		"colleges":                 colleges,
		"course_registrations_new": registrations,
		"funds_allocation":         funds,
		"scheme_beneficiaries":     beneficiaries,
		"eligibility_checks":       checks,
		"notifications":            notifications,
	}, nil
}
