package repository

import (
	"context"
	"time"

	"SchemePortalAPI/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type EligibilityRepository struct {
	DB *pgxpool.Pool
}

func NewEligibilityRepository(db *pgxpool.Pool) *EligibilityRepository {
	return &EligibilityRepository{DB: db}
}

func (r *EligibilityRepository) Create(ctx context.Context, e *model.EligibilityCheck) (int64, error) {
	var id int64
	query := `INSERT INTO eligibility_checks (userid, scheme_name, age, annual_income, district, category, eligible, reason, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING checkid`
	if err := r.DB.QueryRow(ctx, query, e.UserID, e.SchemeName, e.Age, e.AnnualIncome, e.District, e.Category, e.Eligible, e.Reason, time.Now()).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *EligibilityRepository) ListByUser(ctx context.Context, userID int64) ([]model.EligibilityCheck, error) {
	query := `SELECT checkid, userid, scheme_name, age, annual_income, district, category, eligible, reason, created_at
			FROM eligibility_checks WHERE userid=$1 ORDER BY created_at DESC`
	rows, err := r.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.EligibilityCheck{}
	for rows.Next() {
		var e model.EligibilityCheck
		if err := rows.Scan(&e.CheckID, &e.UserID, &e.SchemeName, &e.Age, &e.AnnualIncome, &e.District, &e.Category, &e.Eligible, &e.Reason, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
