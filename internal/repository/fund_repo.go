package repository

import (
	"context"
	"errors"
	"time"

	"SchemePortalAPI/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type FundRepository struct {
	DB *pgxpool.Pool
}

func NewFundRepository(db *pgxpool.Pool) *FundRepository {
	return &FundRepository{DB: db}
}

func (r *FundRepository) Create(ctx context.Context, f *model.FundAllocation) (int64, error) {
	var id int64
	query := `INSERT INTO funds_allocation (scheme_name, fiscal_year, district, allocated, utilized, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6) RETURNING fundid`
	if err := r.DB.QueryRow(ctx, query, f.SchemeName, f.FiscalYear, f.District, f.Allocated, f.Utilized, time.Now()).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *FundRepository) GetByID(ctx context.Context, id int64) (*model.FundAllocation, error) {
	var f model.FundAllocation
	query := `SELECT fundid, scheme_name, fiscal_year, district, allocated, utilized, created_at, updated_at
			FROM funds_allocation WHERE fundid=$1`
	if err := r.DB.QueryRow(ctx, query, id).Scan(&f.FundID, &f.SchemeName, &f.FiscalYear, &f.District, &f.Allocated, &f.Utilized, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, errors.New("fund allocation not found")
	}
	return &f, nil
}

func (r *FundRepository) List(ctx context.Context) ([]model.FundAllocation, error) {
	query := `SELECT fundid, scheme_name, fiscal_year, district, allocated, utilized, created_at, updated_at
			FROM funds_allocation ORDER BY scheme_name, fiscal_year DESC`
	return r.list(ctx, query)
}

func (r *FundRepository) ListByScheme(ctx context.Context, scheme string) ([]model.FundAllocation, error) {
	query := `SELECT fundid, scheme_name, fiscal_year, district, allocated, utilized, created_at, updated_at
			FROM funds_allocation WHERE scheme_name=$1 ORDER BY fiscal_year DESC`
	return r.list(ctx, query, scheme)
}

func (r *FundRepository) list(ctx context.Context, query string, args ...any) ([]model.FundAllocation, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.FundAllocation{}
	for rows.Next() {
		var f model.FundAllocation
		if err := rows.Scan(&f.FundID, &f.SchemeName, &f.FiscalYear, &f.District, &f.Allocated, &f.Utilized, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func (r *FundRepository) UpdateAmounts(ctx context.Context, id int64, allocated, utilized float64) error {
	query := `UPDATE funds_allocation SET allocated=$1, utilized=$2, updated_at=$3 WHERE fundid=$4`
	tag, err := r.DB.Exec(ctx, query, allocated, utilized, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("fund allocation not found")
	}
	return nil
}

func (r *FundRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM funds_allocation WHERE fundid=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("fund allocation not found")
	}
	return nil
}
