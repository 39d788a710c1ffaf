package repository

import (
	"context"
	"errors"
	"time"

	"SchemePortalAPI/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type BeneficiaryRepository struct {
	DB *pgxpool.Pool
}

func NewBeneficiaryRepository(db *pgxpool.Pool) *BeneficiaryRepository {
	return &BeneficiaryRepository{DB: db}
}

func (r *BeneficiaryRepository) Create(ctx context.Context, b *model.SchemeBeneficiary) (int64, error) {
	var id int64
	query := `INSERT INTO scheme_beneficiaries (scheme_name, userid, name, district, benefit_amount, enrolled_at)
			VALUES ($1, $2, $3, $4, $5, $6) RETURNING beneficiaryid`
	if err := r.DB.QueryRow(ctx, query, b.SchemeName, b.UserID, b.Name, b.District, b.BenefitAmount, time.Now()).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *BeneficiaryRepository) GetByID(ctx context.Context, id int64) (*model.SchemeBeneficiary, error) {
	var b model.SchemeBeneficiary
	query := `SELECT beneficiaryid, scheme_name, userid, name, district, benefit_amount, enrolled_at
			FROM scheme_beneficiaries WHERE beneficiaryid=$1`
	if err := r.DB.QueryRow(ctx, query, id).Scan(&b.BeneficiaryID, &b.SchemeName, &b.UserID, &b.Name, &b.District, &b.BenefitAmount, &b.EnrolledAt); err != nil {
		return nil, errors.New("beneficiary not found")
	}
	return &b, nil
}

func (r *BeneficiaryRepository) ListByScheme(ctx context.Context, scheme string) ([]model.SchemeBeneficiary, error) {
	query := `SELECT beneficiaryid, scheme_name, userid, name, district, benefit_amount, enrolled_at
			FROM scheme_beneficiaries WHERE scheme_name=$1 ORDER BY enrolled_at DESC`
	return r.list(ctx, query, scheme)
}

func (r *BeneficiaryRepository) ListByUser(ctx context.Context, userID int64) ([]model.SchemeBeneficiary, error) {
	query := `SELECT beneficiaryid, scheme_name, userid, name, district, benefit_amount, enrolled_at
			FROM scheme_beneficiaries WHERE userid=$1 ORDER BY enrolled_at DESC`
	return r.list(ctx, query, userID)
}

func (r *BeneficiaryRepository) list(ctx context.Context, query string, args ...any) ([]model.SchemeBeneficiary, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.SchemeBeneficiary{}
	for rows.Next() {
		var b model.SchemeBeneficiary
		if err := rows.Scan(&b.BeneficiaryID, &b.SchemeName, &b.UserID, &b.Name, &b.District, &b.BenefitAmount, &b.EnrolledAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *BeneficiaryRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM scheme_beneficiaries WHERE beneficiaryid=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("beneficiary not found")
	}
	return nil
}
