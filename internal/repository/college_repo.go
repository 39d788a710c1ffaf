package repository

import (
	"context"
	"errors"
	"time"

	"SchemePortalAPI/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CollegeRepository struct {
	DB *pgxpool.Pool
}

func NewCollegeRepository(db *pgxpool.Pool) *CollegeRepository {
	return &CollegeRepository{DB: db}
}

func (r *CollegeRepository) Create(ctx context.Context, name, district string, address *string) (int64, error) {
	var id int64
	query := `INSERT INTO colleges (name, district, address, created_at) VALUES ($1, $2, $3, $4) RETURNING collegeid`
	if err := r.DB.QueryRow(ctx, query, name, district, address, time.Now()).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *CollegeRepository) GetByID(ctx context.Context, id int64) (*model.College, error) {
	var c model.College
	query := `SELECT collegeid, name, district, address FROM colleges WHERE collegeid=$1 AND deleted_at IS NULL`
	if err := r.DB.QueryRow(ctx, query, id).Scan(&c.CollegeID, &c.Name, &c.District, &c.Address); err != nil {
		return nil, errors.New("college not found")
	}
	return &c, nil
}

func (r *CollegeRepository) List(ctx context.Context) ([]model.College, error) {
	query := `SELECT collegeid, name, district, address FROM colleges WHERE deleted_at IS NULL ORDER BY collegeid`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.College
	for rows.Next() {
		var c model.College
		if err := rows.Scan(&c.CollegeID, &c.Name, &c.District, &c.Address); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *CollegeRepository) Update(ctx context.Context, id int64, name, district string, address *string) error {
	query := `UPDATE colleges SET name=$1, district=$2, address=$3 WHERE collegeid=$4 AND deleted_at IS NULL`
	tag, err := r.DB.Exec(ctx, query, name, district, address, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("college not found or already deleted")
	}
	return nil
}

func (r *CollegeRepository) Delete(ctx context.Context, id int64) error {
	query := `UPDATE colleges SET deleted_at=$1 WHERE collegeid=$2 AND deleted_at IS NULL`
	tag, err := r.DB.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("college not found or already deleted")
	}
	return nil
}
