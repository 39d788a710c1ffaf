package repository

import (
	"context"
	"errors"
	"time"

	"SchemePortalAPI/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type GrievanceRepository struct {
	DB *pgxpool.Pool
}

func NewGrievanceRepository(db *pgxpool.Pool) *GrievanceRepository {
	return &GrievanceRepository{DB: db}
}

func (r *GrievanceRepository) Create(ctx context.Context, g *model.Grievance) (int64, error) {
	var id int64
	query := `INSERT INTO grievances (userid, subject, description, category, scheme_name, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $7) RETURNING grievanceid`
	if err := r.DB.QueryRow(ctx, query, g.UserID, g.Subject, g.Description, g.Category, g.SchemeName, model.GrievanceSubmitted, time.Now()).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *GrievanceRepository) GetByID(ctx context.Context, id int64) (*model.Grievance, error) {
	var g model.Grievance
	query := `SELECT grievanceid, userid, subject, description, category, scheme_name, status, remarks, created_at, updated_at
			FROM grievances WHERE grievanceid=$1`
	if err := r.DB.QueryRow(ctx, query, id).Scan(&g.GrievanceID, &g.UserID, &g.Subject, &g.Description, &g.Category, &g.SchemeName, &g.Status, &g.Remarks, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, errors.New("grievance not found")
	}
	return &g, nil
}

func (r *GrievanceRepository) ListByUser(ctx context.Context, userID int64) ([]model.Grievance, error) {
	query := `SELECT grievanceid, userid, subject, description, category, scheme_name, status, remarks, created_at, updated_at
			FROM grievances WHERE userid=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *GrievanceRepository) ListAll(ctx context.Context) ([]model.Grievance, error) {
	query := `SELECT grievanceid, userid, subject, description, category, scheme_name, status, remarks, created_at, updated_at
			FROM grievances ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *GrievanceRepository) ListByStatus(ctx context.Context, status string) ([]model.Grievance, error) {
	query := `SELECT grievanceid, userid, subject, description, category, scheme_name, status, remarks, created_at, updated_at
			FROM grievances WHERE status=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, status)
}

func (r *GrievanceRepository) list(ctx context.Context, query string, args ...any) ([]model.Grievance, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Grievance{}
	for rows.Next() {
		var g model.Grievance
		if err := rows.Scan(&g.GrievanceID, &g.UserID, &g.Subject, &g.Description, &g.Category, &g.SchemeName, &g.Status, &g.Remarks, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

// UpdateStatus moves a grievance through its lifecycle, with an optional remark.
func (r *GrievanceRepository) UpdateStatus(ctx context.Context, id int64, status string, remarks *string) error {
	query := `UPDATE grievances SET status=$1, remarks=COALESCE($2, remarks), updated_at=$3 WHERE grievanceid=$4`
	tag, err := r.DB.Exec(ctx, query, status, remarks, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("grievance not found")
	}
	return nil
}
