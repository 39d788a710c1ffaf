package repository

import (
	"context"
	"errors"
	"time"

	"SchemePortalAPI/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type RegistrationRepository struct {
	DB *pgxpool.Pool
}

func NewRegistrationRepository(db *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{DB: db}
}

func (r *RegistrationRepository) Create(ctx context.Context, userID, courseID int64) (int64, error) {
	var id int64
	query := `INSERT INTO course_registrations_new (userid, courseid, status, created_at)
			VALUES ($1, $2, $3, $4) RETURNING registrationid`
	if err := r.DB.QueryRow(ctx, query, userID, courseID, model.RegistrationApplied, time.Now()).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *RegistrationRepository) Exists(ctx context.Context, userID, courseID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM course_registrations_new WHERE userid=$1 AND courseid=$2)`
	if err := r.DB.QueryRow(ctx, query, userID, courseID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *RegistrationRepository) ListByUser(ctx context.Context, userID int64) ([]model.CourseRegistration, error) {
	query := `SELECT registrationid, userid, courseid, status, created_at
			FROM course_registrations_new WHERE userid=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *RegistrationRepository) ListByCourse(ctx context.Context, courseID int64) ([]model.CourseRegistration, error) {
	query := `SELECT registrationid, userid, courseid, status, created_at
			FROM course_registrations_new WHERE courseid=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, courseID)
}

func (r *RegistrationRepository) list(ctx context.Context, query string, args ...any) ([]model.CourseRegistration, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.CourseRegistration{}
	for rows.Next() {
		var reg model.CourseRegistration
		if err := rows.Scan(&reg.RegistrationID, &reg.UserID, &reg.CourseID, &reg.Status, &reg.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, reg)
	}
	return out, nil
}

func (r *RegistrationRepository) SetStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.DB.Exec(ctx, `UPDATE course_registrations_new SET status=$1 WHERE registrationid=$2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("registration not found")
	}
	return nil
}

func (r *RegistrationRepository) GetByID(ctx context.Context, id int64) (*model.CourseRegistration, error) {
	var reg model.CourseRegistration
	query := `SELECT registrationid, userid, courseid, status, created_at
			FROM course_registrations_new WHERE registrationid=$1`
	if err := r.DB.QueryRow(ctx, query, id).Scan(&reg.RegistrationID, &reg.UserID, &reg.CourseID, &reg.Status, &reg.CreatedAt); err != nil {
		return nil, errors.New("registration not found")
	}
	return &reg, nil
}

// GetOwned fetches a registration only if it belongs to userID, so citizens
// cannot cancel someone else's application.
func (r *RegistrationRepository) GetOwned(ctx context.Context, id, userID int64) (*model.CourseRegistration, error) {
	var reg model.CourseRegistration
	query := `SELECT registrationid, userid, courseid, status, created_at
			FROM course_registrations_new WHERE registrationid=$1 AND userid=$2`
	if err := r.DB.QueryRow(ctx, query, id, userID).Scan(&reg.RegistrationID, &reg.UserID, &reg.CourseID, &reg.Status, &reg.CreatedAt); err != nil {
		return nil, errors.New("registration not found")
	}
	return &reg, nil
}
