package repository

import (
	"context"
	"errors"
	"time"

	"SchemePortalAPI/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CourseRepository struct {
	DB *pgxpool.Pool
}

func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(ctx context.Context, c *model.Course) (int64, error) {
	var id int64
	query := `INSERT INTO courses (collegeid, course_name, duration_months, seats, created_at)
			VALUES ($1, $2, $3, $4, $5) RETURNING courseid`
	if err := r.DB.QueryRow(ctx, query, c.CollegeID, c.CourseName, c.DurationMonths, c.Seats, time.Now()).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	var c model.Course
	query := `SELECT courseid, collegeid, course_name, duration_months, seats
			FROM courses WHERE courseid=$1 AND deleted_at IS NULL`
	if err := r.DB.QueryRow(ctx, query, id).Scan(&c.CourseID, &c.CollegeID, &c.CourseName, &c.DurationMonths, &c.Seats); err != nil {
		return nil, errors.New("course not found")
	}
	return &c, nil
}

func (r *CourseRepository) List(ctx context.Context) ([]model.Course, error) {
	query := `SELECT courseid, collegeid, course_name, duration_months, seats
			FROM courses WHERE deleted_at IS NULL ORDER BY courseid`
	return r.list(ctx, query)
}

func (r *CourseRepository) ListByCollege(ctx context.Context, collegeID int64) ([]model.Course, error) {
	query := `SELECT courseid, collegeid, course_name, duration_months, seats
			FROM courses WHERE collegeid=$1 AND deleted_at IS NULL ORDER BY courseid`
	return r.list(ctx, query, collegeID)
}

func (r *CourseRepository) list(ctx context.Context, query string, args ...any) ([]model.Course, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.CourseID, &c.CollegeID, &c.CourseName, &c.DurationMonths, &c.Seats); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *CourseRepository) Update(ctx context.Context, c *model.Course) error {
	query := `UPDATE courses SET course_name=$1, duration_months=$2, seats=$3 WHERE courseid=$4 AND deleted_at IS NULL`
	tag, err := r.DB.Exec(ctx, query, c.CourseName, c.DurationMonths, c.Seats, c.CourseID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("course not found or already deleted")
	}
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	query := `UPDATE courses SET deleted_at=$1 WHERE courseid=$2 AND deleted_at IS NULL`
	tag, err := r.DB.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("course not found or already deleted")
	}
	return nil
}
