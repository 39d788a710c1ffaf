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

type CourseService struct {
	Courses       *repository.CourseRepository
	Colleges      *repository.CollegeRepository
	Registrations *repository.RegistrationRepository
	Notifier      *NotificationService
}

func NewCourseService(c *repository.CourseRepository, col *repository.CollegeRepository, reg *repository.RegistrationRepository, n *NotificationService) *CourseService {
	return &CourseService{Courses: c, Colleges: col, Registrations: reg, Notifier: n}
}

// ---- colleges ----

func (s *CourseService) CreateCollege(ctx context.Context, name, district string, address *string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errors.New("college name is required")
	}
	if strings.TrimSpace(district) == "" {
		return 0, errors.New("district is required")
	}
	return s.Colleges.Create(ctx, name, district, address)
}

func (s *CourseService) ListColleges(ctx context.Context) ([]model.College, error) {
	return s.Colleges.List(ctx)
}

func (s *CourseService) UpdateCollege(ctx context.Context, id int64, name, district string, address *string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("college name is required")
	}
	return s.Colleges.Update(ctx, id, name, district, address)
}

func (s *CourseService) DeleteCollege(ctx context.Context, id int64) error {
	return s.Colleges.Delete(ctx, id)
}

// ---- courses ----

func (s *CourseService) CreateCourse(ctx context.Context, collegeID int64, name string, durationMonths, seats int) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, errors.New("course name is required")
	}
	if _, err := s.Colleges.GetByID(ctx, collegeID); err != nil {
		return 0, err
	}
	return s.Courses.Create(ctx, &model.Course{
		CollegeID:      collegeID,
		CourseName:     name,
		DurationMonths: durationMonths,
		Seats:          seats,
	})
}

func (s *CourseService) GetCourse(ctx context.Context, id int64) (*model.Course, error) {
	return s.Courses.GetByID(ctx, id)
}

func (s *CourseService) ListCourses(ctx context.Context, collegeID int64) ([]model.Course, error) {
	if collegeID > 0 {
		return s.Courses.ListByCollege(ctx, collegeID)
	}
	return s.Courses.List(ctx)
}

func (s *CourseService) UpdateCourse(ctx context.Context, c *model.Course) error {
	if strings.TrimSpace(c.CourseName) == "" {
		return errors.New("course name is required")
	}
	return s.Courses.Update(ctx, c)
}

func (s *CourseService) DeleteCourse(ctx context.Context, id int64) error {
	return s.Courses.Delete(ctx, id)
}

// ---- registrations ----

// Register applies a citizen to a course. One registration per (user, course).
func (s *CourseService) Register(ctx context.Context, userID, courseID int64) (int64, error) {
	course, err := s.Courses.GetByID(ctx, courseID)
	if err != nil {
		return 0, err
	}
	exists, err := s.Registrations.Exists(ctx, userID, courseID)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, errors.New("already registered for this course")
	}

	id, err := s.Registrations.Create(ctx, userID, courseID)
	if err != nil {
		return 0, err
	}

	link := "/citizen/registrations"
	if _, err := s.Notifier.Create(ctx, userID,
		"Registration received",
		fmt.Sprintf("Your application for %s has been received.", course.CourseName),
		&link, "course", "normal",
	); err != nil {
		log.Printf("registration %d: notify failed: %v", id, err)
	}
	return id, nil
}

func (s *CourseService) ListOwnRegistrations(ctx context.Context, userID int64) ([]model.CourseRegistration, error) {
	return s.Registrations.ListByUser(ctx, userID)
}

func (s *CourseService) ListCourseRegistrations(ctx context.Context, courseID int64) ([]model.CourseRegistration, error) {
	return s.Registrations.ListByCourse(ctx, courseID)
}

// CancelOwn lets a citizen withdraw their own application.
func (s *CourseService) CancelOwn(ctx context.Context, registrationID, userID int64) error {
	reg, err := s.Registrations.GetOwned(ctx, registrationID, userID)
	if err != nil {
		return err
	}
	if reg.Status == model.RegistrationCancelled {
		return errors.New("registration already cancelled")
	}
	return s.Registrations.SetStatus(ctx, registrationID, model.RegistrationCancelled)
}

// ConfirmRegistration is the admin-side acceptance, with a notification to
// the applicant.
func (s *CourseService) ConfirmRegistration(ctx context.Context, registrationID int64) error {
	reg, err := s.Registrations.GetByID(ctx, registrationID)
	if err != nil {
		return err
	}
	if err := s.Registrations.SetStatus(ctx, registrationID, model.RegistrationConfirmed); err != nil {
		return err
	}

	link := "/citizen/registrations"
	if _, err := s.Notifier.Create(ctx, reg.UserID,
		"Registration confirmed",
		"Your course registration has been confirmed.",
		&link, "course", "normal",
	); err != nil {
		log.Printf("registration %d: notify failed: %v", registrationID, err)
	}
	return nil
}
