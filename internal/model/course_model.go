package model

import "time"

type College struct {
	CollegeID int64      `json:"collegeid"`
	Name      string     `json:"name"`
	District  string     `json:"district"`
	Address   *string    `json:"address,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

type Course struct {
	CourseID       int64      `json:"courseid"`
	CollegeID      int64      `json:"collegeid"`
	CourseName     string     `json:"course_name"`
	DurationMonths int        `json:"duration_months"`
	Seats          int        `json:"seats"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
}

const (
	RegistrationApplied   = "applied"
	RegistrationConfirmed = "confirmed"
	RegistrationCancelled = "cancelled"
)

// CourseRegistration is a citizen's application to a course
// (course_registrations_new table).
type CourseRegistration struct {
	RegistrationID int64      `json:"registrationid"`
	UserID         int64      `json:"userid"`
	CourseID       int64      `json:"courseid"`
	Status         string     `json:"status"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
}
