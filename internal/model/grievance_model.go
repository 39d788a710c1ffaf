package model

import "time"

// Grievance statuses, in lifecycle order.
const (
	GrievanceSubmitted = "submitted"
	GrievanceInReview  = "in_review"
	GrievanceResolved  = "resolved"
	GrievanceRejected  = "rejected"
)

type Grievance struct {
	GrievanceID int64      `json:"grievanceid"`
	UserID      int64      `json:"userid"`
	Subject     string     `json:"subject"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	SchemeName  *string    `json:"scheme_name,omitempty"`
	Status      string     `json:"status"`
	Remarks     *string    `json:"remarks,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}
