package model

import "time"

// Portal roles. Every portal_users row carries exactly one of these.
const (
	RoleCitizen = "citizen"
	RoleAgency  = "agency"
	RoleAdmin   = "admin"
)

type PortalUser struct {
	UserID       int64      `json:"userid"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // never JSON-encode
	UserType     string     `json:"user_type"`
	IsVerified   bool       `json:"is_verified"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}
