package model

import "time"

type Notification struct {
	ID        string    `json:"id"` // uuid
	UserID    int64     `json:"userid"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Link      *string   `json:"link,omitempty"`
	Category  string    `json:"category"`
	Priority  string    `json:"priority"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
