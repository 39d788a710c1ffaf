package model

import "time"

const (
	ProposalPending  = "pending"
	ProposalApproved = "approved"
	ProposalRejected = "rejected"
)

// Proposal is a funding proposal submitted by an agency account.
type Proposal struct {
	ProposalID  int64      `json:"proposalid"`
	AgencyID    int64      `json:"agencyid"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	SchemeName  string     `json:"scheme_name"`
	Amount      float64    `json:"amount"`
	District    *string    `json:"district,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// ProposalReview is an admin's decision on a proposal (agency_proposals table).
type ProposalReview struct {
	ReviewID   int64      `json:"reviewid"`
	ProposalID int64      `json:"proposalid"`
	ReviewerID int64      `json:"reviewerid"`
	Decision   string     `json:"decision"` // approved | rejected
	Comments   *string    `json:"comments,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
}
