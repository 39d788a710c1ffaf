package model

import "time"

// FundAllocation is one row of funds_allocation: the sanctioned and utilized
// amounts for a scheme in a district and fiscal year. Record-keeping only;
// no money moves through the portal.
type FundAllocation struct {
	FundID     int64      `json:"fundid"`
	SchemeName string     `json:"scheme_name"`
	FiscalYear string     `json:"fiscal_year"` // e.g. "2025-26"
	District   string     `json:"district"`
	Allocated  float64    `json:"allocated"`
	Utilized   float64    `json:"utilized"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}
