package model

import "time"

type SchemeBeneficiary struct {
	BeneficiaryID int64      `json:"beneficiaryid"`
	SchemeName    string     `json:"scheme_name"`
	UserID        *int64     `json:"userid,omitempty"` // linked portal account, if any
	Name          string     `json:"name"`
	District      string     `json:"district"`
	BenefitAmount float64    `json:"benefit_amount"`
	EnrolledAt    *time.Time `json:"enrolled_at,omitempty"`
}

// EligibilityCheck stores one evaluation of a citizen against a scheme's
// rules, verdict included.
type EligibilityCheck struct {
	CheckID      int64      `json:"checkid"`
	UserID       int64      `json:"userid"`
	SchemeName   string     `json:"scheme_name"`
	Age          int        `json:"age"`
	AnnualIncome float64    `json:"annual_income"`
	District     string     `json:"district"`
	Category     string     `json:"category"`
	Eligible     bool       `json:"eligible"`
	Reason       string     `json:"reason"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}
