package profiles

import "time"

// Profile is the employment record attached to a user: position, salary and
// hire date. Account data (name, email, role, status) lives on the user.
//
// Invariants:
// - At most one profile per user; Create rejects a second one.
// - SalaryMinor is non-negative, in minor units.
// - org_id is required and enforced in all queries.
type Profile struct {
	ID     string `json:"id" db:"id"`
	OrgID  string `json:"org_id" db:"org_id"`
	UserID string `json:"user_id" db:"user_id"`

	Position string `json:"position" db:"position"`

	// SalaryMinor is the gross salary in minor units (e.g., cents).
	SalaryMinor int64  `json:"salary_minor" db:"salary_minor"`
	Currency    string `json:"currency" db:"currency"`

	HireDate time.Time `json:"hire_date" db:"hire_date"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
