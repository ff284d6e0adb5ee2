package savings

import "time"

// Entry is a savings contribution recorded against an employee.
//
// Invariants:
//   - AmountMinor is positive; corrections are made by editing or deleting the
//     entry (admin only), not by negative entries.
//   - org_id is required and enforced in all queries.
type Entry struct {
	ID     string `json:"id" db:"id"`
	OrgID  string `json:"org_id" db:"org_id"`
	UserID string `json:"user_id" db:"user_id"`

	// AmountMinor is the contribution in minor units (e.g., cents).
	AmountMinor int64  `json:"amount_minor" db:"amount_minor"`
	Currency    string `json:"currency" db:"currency"`

	Note string `json:"note,omitempty" db:"note"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
