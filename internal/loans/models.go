package loans

import "time"

// Loan is a credit line issued to an employee.
//
// Invariants:
//   - PrincipalMinor is positive and immutable once the loan exists.
//   - Status only moves along the allowed transitions (see CanTransition).
//   - RepaidMinor is a projection maintained by ApplyRepayment; it never
//     exceeds PrincipalMinor by more than the final overpaying installment.
type Loan struct {
	ID     string `json:"id" db:"id"`
	OrgID  string `json:"org_id" db:"org_id"`
	UserID string `json:"user_id" db:"user_id"`

	// PrincipalMinor is the loaned amount in minor units (e.g., cents).
	PrincipalMinor int64  `json:"principal_minor" db:"principal_minor"`
	Currency       string `json:"currency" db:"currency"`
	Purpose        string `json:"purpose,omitempty" db:"purpose"`

	Status Status `json:"status" db:"status"`

	// RepaidMinor is the cumulative repaid amount.
	RepaidMinor int64 `json:"repaid_minor" db:"repaid_minor"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusPaid     Status = "paid"
)

// CanTransition reports whether a status change is allowed.
// pending → approved | rejected; approved → paid. Everything else is final.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusApproved || to == StatusRejected
	case StatusApproved:
		return to == StatusPaid
	default:
		return false
	}
}

// ValidStatus reports whether s names a known loan status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusPaid:
		return true
	default:
		return false
	}
}
