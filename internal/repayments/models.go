package repayments

import "time"

// Repayment is a single installment posted against a loan.
type Repayment struct {
	ID     string `json:"id" db:"id"`
	OrgID  string `json:"org_id" db:"org_id"`
	LoanID string `json:"loan_id" db:"loan_id"`
	UserID string `json:"user_id" db:"user_id"`

	AmountMinor int64  `json:"amount_minor" db:"amount_minor"`
	Currency    string `json:"currency" db:"currency"`
	Note        string `json:"note,omitempty" db:"note"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
