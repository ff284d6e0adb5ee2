package organization

import "time"

// Organization is the tenancy root. Every savings entry, loan, repayment and
// user row carries its org_id; queries must always be scoped by it.
type Organization struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`

	Email   string `json:"email" db:"email"`
	Phone   string `json:"phone,omitempty" db:"phone"`
	Address string `json:"address,omitempty" db:"address"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Statistics is the dashboard aggregate for one organization.
// Amounts are in minor units (cents).
type Statistics struct {
	EmployeeCount         int   `json:"employee_count"`
	TotalSavingsMinor     int64 `json:"total_savings_minor"`
	TotalLoanedMinor      int64 `json:"total_loaned_minor"`
	TotalRepaidMinor      int64 `json:"total_repaid_minor"`
	OutstandingLoansMinor int64 `json:"outstanding_loans_minor"`
}
