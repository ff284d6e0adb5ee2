package client

import "time"

// Wire types mirror the server's JSON responses. They are decoded copies,
// not shared structs, so the SDK stays importable outside this repository.

type User struct {
	ID        string    `json:"id"`
	OrgID     string    `json:"org_id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SavingsEntry struct {
	ID          string    `json:"id"`
	OrgID       string    `json:"org_id"`
	UserID      string    `json:"user_id"`
	AmountMinor int64     `json:"amount_minor"`
	Currency    string    `json:"currency"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Loan struct {
	ID             string    `json:"id"`
	OrgID          string    `json:"org_id"`
	UserID         string    `json:"user_id"`
	PrincipalMinor int64     `json:"principal_minor"`
	Currency       string    `json:"currency"`
	Purpose        string    `json:"purpose,omitempty"`
	Status         string    `json:"status"`
	RepaidMinor    int64     `json:"repaid_minor"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type Repayment struct {
	ID          string    `json:"id"`
	OrgID       string    `json:"org_id"`
	LoanID      string    `json:"loan_id"`
	UserID      string    `json:"user_id"`
	AmountMinor int64     `json:"amount_minor"`
	Currency    string    `json:"currency"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Profile struct {
	ID          string    `json:"id"`
	OrgID       string    `json:"org_id"`
	UserID      string    `json:"user_id"`
	Position    string    `json:"position"`
	SalaryMinor int64     `json:"salary_minor"`
	Currency    string    `json:"currency"`
	HireDate    time.Time `json:"hire_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// User is populated on the "my profile" endpoint.
	User *User `json:"user,omitempty"`
}

type Goal struct {
	ID          string     `json:"id"`
	OrgID       string     `json:"org_id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	TargetMinor int64      `json:"target_minor"`
	SavedMinor  int64      `json:"saved_minor"`
	Currency    string     `json:"currency"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type MyStatistics struct {
	TotalSavingsMinor     int64 `json:"total_savings_minor"`
	OutstandingLoansMinor int64 `json:"outstanding_loans_minor"`
	TotalRepaidMinor      int64 `json:"total_repaid_minor"`
}

type OrganizationStatistics struct {
	EmployeeCount         int   `json:"employee_count"`
	TotalSavingsMinor     int64 `json:"total_savings_minor"`
	TotalLoanedMinor      int64 `json:"total_loaned_minor"`
	TotalRepaidMinor      int64 `json:"total_repaid_minor"`
	OutstandingLoansMinor int64 `json:"outstanding_loans_minor"`
}

type RegisterOrganizationInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`

	AdminFullName string `json:"admin_full_name"`
	AdminEmail    string `json:"admin_email"`
	AdminPassword string `json:"admin_password"`
}

type RequestLoanInput struct {
	PrincipalMinor int64  `json:"principal_minor"`
	Currency       string `json:"currency"`
	Purpose        string `json:"purpose,omitempty"`
}

type CreateRepaymentInput struct {
	LoanID      string `json:"loan_id"`
	AmountMinor int64  `json:"amount_minor"`
	Note        string `json:"note,omitempty"`
}

type CreateGoalInput struct {
	Title       string     `json:"title"`
	TargetMinor int64      `json:"target_minor"`
	Currency    string     `json:"currency"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

type UpdateGoalInput struct {
	Title       string     `json:"title,omitempty"`
	TargetMinor int64      `json:"target_minor,omitempty"`
	SavedMinor  int64      `json:"saved_minor,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}
