package employees

import (
	"time"

	"fintrack-platform/internal/rbac"
)

// User is a member of an organization: the admin who registered it or an
// employee the admin created.
//
// Invariants:
// - Email is unique across the platform and stored lower-cased.
// - PasswordHash is a bcrypt hash; the clear password is never persisted.
// - Role is normalized into the closed rbac set before storage.
type User struct {
	ID    string `json:"id" db:"id"`
	OrgID string `json:"org_id" db:"org_id"`

	FullName string    `json:"full_name" db:"full_name"`
	Email    string    `json:"email" db:"email"`
	Role     rbac.Role `json:"role" db:"role"`

	// PasswordHash never leaves the service layer.
	PasswordHash string `json:"-" db:"password_hash"`

	Status UserStatus `json:"status" db:"status"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusDisabled UserStatus = "disabled"
)
