package audit

import "time"

// Event is an immutable, append-only audit log record.
//
// Invariants:
// - Events are never updated or deleted.
// - org_id is required for tenancy isolation.
// - actor and ip capture are best-effort; do not block critical flows on audit failures.

type Event struct {
	ID    string `json:"id" db:"id"`
	OrgID string `json:"org_id" db:"org_id"`

	// Type indicates the business category of the audit record.
	Type EventType `json:"type" db:"type"`

	// ActorUserID is the authenticated user causing the event.
	ActorUserID string `json:"actor_user_id,omitempty" db:"actor_user_id"`
	ActorRole   string `json:"actor_role,omitempty" db:"actor_role"`

	// IPAddress should capture the original client IP when available.
	IPAddress string `json:"ip_address,omitempty" db:"ip_address"`

	// Target identifiers (optional, depending on the event type).
	TargetUserID string `json:"target_user_id,omitempty" db:"target_user_id"`
	LoanID       string `json:"loan_id,omitempty" db:"loan_id"`

	// Message is a short human-readable description for internal ops.
	Message string `json:"message,omitempty" db:"message"`

	// Metadata is optional JSON for full details.
	Metadata string `json:"metadata,omitempty" db:"metadata"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type EventType string

const (
	EventTypeAdminAction      EventType = "admin_action"
	EventTypeLoanStatusChange EventType = "loan_status_change"
	EventTypePasswordReset    EventType = "password_reset"
)
