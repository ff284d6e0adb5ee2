package goals

import "time"

// Goal is a personal savings target an employee tracks for themselves.
// Goals are private: every operation is scoped to the owning user, and
// admins have no cross-user view.
//
// Invariants:
// - TargetMinor is positive; SavedMinor is non-negative.
// - org_id and user_id are required and enforced in all queries.
type Goal struct {
	ID     string `json:"id" db:"id"`
	OrgID  string `json:"org_id" db:"org_id"`
	UserID string `json:"user_id" db:"user_id"`

	Title string `json:"title" db:"title"`

	// TargetMinor is the amount to reach, SavedMinor the progress so far,
	// both in minor units.
	TargetMinor int64  `json:"target_minor" db:"target_minor"`
	SavedMinor  int64  `json:"saved_minor" db:"saved_minor"`
	Currency    string `json:"currency" db:"currency"`

	// Deadline is optional; nil means open-ended.
	Deadline *time.Time `json:"deadline,omitempty" db:"deadline"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Achieved reports whether the goal has reached its target.
func (g Goal) Achieved() bool {
	return g.SavedMinor >= g.TargetMinor
}
