package rbac

import "strings"

// Role is the closed set of roles this platform knows about.
// Tokens carry roles as free-form strings; Normalize maps them into this set
// once at the boundary so internal comparisons are exact-match.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"

	// RoleUnknown marks a role string outside the known set. Callers must
	// treat it as unprivileged.
	RoleUnknown Role = ""
)

// Normalize maps a raw role string (from a token claim or a request body)
// into the closed role set. Comparison is case-insensitive.
func Normalize(raw string) Role {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(RoleAdmin):
		return RoleAdmin
	case string(RoleEmployee):
		return RoleEmployee
	default:
		return RoleUnknown
	}
}

// Known reports whether raw names a role in the closed set.
func Known(raw string) bool { return Normalize(raw) != RoleUnknown }
