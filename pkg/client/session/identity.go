package session

import "strings"

// Role mirrors the server's role enumeration. Values outside the enum
// normalize to RoleUnknown and are denied everywhere.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleUnknown  Role = ""
)

// NormalizeRole folds case and whitespace; unknown values map to RoleUnknown.
func NormalizeRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleEmployee:
		return RoleEmployee
	default:
		return RoleUnknown
	}
}

// Identity is what the client knows about the signed-in user, decoded from
// the token without signature verification. It drives rendering decisions
// only; the server re-verifies every request.
type Identity struct {
	UserID string
	OrgID  string
	Name   string
	Role   Role
}
