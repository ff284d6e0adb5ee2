package auth

import "github.com/golang-jwt/jwt/v5"

// Claims are the only supported JWT claims shape for this service.
// Tenancy invariant: OrgID must be present for all activity.
// Name and Role are embedded so the web client can derive its identity
// by decoding the token without a round-trip.
type Claims struct {
	jwt.RegisteredClaims

	UserID string `json:"user_id"`
	OrgID  string `json:"org_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}
