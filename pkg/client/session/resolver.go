package session

import (
	"github.com/golang-jwt/jwt/v5"
)

// Notifier receives transient user-facing notices, typically a toast.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

// Resolver turns the stored token into an Identity by decoding its claims
// without verifying the signature. It is a pure read: it never mutates the
// store and never checks expiry; only the server decides when a token is
// stale.
type Resolver struct {
	store    *Store
	notifier Notifier
}

func NewResolver(store *Store, notifier Notifier) *Resolver {
	return &Resolver{store: store, notifier: notifier}
}

// ResolveIdentity returns nil when signed out. An absent token is silent; a
// token that cannot be decoded emits exactly one notification and also
// resolves to nil, so a corrupt session renders as signed out.
func (r *Resolver) ResolveIdentity() *Identity {
	token, ok := r.store.Token()
	if !ok || token == "" {
		return nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		if r.notifier != nil {
			r.notifier.Notify("Your session could not be read. Please sign in again.")
		}
		return nil
	}

	return &Identity{
		UserID: claimString(claims, "user_id"),
		OrgID:  claimString(claims, "org_id"),
		Name:   claimString(claims, "name"),
		Role:   NormalizeRole(claimString(claims, "role")),
	}
}

func claimString(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
