// Package guard decides, per render, whether a route shows its content,
// shows a transitional placeholder, or sends the user somewhere else.
package guard

import (
	"sync"

	"fintrack-platform/pkg/client/session"
)

// Action is what the caller should do with the current render.
type Action int

const (
	// ActionRender shows the protected content.
	ActionRender Action = iota
	// ActionPlaceholder shows a transitional "redirecting" view and asks the
	// caller to evaluate again.
	ActionPlaceholder
	// ActionRedirect navigates to Target exactly once.
	ActionRedirect
)

// Decision is the outcome of one evaluation.
type Decision struct {
	Action Action

	// Target is set when Action is ActionRedirect.
	Target string

	// ReplaceHistory marks the redirect as a history replacement, so the
	// guarded URL never becomes a back-button destination.
	ReplaceHistory bool
}

const (
	loginPath             = "/login"
	adminDashboardPath    = "/admin/dashboard"
	employeeDashboardPath = "/employee/dashboard"
	unauthorizedPath      = "/unauthorized"
)

// IdentitySource yields the current identity, nil when signed out.
// *session.Resolver satisfies it.
type IdentitySource interface {
	ResolveIdentity() *session.Identity
}

// TokenSource reports whether a raw token is held. *session.Store satisfies it.
type TokenSource interface {
	Token() (string, bool)
}

// Guard gates one route behind a role requirement set.
//
// A role mismatch is handled in two phases: the first evaluation arms the
// redirect and asks for a placeholder render, the second dispatches the
// redirect. Every evaluation after that stays on the placeholder, so no
// matter how many renders race, exactly one redirect is ever dispatched.
type Guard struct {
	store    TokenSource
	ids      IdentitySource
	required []session.Role

	mu    sync.Mutex
	state guardState
}

type guardState int

const (
	stateEvaluating guardState = iota
	stateArmed
	stateDispatched
)

// New builds a guard. An empty requirement set admits any authenticated user.
func New(store TokenSource, ids IdentitySource, required ...session.Role) *Guard {
	return &Guard{store: store, ids: ids, required: required}
}

// Evaluate runs one render pass through the state machine.
func (g *Guard) Evaluate() Decision {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.store.Token(); !ok {
		// Signed out entirely; straight to login, no placeholder phase.
		return Decision{Action: ActionRedirect, Target: loginPath, ReplaceHistory: true}
	}

	identity := g.ids.ResolveIdentity()
	role := session.RoleUnknown
	if identity != nil {
		role = identity.Role
	}

	if g.allows(role) {
		g.state = stateEvaluating
		return Decision{Action: ActionRender}
	}

	switch g.state {
	case stateEvaluating:
		g.state = stateArmed
		return Decision{Action: ActionPlaceholder}
	case stateArmed:
		g.state = stateDispatched
		return Decision{Action: ActionRedirect, Target: fallbackFor(role), ReplaceHistory: true}
	default:
		return Decision{Action: ActionPlaceholder}
	}
}

// Reset returns the guard to its initial state, for reuse after the caller
// completes a navigation.
func (g *Guard) Reset() {
	g.mu.Lock()
	g.state = stateEvaluating
	g.mu.Unlock()
}

func (g *Guard) allows(role session.Role) bool {
	if len(g.required) == 0 {
		return true
	}
	if role == session.RoleUnknown {
		return false
	}
	for _, want := range g.required {
		if session.NormalizeRole(string(want)) == role {
			return true
		}
	}
	return false
}

// fallbackFor sends a mismatched user to their own dashboard; users without
// a recognizable role land on the unauthorized page.
func fallbackFor(role session.Role) string {
	switch role {
	case session.RoleAdmin:
		return adminDashboardPath
	case session.RoleEmployee:
		return employeeDashboardPath
	default:
		return unauthorizedPath
	}
}
