package guard

import (
	"path/filepath"
	"sync"
	"testing"

	"fintrack-platform/pkg/client/session"

	"github.com/golang-jwt/jwt/v5"
)

func storeWithRole(t *testing.T, role string) *session.Store {
	t.Helper()
	s, err := session.Open(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if role == "" {
		return s
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u1",
		"org_id":  "o1",
		"role":    role,
	}).SignedString([]byte("irrelevant"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if err := s.SetToken(tok); err != nil {
		t.Fatalf("set token: %v", err)
	}
	return s
}

func newGuard(t *testing.T, role string, required ...session.Role) *Guard {
	t.Helper()
	store := storeWithRole(t, role)
	return New(store, session.NewResolver(store, nil), required...)
}

func TestGuard_NoTokenRedirectsToLogin(t *testing.T) {
	g := newGuard(t, "", session.RoleAdmin)

	for i := 0; i < 2; i++ {
		d := g.Evaluate()
		if d.Action != ActionRedirect || d.Target != "/login" {
			t.Fatalf("evaluation %d: expected login redirect, got %+v", i, d)
		}
		if !d.ReplaceHistory {
			t.Fatal("login redirect must replace history")
		}
	}
}

func TestGuard_EmptyRequirementRenders(t *testing.T) {
	g := newGuard(t, "employee")
	if d := g.Evaluate(); d.Action != ActionRender {
		t.Fatalf("expected render, got %+v", d)
	}
}

func TestGuard_RoleMatchIsCaseInsensitive(t *testing.T) {
	g := newGuard(t, "ADMIN", session.Role("Admin"))
	if d := g.Evaluate(); d.Action != ActionRender {
		t.Fatalf("expected render, got %+v", d)
	}
}

func TestGuard_MismatchIsTwoPhase(t *testing.T) {
	g := newGuard(t, "employee", session.RoleAdmin)

	d := g.Evaluate()
	if d.Action != ActionPlaceholder {
		t.Fatalf("phase one: expected placeholder, got %+v", d)
	}

	d = g.Evaluate()
	if d.Action != ActionRedirect {
		t.Fatalf("phase two: expected redirect, got %+v", d)
	}
	if d.Target != "/employee/dashboard" {
		t.Fatalf("expected employee dashboard, got %q", d.Target)
	}
	if !d.ReplaceHistory {
		t.Fatal("mismatch redirect must replace history")
	}

	// Renders after dispatch stay on the placeholder; no second redirect.
	for i := 0; i < 3; i++ {
		if d := g.Evaluate(); d.Action != ActionPlaceholder {
			t.Fatalf("post-dispatch evaluation %d: got %+v", i, d)
		}
	}
}

func TestGuard_AdminOnEmployeeRouteGoesHome(t *testing.T) {
	g := newGuard(t, "admin", session.RoleEmployee)

	g.Evaluate()
	d := g.Evaluate()
	if d.Action != ActionRedirect || d.Target != "/admin/dashboard" {
		t.Fatalf("expected admin dashboard redirect, got %+v", d)
	}
}

func TestGuard_UnknownRoleIsUnauthorized(t *testing.T) {
	g := newGuard(t, "superuser", session.RoleAdmin)

	g.Evaluate()
	d := g.Evaluate()
	if d.Action != ActionRedirect || d.Target != "/unauthorized" {
		t.Fatalf("expected unauthorized redirect, got %+v", d)
	}
}

func TestGuard_ConcurrentEvaluationsDispatchOneRedirect(t *testing.T) {
	g := newGuard(t, "employee", session.RoleAdmin)

	const evaluations = 64
	var wg sync.WaitGroup
	var mu sync.Mutex
	redirects := 0

	for i := 0; i < evaluations; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if d := g.Evaluate(); d.Action == ActionRedirect {
				mu.Lock()
				redirects++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if redirects != 1 {
		t.Fatalf("expected exactly one redirect, got %d", redirects)
	}
}

func TestGuard_ResetRearmsTheMachine(t *testing.T) {
	g := newGuard(t, "employee", session.RoleAdmin)

	g.Evaluate()
	g.Evaluate()
	g.Reset()

	d := g.Evaluate()
	if d.Action != ActionPlaceholder {
		t.Fatalf("expected placeholder after reset, got %+v", d)
	}
	d = g.Evaluate()
	if d.Action != ActionRedirect {
		t.Fatalf("expected redirect after reset, got %+v", d)
	}
}
