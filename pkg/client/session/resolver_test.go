package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type countingNotifier struct {
	messages []string
}

func (n *countingNotifier) Notify(message string) {
	n.messages = append(n.messages, message)
}

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("irrelevant"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func TestResolver_AbsentTokenIsSilent(t *testing.T) {
	store := newStore(t)
	notifier := &countingNotifier{}

	id := NewResolver(store, notifier).ResolveIdentity()
	if id != nil {
		t.Fatalf("expected nil identity, got %+v", id)
	}
	if len(notifier.messages) != 0 {
		t.Fatalf("absent token must not notify, got %v", notifier.messages)
	}
}

func TestResolver_DecodesClaimsWithoutVerification(t *testing.T) {
	store := newStore(t)
	token := signedToken(t, jwt.MapClaims{
		"user_id": "u1",
		"org_id":  "o1",
		"name":    "Ada Admin",
		"role":    "ADMIN",
	})
	if err := store.SetToken(token); err != nil {
		t.Fatalf("set token: %v", err)
	}

	notifier := &countingNotifier{}
	id := NewResolver(store, notifier).ResolveIdentity()
	if id == nil {
		t.Fatal("expected identity")
	}
	if id.UserID != "u1" || id.Name != "Ada Admin" {
		t.Fatalf("unexpected identity: %+v", id)
	}
	if id.Role != RoleAdmin {
		t.Fatalf("role not normalized: %q", id.Role)
	}
	if len(notifier.messages) != 0 {
		t.Fatalf("valid token must not notify, got %v", notifier.messages)
	}
}

func TestResolver_ExpiredTokenStillDecodes(t *testing.T) {
	// Expiry is the server's call; the decoder must not judge it.
	store := newStore(t)
	token := signedToken(t, jwt.MapClaims{
		"user_id": "u1",
		"role":    "employee",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	if err := store.SetToken(token); err != nil {
		t.Fatalf("set token: %v", err)
	}

	id := NewResolver(store, &countingNotifier{}).ResolveIdentity()
	if id == nil {
		t.Fatal("expected identity from expired token")
	}
	if id.Role != RoleEmployee {
		t.Fatalf("unexpected role: %q", id.Role)
	}
}

func TestResolver_MalformedTokenNotifiesOnce(t *testing.T) {
	store := newStore(t)
	if err := store.SetToken("not-a-jwt"); err != nil {
		t.Fatalf("set token: %v", err)
	}

	notifier := &countingNotifier{}
	id := NewResolver(store, notifier).ResolveIdentity()
	if id != nil {
		t.Fatalf("expected nil identity, got %+v", id)
	}
	if len(notifier.messages) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(notifier.messages))
	}

	// The resolver is a pure read: the bad token stays in the store.
	if tok, ok := store.Token(); !ok || tok != "not-a-jwt" {
		t.Fatalf("resolver mutated the store: %q %v", tok, ok)
	}
}

func TestResolver_UnknownRoleNormalizesToUnknown(t *testing.T) {
	store := newStore(t)
	token := signedToken(t, jwt.MapClaims{"user_id": "u1", "role": "superuser"})
	if err := store.SetToken(token); err != nil {
		t.Fatalf("set token: %v", err)
	}

	id := NewResolver(store, &countingNotifier{}).ResolveIdentity()
	if id == nil {
		t.Fatal("expected identity")
	}
	if id.Role != RoleUnknown {
		t.Fatalf("expected RoleUnknown, got %q", id.Role)
	}
}
