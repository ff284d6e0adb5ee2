package employees

import (
	"context"
	"errors"
	"testing"

	"fintrack-platform/internal/rbac"
)

func TestService_CreateAndAuthenticate(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	u, err := svc.Create(context.Background(), "org-1", CreateInput{
		FullName: "Jane Doe",
		Email:    "Jane@Example.com",
		Password: "hunter2hunter2",
		Role:     "Employee",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.Email != "jane@example.com" {
		t.Fatalf("expected lower-cased email, got %q", u.Email)
	}
	if u.Role != rbac.RoleEmployee {
		t.Fatalf("expected normalized role, got %q", u.Role)
	}
	if u.PasswordHash == "hunter2hunter2" {
		t.Fatalf("password stored in clear")
	}

	got, err := svc.Authenticate(context.Background(), "jane@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("authenticated wrong user")
	}

	if _, err := svc.Authenticate(context.Background(), "jane@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "nobody@example.com", "hunter2hunter2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestService_CreateRejectsDuplicateEmail(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	in := CreateInput{FullName: "A", Email: "a@example.com", Password: "password1", Role: "admin"}
	if _, err := svc.Create(context.Background(), "org-1", in); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(context.Background(), "org-2", in); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestService_CreateRejectsUnknownRole(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	_, err := svc.Create(context.Background(), "org-1", CreateInput{
		FullName: "A", Email: "a@example.com", Password: "password1", Role: "manager",
	})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestService_DisabledUserCannotAuthenticate(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	u, err := svc.Create(context.Background(), "org-1", CreateInput{
		FullName: "A", Email: "a@example.com", Password: "password1", Role: "employee",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Update(context.Background(), "org-1", u.ID, UpdateInput{Status: "disabled"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "a@example.com", "password1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for disabled user, got %v", err)
	}
}

func TestService_SetPasswordRotatesCredential(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	u, err := svc.Create(context.Background(), "org-1", CreateInput{
		FullName: "A", Email: "a@example.com", Password: "password1", Role: "employee",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.SetPassword(context.Background(), "org-1", u.ID, "password2"); err != nil {
		t.Fatalf("set password: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "a@example.com", "password1"); err == nil {
		t.Fatalf("old password still valid")
	}
	if _, err := svc.Authenticate(context.Background(), "a@example.com", "password2"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}
