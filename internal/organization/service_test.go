package organization

import (
	"context"
	"errors"
	"testing"

	"fintrack-platform/internal/employees"
	"fintrack-platform/internal/rbac"
)

func newTestService() (*Service, *employees.Service) {
	usersRepo := employees.NewMemoryRepo()
	users := employees.NewService(usersRepo)
	return NewService(NewMemoryRepo(usersRepo), users), users
}

func TestRegister_CreatesOrgAndAdmin(t *testing.T) {
	svc, users := newTestService()

	org, admin, err := svc.Register(context.Background(), RegisterInput{
		Name:          "Acme Sacco",
		Email:         "info@acme.example",
		AdminFullName: "Jane Doe",
		AdminEmail:    "jane@acme.example",
		AdminPassword: "password1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if org.ID == "" || admin.ID == "" {
		t.Fatalf("expected ids assigned")
	}
	if admin.OrgID != org.ID {
		t.Fatalf("admin not linked to org")
	}
	if admin.Role != rbac.RoleAdmin {
		t.Fatalf("expected admin role, got %q", admin.Role)
	}

	if _, err := users.Authenticate(context.Background(), "jane@acme.example", "password1"); err != nil {
		t.Fatalf("admin cannot log in: %v", err)
	}
	if _, err := svc.Get(context.Background(), org.ID); err != nil {
		t.Fatalf("org lookup: %v", err)
	}
}

func TestRegister_RejectsTakenAdminEmail(t *testing.T) {
	svc, _ := newTestService()

	in := RegisterInput{
		Name: "Acme", Email: "a@example.com",
		AdminFullName: "A", AdminEmail: "admin@example.com", AdminPassword: "password1",
	}
	if _, _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("register: %v", err)
	}
	in.Name = "Other"
	if _, _, err := svc.Register(context.Background(), in); !errors.Is(err, employees.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUpdate_PartialFields(t *testing.T) {
	svc, _ := newTestService()

	org, _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Acme", Email: "a@example.com",
		AdminFullName: "A", AdminEmail: "admin@example.com", AdminPassword: "password1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	got, err := svc.Update(context.Background(), org.ID, UpdateInput{Phone: "+254700000000"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Name != "Acme" {
		t.Fatalf("name clobbered: %q", got.Name)
	}
	if got.Phone != "+254700000000" {
		t.Fatalf("phone not updated: %q", got.Phone)
	}
}
