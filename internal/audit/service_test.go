package audit

import (
	"context"
	"testing"
)

func TestService_AppendRequiresOrgAndType(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	if err := svc.Append(context.Background(), Event{Type: EventTypeAdminAction}); err == nil {
		t.Fatalf("expected error")
	}
	if err := svc.Append(context.Background(), Event{OrgID: "o"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestService_AppendsImmutableEvents(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	if err := svc.LogAdminAction(context.Background(), "o", "u", "admin", "1.2.3.4", "created employee", "u2"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := svc.LogLoanStatusChange(context.Background(), "o", "u", "admin", "1.2.3.4", "loan1", "pending", "approved"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	evs := repo.Events()
	if len(evs) != 2 {
		t.Fatalf("expected 2 events, got %d", len(evs))
	}
	if evs[0].IPAddress != "1.2.3.4" || evs[0].Type != EventTypeAdminAction {
		t.Fatalf("unexpected first event: %+v", evs[0])
	}
	if evs[1].LoanID != "loan1" || evs[1].Message != "loan status pending -> approved" {
		t.Fatalf("unexpected second event: %+v", evs[1])
	}
}
