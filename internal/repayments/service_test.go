package repayments

import (
	"context"
	"errors"
	"testing"

	"fintrack-platform/internal/loans"
)

func setup(t *testing.T) (*Service, *loans.Service) {
	t.Helper()
	loanSvc := loans.NewService(loans.NewMemoryRepo())
	return NewService(NewMemoryRepo(), loanSvc), loanSvc
}

func approvedLoan(t *testing.T, loanSvc *loans.Service, orgID string, principal int64) loans.Loan {
	t.Helper()
	l, err := loanSvc.Create(context.Background(), orgID, loans.CreateInput{
		UserID: "u1", PrincipalMinor: principal, Currency: "KES",
	})
	if err != nil {
		t.Fatalf("create loan: %v", err)
	}
	l, err = loanSvc.UpdateStatus(context.Background(), orgID, l.ID, loans.StatusApproved)
	if err != nil {
		t.Fatalf("approve loan: %v", err)
	}
	return l
}

func TestService_CreateAppliesToLoan(t *testing.T) {
	svc, loanSvc := setup(t)
	ctx := context.Background()

	l := approvedLoan(t, loanSvc, "org", 1000)

	rp, err := svc.Create(ctx, "org", CreateInput{LoanID: l.ID, AmountMinor: 400, Note: "july"})
	if err != nil {
		t.Fatalf("create repayment: %v", err)
	}
	if rp.UserID != l.UserID || rp.Currency != "KES" {
		t.Fatalf("repayment did not inherit loan fields: %+v", rp)
	}

	got, err := loanSvc.Get(ctx, "org", l.ID)
	if err != nil {
		t.Fatalf("get loan: %v", err)
	}
	if got.RepaidMinor != 400 || got.Status != loans.StatusApproved {
		t.Fatalf("unexpected loan state: %+v", got)
	}
}

func TestService_FullRepaymentMarksLoanPaid(t *testing.T) {
	svc, loanSvc := setup(t)
	ctx := context.Background()

	l := approvedLoan(t, loanSvc, "org", 1000)

	if _, err := svc.Create(ctx, "org", CreateInput{LoanID: l.ID, AmountMinor: 600}); err != nil {
		t.Fatalf("first installment: %v", err)
	}
	if _, err := svc.Create(ctx, "org", CreateInput{LoanID: l.ID, AmountMinor: 400}); err != nil {
		t.Fatalf("second installment: %v", err)
	}

	got, err := loanSvc.Get(ctx, "org", l.ID)
	if err != nil {
		t.Fatalf("get loan: %v", err)
	}
	if got.Status != loans.StatusPaid {
		t.Fatalf("expected paid loan, got %q", got.Status)
	}

	// No further installments once paid, and no orphan record is written.
	if _, err := svc.Create(ctx, "org", CreateInput{LoanID: l.ID, AmountMinor: 100}); !errors.Is(err, loans.ErrNotRepayable) {
		t.Fatalf("expected ErrNotRepayable, got %v", err)
	}
	history, err := svc.ListByLoan(ctx, "org", l.ID)
	if err != nil {
		t.Fatalf("list by loan: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 repayments, got %d", len(history))
	}
}

func TestService_CreateRejectsPendingLoan(t *testing.T) {
	svc, loanSvc := setup(t)
	ctx := context.Background()

	l, err := loanSvc.Create(ctx, "org", loans.CreateInput{UserID: "u1", PrincipalMinor: 500, Currency: "KES"})
	if err != nil {
		t.Fatalf("create loan: %v", err)
	}
	if _, err := svc.Create(ctx, "org", CreateInput{LoanID: l.ID, AmountMinor: 100}); !errors.Is(err, loans.ErrNotRepayable) {
		t.Fatalf("expected ErrNotRepayable, got %v", err)
	}
}

func TestService_Totals(t *testing.T) {
	svc, loanSvc := setup(t)
	ctx := context.Background()

	l := approvedLoan(t, loanSvc, "org", 1000)
	other := approvedLoan(t, loanSvc, "org", 2000)

	for _, amount := range []int64{100, 200} {
		if _, err := svc.Create(ctx, "org", CreateInput{LoanID: l.ID, AmountMinor: amount}); err != nil {
			t.Fatalf("repay: %v", err)
		}
	}
	if _, err := svc.Create(ctx, "org", CreateInput{LoanID: other.ID, AmountMinor: 500}); err != nil {
		t.Fatalf("repay: %v", err)
	}

	sum, err := svc.TotalMinorByOrg(ctx, "org")
	if err != nil {
		t.Fatalf("total by org: %v", err)
	}
	if sum != 800 {
		t.Fatalf("expected 800, got %d", sum)
	}

	sum, err = svc.TotalMinorByUser(ctx, "org", "u1")
	if err != nil {
		t.Fatalf("total by user: %v", err)
	}
	if sum != 800 {
		t.Fatalf("expected 800, got %d", sum)
	}
}
