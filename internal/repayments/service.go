package repayments

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"fintrack-platform/internal/loans"
)

// Repository is the persistence contract for repayments.
type Repository interface {
	Create(ctx context.Context, rp Repayment) error
	GetByID(ctx context.Context, orgID, id string) (Repayment, error)
	ListByOrg(ctx context.Context, orgID string) ([]Repayment, error)
	ListByLoan(ctx context.Context, orgID, loanID string) ([]Repayment, error)
	ListByUser(ctx context.Context, orgID, userID string) ([]Repayment, error)
	TotalMinorByOrg(ctx context.Context, orgID string) (int64, error)
	TotalMinorByUser(ctx context.Context, orgID, userID string) (int64, error)
}

// LoanLedger is the slice of the loans service a repayment needs: look up
// the loan and post the amount against it. *loans.Service satisfies it.
type LoanLedger interface {
	Get(ctx context.Context, orgID, id string) (loans.Loan, error)
	ApplyRepayment(ctx context.Context, orgID, id string, amountMinor int64) (loans.Loan, error)
}

var (
	ErrNotFound        = errors.New("repayment not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

type Service struct {
	repo   Repository
	ledger LoanLedger
	clock  func() time.Time
}

func NewService(repo Repository, ledger LoanLedger) *Service {
	return &Service{repo: repo, ledger: ledger, clock: time.Now}
}

type CreateInput struct {
	LoanID      string
	AmountMinor int64
	Note        string
}

// Create posts a repayment. The loan must be approved; the amount is applied
// to the loan first so an unpayable loan never gains a repayment record.
func (s *Service) Create(ctx context.Context, orgID string, in CreateInput) (Repayment, error) {
	if orgID == "" || in.LoanID == "" || in.AmountMinor <= 0 {
		return Repayment{}, ErrInvalidArgument
	}

	l, err := s.ledger.ApplyRepayment(ctx, orgID, in.LoanID, in.AmountMinor)
	if err != nil {
		return Repayment{}, err
	}

	rp := Repayment{
		ID:          uuid.NewString(),
		OrgID:       orgID,
		LoanID:      l.ID,
		UserID:      l.UserID,
		AmountMinor: in.AmountMinor,
		Currency:    l.Currency,
		Note:        in.Note,
		CreatedAt:   s.clock().UTC(),
	}
	if err := s.repo.Create(ctx, rp); err != nil {
		return Repayment{}, err
	}
	return rp, nil
}

func (s *Service) Get(ctx context.Context, orgID, id string) (Repayment, error) {
	if orgID == "" || id == "" {
		return Repayment{}, ErrInvalidArgument
	}
	return s.repo.GetByID(ctx, orgID, id)
}

func (s *Service) ListByOrg(ctx context.Context, orgID string) ([]Repayment, error) {
	if orgID == "" {
		return nil, ErrInvalidArgument
	}
	return s.repo.ListByOrg(ctx, orgID)
}

// ListByLoan returns the installment history of one loan.
func (s *Service) ListByLoan(ctx context.Context, orgID, loanID string) ([]Repayment, error) {
	if orgID == "" || loanID == "" {
		return nil, ErrInvalidArgument
	}
	if _, err := s.ledger.Get(ctx, orgID, loanID); err != nil {
		return nil, err
	}
	return s.repo.ListByLoan(ctx, orgID, loanID)
}

func (s *Service) ListByUser(ctx context.Context, orgID, userID string) ([]Repayment, error) {
	if orgID == "" || userID == "" {
		return nil, ErrInvalidArgument
	}
	return s.repo.ListByUser(ctx, orgID, userID)
}

func (s *Service) TotalMinorByOrg(ctx context.Context, orgID string) (int64, error) {
	if orgID == "" {
		return 0, ErrInvalidArgument
	}
	return s.repo.TotalMinorByOrg(ctx, orgID)
}

func (s *Service) TotalMinorByUser(ctx context.Context, orgID, userID string) (int64, error) {
	if orgID == "" || userID == "" {
		return 0, ErrInvalidArgument
	}
	return s.repo.TotalMinorByUser(ctx, orgID, userID)
}
