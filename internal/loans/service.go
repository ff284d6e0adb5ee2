package loans

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for loans.
type Repository interface {
	Create(ctx context.Context, l Loan) error
	GetByID(ctx context.Context, orgID, id string) (Loan, error)
	ListByOrg(ctx context.Context, orgID string) ([]Loan, error)
	ListByUser(ctx context.Context, orgID, userID string) ([]Loan, error)
	Update(ctx context.Context, l Loan) error
	Delete(ctx context.Context, orgID, id string) error
	OutstandingMinorByOrg(ctx context.Context, orgID string) (int64, error)
	OutstandingMinorByUser(ctx context.Context, orgID, userID string) (int64, error)
}

var (
	ErrNotFound          = errors.New("loan not found")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotRepayable      = errors.New("loan is not approved")
)

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

type CreateInput struct {
	UserID         string
	PrincipalMinor int64
	Currency       string
	Purpose        string
}

// Create records a new loan request. Loans start pending; an admin moves
// them through the status transitions.
func (s *Service) Create(ctx context.Context, orgID string, in CreateInput) (Loan, error) {
	if orgID == "" || in.UserID == "" {
		return Loan{}, ErrInvalidArgument
	}
	if in.PrincipalMinor <= 0 || strings.TrimSpace(in.Currency) == "" {
		return Loan{}, ErrInvalidArgument
	}

	now := s.clock().UTC()
	l := Loan{
		ID:             uuid.NewString(),
		OrgID:          orgID,
		UserID:         in.UserID,
		PrincipalMinor: in.PrincipalMinor,
		Currency:       strings.ToUpper(strings.TrimSpace(in.Currency)),
		Purpose:        strings.TrimSpace(in.Purpose),
		Status:         StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return Loan{}, err
	}
	return l, nil
}

func (s *Service) Get(ctx context.Context, orgID, id string) (Loan, error) {
	if orgID == "" || id == "" {
		return Loan{}, ErrInvalidArgument
	}
	return s.repo.GetByID(ctx, orgID, id)
}

func (s *Service) ListByOrg(ctx context.Context, orgID string) ([]Loan, error) {
	if orgID == "" {
		return nil, ErrInvalidArgument
	}
	return s.repo.ListByOrg(ctx, orgID)
}

func (s *Service) ListByUser(ctx context.Context, orgID, userID string) ([]Loan, error) {
	if orgID == "" || userID == "" {
		return nil, ErrInvalidArgument
	}
	return s.repo.ListByUser(ctx, orgID, userID)
}

// UpdateStatus moves a loan along the allowed transitions.
func (s *Service) UpdateStatus(ctx context.Context, orgID, id string, to Status) (Loan, error) {
	if !ValidStatus(to) {
		return Loan{}, ErrInvalidArgument
	}
	l, err := s.Get(ctx, orgID, id)
	if err != nil {
		return Loan{}, err
	}
	if !CanTransition(l.Status, to) {
		return Loan{}, ErrInvalidTransition
	}

	l.Status = to
	l.UpdatedAt = s.clock().UTC()
	if err := s.repo.Update(ctx, l); err != nil {
		return Loan{}, err
	}
	return l, nil
}

// ApplyRepayment posts a repayment amount against an approved loan and flips
// it to paid once the principal is covered. Called by the repayments service.
func (s *Service) ApplyRepayment(ctx context.Context, orgID, id string, amountMinor int64) (Loan, error) {
	if amountMinor <= 0 {
		return Loan{}, ErrInvalidArgument
	}
	l, err := s.Get(ctx, orgID, id)
	if err != nil {
		return Loan{}, err
	}
	if l.Status != StatusApproved {
		return Loan{}, ErrNotRepayable
	}

	l.RepaidMinor += amountMinor
	if l.RepaidMinor >= l.PrincipalMinor {
		l.Status = StatusPaid
	}
	l.UpdatedAt = s.clock().UTC()

	if err := s.repo.Update(ctx, l); err != nil {
		return Loan{}, err
	}
	return l, nil
}

func (s *Service) Delete(ctx context.Context, orgID, id string) error {
	if orgID == "" || id == "" {
		return ErrInvalidArgument
	}
	return s.repo.Delete(ctx, orgID, id)
}

// OutstandingMinorByOrg sums principal minus repayments over approved loans.
func (s *Service) OutstandingMinorByOrg(ctx context.Context, orgID string) (int64, error) {
	if orgID == "" {
		return 0, ErrInvalidArgument
	}
	return s.repo.OutstandingMinorByOrg(ctx, orgID)
}

func (s *Service) OutstandingMinorByUser(ctx context.Context, orgID, userID string) (int64, error) {
	if orgID == "" || userID == "" {
		return 0, ErrInvalidArgument
	}
	return s.repo.OutstandingMinorByUser(ctx, orgID, userID)
}
