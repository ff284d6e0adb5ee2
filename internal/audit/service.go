package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for audit events.
//
// It MUST be append-only.
// No Update/Delete methods are provided by design.

type Repository interface {
	Append(ctx context.Context, e Event) error
}

// Service logs internal audit information.
//
// Audit is internal-only; these records are never exposed to tenant users.
// Callers treat audit logging as best-effort.

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

var ErrInvalidEvent = errors.New("audit: invalid event")

func (s *Service) Append(ctx context.Context, e Event) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if e.OrgID == "" {
		return ErrInvalidEvent
	}
	if e.Type == "" {
		return ErrInvalidEvent
	}

	now := s.clock().UTC()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	return s.repo.Append(ctx, e)
}

// LogAdminAction records an administrative mutation against a user record or
// organization settings.
func (s *Service) LogAdminAction(ctx context.Context, orgID, actorUserID, actorRole, ip, message, targetUserID string) error {
	return s.Append(ctx, Event{
		OrgID:        orgID,
		Type:         EventTypeAdminAction,
		ActorUserID:  actorUserID,
		ActorRole:    actorRole,
		IPAddress:    ip,
		TargetUserID: targetUserID,
		Message:      message,
	})
}

// LogLoanStatusChange records a loan moving through its lifecycle.
func (s *Service) LogLoanStatusChange(ctx context.Context, orgID, actorUserID, actorRole, ip, loanID, fromStatus, toStatus string) error {
	return s.Append(ctx, Event{
		OrgID:       orgID,
		Type:        EventTypeLoanStatusChange,
		ActorUserID: actorUserID,
		ActorRole:   actorRole,
		IPAddress:   ip,
		LoanID:      loanID,
		Message:     "loan status " + fromStatus + " -> " + toStatus,
	})
}
