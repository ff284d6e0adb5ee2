package savings

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for savings entries.
type Repository interface {
	Create(ctx context.Context, e Entry) error
	GetByID(ctx context.Context, orgID, id string) (Entry, error)
	ListByOrg(ctx context.Context, orgID string) ([]Entry, error)
	ListByUser(ctx context.Context, orgID, userID string) ([]Entry, error)
	Update(ctx context.Context, e Entry) error
	Delete(ctx context.Context, orgID, id string) error
	TotalMinorByOrg(ctx context.Context, orgID string) (int64, error)
	TotalMinorByUser(ctx context.Context, orgID, userID string) (int64, error)
}

var (
	ErrNotFound        = errors.New("savings entry not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

type CreateInput struct {
	UserID      string
	AmountMinor int64
	Currency    string
	Note        string
}

func (s *Service) Create(ctx context.Context, orgID string, in CreateInput) (Entry, error) {
	if orgID == "" || in.UserID == "" {
		return Entry{}, ErrInvalidArgument
	}
	if in.AmountMinor <= 0 || strings.TrimSpace(in.Currency) == "" {
		return Entry{}, ErrInvalidArgument
	}

	now := s.clock().UTC()
	e := Entry{
		ID:          uuid.NewString(),
		OrgID:       orgID,
		UserID:      in.UserID,
		AmountMinor: in.AmountMinor,
		Currency:    strings.ToUpper(strings.TrimSpace(in.Currency)),
		Note:        strings.TrimSpace(in.Note),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Service) ListByOrg(ctx context.Context, orgID string) ([]Entry, error) {
	if orgID == "" {
		return nil, ErrInvalidArgument
	}
	return s.repo.ListByOrg(ctx, orgID)
}

func (s *Service) ListByUser(ctx context.Context, orgID, userID string) ([]Entry, error) {
	if orgID == "" || userID == "" {
		return nil, ErrInvalidArgument
	}
	return s.repo.ListByUser(ctx, orgID, userID)
}

type UpdateInput struct {
	AmountMinor int64
	Note        string
}

func (s *Service) Update(ctx context.Context, orgID, id string, in UpdateInput) (Entry, error) {
	if orgID == "" || id == "" {
		return Entry{}, ErrInvalidArgument
	}
	e, err := s.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return Entry{}, err
	}
	if in.AmountMinor != 0 {
		if in.AmountMinor < 0 {
			return Entry{}, ErrInvalidArgument
		}
		e.AmountMinor = in.AmountMinor
	}
	if v := strings.TrimSpace(in.Note); v != "" {
		e.Note = v
	}
	e.UpdatedAt = s.clock().UTC()

	if err := s.repo.Update(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, orgID, id string) error {
	if orgID == "" || id == "" {
		return ErrInvalidArgument
	}
	return s.repo.Delete(ctx, orgID, id)
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
