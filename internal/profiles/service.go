package profiles

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for employment profiles.
type Repository interface {
	Create(ctx context.Context, p Profile) error
	GetByID(ctx context.Context, orgID, id string) (Profile, error)
	GetByUser(ctx context.Context, orgID, userID string) (Profile, error)
	ListByOrg(ctx context.Context, orgID string) ([]Profile, error)
	Update(ctx context.Context, p Profile) error
	Delete(ctx context.Context, orgID, id string) error
}

var (
	ErrNotFound        = errors.New("profile not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrProfileExists   = errors.New("user already has a profile")
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
	Position    string
	SalaryMinor int64
	Currency    string
	HireDate    time.Time
}

func (s *Service) Create(ctx context.Context, orgID string, in CreateInput) (Profile, error) {
	if orgID == "" || in.UserID == "" {
		return Profile{}, ErrInvalidArgument
	}
	if strings.TrimSpace(in.Position) == "" || in.SalaryMinor < 0 {
		return Profile{}, ErrInvalidArgument
	}
	if strings.TrimSpace(in.Currency) == "" || in.HireDate.IsZero() {
		return Profile{}, ErrInvalidArgument
	}

	// One profile per user.
	if _, err := s.repo.GetByUser(ctx, orgID, in.UserID); err == nil {
		return Profile{}, ErrProfileExists
	} else if !errors.Is(err, ErrNotFound) {
		return Profile{}, err
	}

	now := s.clock().UTC()
	p := Profile{
		ID:          uuid.NewString(),
		OrgID:       orgID,
		UserID:      in.UserID,
		Position:    strings.TrimSpace(in.Position),
		SalaryMinor: in.SalaryMinor,
		Currency:    strings.ToUpper(strings.TrimSpace(in.Currency)),
		HireDate:    in.HireDate.UTC(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, orgID, id string) (Profile, error) {
	if orgID == "" || id == "" {
		return Profile{}, ErrInvalidArgument
	}
	return s.repo.GetByID(ctx, orgID, id)
}

// GetByUser looks a profile up by its owner, backing the "my profile" view.
func (s *Service) GetByUser(ctx context.Context, orgID, userID string) (Profile, error) {
	if orgID == "" || userID == "" {
		return Profile{}, ErrInvalidArgument
	}
	return s.repo.GetByUser(ctx, orgID, userID)
}

func (s *Service) ListByOrg(ctx context.Context, orgID string) ([]Profile, error) {
	if orgID == "" {
		return nil, ErrInvalidArgument
	}
	return s.repo.ListByOrg(ctx, orgID)
}

type UpdateInput struct {
	Position    string
	SalaryMinor int64
	Currency    string
	HireDate    time.Time
}

func (s *Service) Update(ctx context.Context, orgID, id string, in UpdateInput) (Profile, error) {
	if orgID == "" || id == "" {
		return Profile{}, ErrInvalidArgument
	}
	p, err := s.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return Profile{}, err
	}
	if v := strings.TrimSpace(in.Position); v != "" {
		p.Position = v
	}
	if in.SalaryMinor != 0 {
		if in.SalaryMinor < 0 {
			return Profile{}, ErrInvalidArgument
		}
		p.SalaryMinor = in.SalaryMinor
	}
	if v := strings.TrimSpace(in.Currency); v != "" {
		p.Currency = strings.ToUpper(v)
	}
	if !in.HireDate.IsZero() {
		p.HireDate = in.HireDate.UTC()
	}
	p.UpdatedAt = s.clock().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, orgID, id string) error {
	if orgID == "" || id == "" {
		return ErrInvalidArgument
	}
	return s.repo.Delete(ctx, orgID, id)
}
