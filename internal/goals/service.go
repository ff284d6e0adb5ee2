package goals

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for personal goals.
type Repository interface {
	Create(ctx context.Context, g Goal) error
	GetByID(ctx context.Context, orgID, id string) (Goal, error)
	ListByUser(ctx context.Context, orgID, userID string) ([]Goal, error)
	Update(ctx context.Context, g Goal) error
	Delete(ctx context.Context, orgID, id string) error
}

var (
	ErrNotFound        = errors.New("goal not found")
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
	Title       string
	TargetMinor int64
	Currency    string
	Deadline    *time.Time
}

func (s *Service) Create(ctx context.Context, orgID, userID string, in CreateInput) (Goal, error) {
	if orgID == "" || userID == "" {
		return Goal{}, ErrInvalidArgument
	}
	if strings.TrimSpace(in.Title) == "" || in.TargetMinor <= 0 {
		return Goal{}, ErrInvalidArgument
	}
	if strings.TrimSpace(in.Currency) == "" {
		return Goal{}, ErrInvalidArgument
	}

	now := s.clock().UTC()
	g := Goal{
		ID:          uuid.NewString(),
		OrgID:       orgID,
		UserID:      userID,
		Title:       strings.TrimSpace(in.Title),
		TargetMinor: in.TargetMinor,
		Currency:    strings.ToUpper(strings.TrimSpace(in.Currency)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Deadline != nil {
		d := in.Deadline.UTC()
		g.Deadline = &d
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return Goal{}, err
	}
	return g, nil
}

// Get returns the caller's goal. Goals owned by other users report not found
// so the endpoint does not reveal which IDs exist.
func (s *Service) Get(ctx context.Context, orgID, userID, id string) (Goal, error) {
	if orgID == "" || userID == "" || id == "" {
		return Goal{}, ErrInvalidArgument
	}
	g, err := s.repo.GetByID(ctx, orgID, id)
	if err != nil {
		return Goal{}, err
	}
	if g.UserID != userID {
		return Goal{}, ErrNotFound
	}
	return g, nil
}

func (s *Service) ListByUser(ctx context.Context, orgID, userID string) ([]Goal, error) {
	if orgID == "" || userID == "" {
		return nil, ErrInvalidArgument
	}
	return s.repo.ListByUser(ctx, orgID, userID)
}

type UpdateInput struct {
	Title       string
	TargetMinor int64
	SavedMinor  int64
	Deadline    *time.Time
}

func (s *Service) Update(ctx context.Context, orgID, userID, id string, in UpdateInput) (Goal, error) {
	g, err := s.Get(ctx, orgID, userID, id)
	if err != nil {
		return Goal{}, err
	}
	if v := strings.TrimSpace(in.Title); v != "" {
		g.Title = v
	}
	if in.TargetMinor != 0 {
		if in.TargetMinor < 0 {
			return Goal{}, ErrInvalidArgument
		}
		g.TargetMinor = in.TargetMinor
	}
	if in.SavedMinor != 0 {
		if in.SavedMinor < 0 {
			return Goal{}, ErrInvalidArgument
		}
		g.SavedMinor = in.SavedMinor
	}
	if in.Deadline != nil {
		d := in.Deadline.UTC()
		g.Deadline = &d
	}
	g.UpdatedAt = s.clock().UTC()

	if err := s.repo.Update(ctx, g); err != nil {
		return Goal{}, err
	}
	return g, nil
}

func (s *Service) Delete(ctx context.Context, orgID, userID, id string) error {
	g, err := s.Get(ctx, orgID, userID, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, orgID, g.ID)
}
