package employees

import (
	"context"
	"errors"
	"strings"
	"time"

	"fintrack-platform/internal/rbac"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Repository is the persistence contract for users.
type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, orgID, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ListByOrg(ctx context.Context, orgID string) ([]User, error)
	Update(ctx context.Context, u User) error
	Delete(ctx context.Context, orgID, id string) error
}

var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service owns user lifecycle and credential checks.
type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

type CreateInput struct {
	FullName string
	Email    string
	Password string
	Role     string
}

func (s *Service) Create(ctx context.Context, orgID string, in CreateInput) (User, error) {
	if orgID == "" {
		return User{}, ErrInvalidArgument
	}
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = normalizeEmail(in.Email)
	if in.FullName == "" || in.Email == "" || len(in.Password) < 8 {
		return User{}, ErrInvalidArgument
	}
	role := rbac.Normalize(in.Role)
	if role == rbac.RoleUnknown {
		return User{}, ErrInvalidArgument
	}

	if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
		return User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	now := s.clock().UTC()
	u := User{
		ID:           uuid.NewString(),
		OrgID:        orgID,
		FullName:     in.FullName,
		Email:        in.Email,
		Role:         role,
		PasswordHash: string(hash),
		Status:       UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Authenticate checks credentials for login. It returns ErrInvalidCredentials
// for both unknown emails and wrong passwords so callers cannot probe accounts.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if u.Status != UserStatusActive {
		return User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, orgID, id string) (User, error) {
	if orgID == "" || id == "" {
		return User{}, ErrInvalidArgument
	}
	return s.repo.GetByID(ctx, orgID, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return User{}, ErrInvalidArgument
	}
	return s.repo.GetByEmail(ctx, email)
}

func (s *Service) List(ctx context.Context, orgID string) ([]User, error) {
	if orgID == "" {
		return nil, ErrInvalidArgument
	}
	return s.repo.ListByOrg(ctx, orgID)
}

type UpdateInput struct {
	FullName string
	Role     string
	Status   string
}

func (s *Service) Update(ctx context.Context, orgID, id string, in UpdateInput) (User, error) {
	u, err := s.Get(ctx, orgID, id)
	if err != nil {
		return User{}, err
	}

	if v := strings.TrimSpace(in.FullName); v != "" {
		u.FullName = v
	}
	if in.Role != "" {
		role := rbac.Normalize(in.Role)
		if role == rbac.RoleUnknown {
			return User{}, ErrInvalidArgument
		}
		u.Role = role
	}
	if in.Status != "" {
		switch UserStatus(in.Status) {
		case UserStatusActive, UserStatusDisabled:
			u.Status = UserStatus(in.Status)
		default:
			return User{}, ErrInvalidArgument
		}
	}
	u.UpdatedAt = s.clock().UTC()

	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// SetPassword replaces a user's password. Used by the reset flow; the caller
// is responsible for having verified the reset token.
func (s *Service) SetPassword(ctx context.Context, orgID, id, password string) error {
	if len(password) < 8 {
		return ErrInvalidArgument
	}
	u, err := s.Get(ctx, orgID, id)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = s.clock().UTC()
	return s.repo.Update(ctx, u)
}

func (s *Service) Delete(ctx context.Context, orgID, id string) error {
	if orgID == "" || id == "" {
		return ErrInvalidArgument
	}
	return s.repo.Delete(ctx, orgID, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
