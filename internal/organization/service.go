package organization

import (
	"context"
	"errors"
	"strings"
	"time"

	"fintrack-platform/internal/employees"
	"fintrack-platform/internal/rbac"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Repository is the persistence contract for organizations.
//
// RegisterWithAdmin must be atomic: either the organization and its first
// admin user both exist afterwards, or neither does.
type Repository interface {
	RegisterWithAdmin(ctx context.Context, org Organization, admin employees.User) error
	GetByID(ctx context.Context, id string) (Organization, error)
	Update(ctx context.Context, org Organization) error
}

var (
	ErrNotFound        = errors.New("organization not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

type Service struct {
	repo  Repository
	users *employees.Service
	clock func() time.Time
}

func NewService(repo Repository, users *employees.Service) *Service {
	return &Service{repo: repo, users: users, clock: time.Now}
}

type RegisterInput struct {
	Name    string
	Email   string
	Phone   string
	Address string

	AdminFullName string
	AdminEmail    string
	AdminPassword string
}

// Register creates an organization together with its admin account.
// This backs the public sign-up flow; the new admin logs in afterwards.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Organization, employees.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.AdminFullName = strings.TrimSpace(in.AdminFullName)
	in.AdminEmail = strings.ToLower(strings.TrimSpace(in.AdminEmail))

	if in.Name == "" || in.Email == "" {
		return Organization{}, employees.User{}, ErrInvalidArgument
	}
	if in.AdminFullName == "" || in.AdminEmail == "" || len(in.AdminPassword) < 8 {
		return Organization{}, employees.User{}, ErrInvalidArgument
	}

	if _, err := s.users.GetByEmail(ctx, in.AdminEmail); err == nil {
		return Organization{}, employees.User{}, employees.ErrEmailTaken
	} else if !errors.Is(err, employees.ErrNotFound) {
		return Organization{}, employees.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return Organization{}, employees.User{}, err
	}

	now := s.clock().UTC()
	org := Organization{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
		CreatedAt: now,
		UpdatedAt: now,
	}
	admin := employees.User{
		ID:           uuid.NewString(),
		OrgID:        org.ID,
		FullName:     in.AdminFullName,
		Email:        in.AdminEmail,
		Role:         rbac.RoleAdmin,
		PasswordHash: string(hash),
		Status:       employees.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.RegisterWithAdmin(ctx, org, admin); err != nil {
		return Organization{}, employees.User{}, err
	}
	return org, admin, nil
}

func (s *Service) Get(ctx context.Context, id string) (Organization, error) {
	if id == "" {
		return Organization{}, ErrInvalidArgument
	}
	return s.repo.GetByID(ctx, id)
}

type UpdateInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Organization, error) {
	org, err := s.Get(ctx, id)
	if err != nil {
		return Organization{}, err
	}

	if v := strings.TrimSpace(in.Name); v != "" {
		org.Name = v
	}
	if v := strings.ToLower(strings.TrimSpace(in.Email)); v != "" {
		org.Email = v
	}
	if v := strings.TrimSpace(in.Phone); v != "" {
		org.Phone = v
	}
	if v := strings.TrimSpace(in.Address); v != "" {
		org.Address = v
	}
	org.UpdatedAt = s.clock().UTC()

	if err := s.repo.Update(ctx, org); err != nil {
		return Organization{}, err
	}
	return org, nil
}
