package organization

import (
	"context"
	"sync"

	"fintrack-platform/internal/employees"
)

// MemoryRepo is an in-memory organization repository useful for tests.
// It delegates admin creation to an employees repository so the register
// flow exercises both records.
type MemoryRepo struct {
	mu    sync.Mutex
	orgs  map[string]Organization
	users employees.Repository
}

func NewMemoryRepo(users employees.Repository) *MemoryRepo {
	return &MemoryRepo{orgs: make(map[string]Organization), users: users}
}

func (r *MemoryRepo) RegisterWithAdmin(ctx context.Context, org Organization, admin employees.User) error {
	r.mu.Lock()
	r.orgs[org.ID] = org
	r.mu.Unlock()
	if err := r.users.Create(ctx, admin); err != nil {
		r.mu.Lock()
		delete(r.orgs, org.ID)
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Organization, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	org, ok := r.orgs[id]
	if !ok {
		return Organization{}, ErrNotFound
	}
	return org, nil
}

func (r *MemoryRepo) Update(ctx context.Context, org Organization) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orgs[org.ID]; !ok {
		return ErrNotFound
	}
	r.orgs[org.ID] = org
	return nil
}
