package employees

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory user repository useful for tests.
// It is not intended for production use.
type MemoryRepo struct {
	mu    sync.Mutex
	users map[string]User
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{users: make(map[string]User)}
}

func (r *MemoryRepo) Create(ctx context.Context, u User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, orgID, id string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.OrgID != orgID {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *MemoryRepo) ListByOrg(ctx context.Context, orgID string) ([]User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []User
	for _, u := range r.users {
		if u.OrgID == orgID {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, u User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.users[u.ID]
	if !ok || cur.OrgID != u.OrgID {
		return ErrNotFound
	}
	r.users[u.ID] = u
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, orgID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.OrgID != orgID {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}
