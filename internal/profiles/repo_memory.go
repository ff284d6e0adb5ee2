package profiles

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory profile repository useful for tests.
type MemoryRepo struct {
	mu       sync.Mutex
	profiles map[string]Profile
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{profiles: make(map[string]Profile)}
}

func (r *MemoryRepo) Create(ctx context.Context, p Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.ID] = p
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, orgID, id string) (Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok || p.OrgID != orgID {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (r *MemoryRepo) GetByUser(ctx context.Context, orgID, userID string) (Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.OrgID == orgID && p.UserID == userID {
			return p, nil
		}
	}
	return Profile{}, ErrNotFound
}

func (r *MemoryRepo) ListByOrg(ctx context.Context, orgID string) ([]Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Profile
	for _, p := range r.profiles {
		if p.OrgID == orgID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, p Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.profiles[p.ID]
	if !ok || cur.OrgID != p.OrgID {
		return ErrNotFound
	}
	r.profiles[p.ID] = p
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, orgID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok || p.OrgID != orgID {
		return ErrNotFound
	}
	delete(r.profiles, id)
	return nil
}
