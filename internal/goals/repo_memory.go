package goals

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory goal repository useful for tests.
type MemoryRepo struct {
	mu    sync.Mutex
	goals map[string]Goal
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{goals: make(map[string]Goal)}
}

func (r *MemoryRepo) Create(ctx context.Context, g Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.goals[g.ID] = g
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, orgID, id string) (Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.goals[id]
	if !ok || g.OrgID != orgID {
		return Goal{}, ErrNotFound
	}
	return g, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, orgID, userID string) ([]Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Goal
	for _, g := range r.goals {
		if g.OrgID == orgID && g.UserID == userID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, g Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.goals[g.ID]
	if !ok || cur.OrgID != g.OrgID {
		return ErrNotFound
	}
	r.goals[g.ID] = g
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, orgID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.goals[id]
	if !ok || g.OrgID != orgID {
		return ErrNotFound
	}
	delete(r.goals, id)
	return nil
}
