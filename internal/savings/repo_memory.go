package savings

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory savings repository useful for tests.
type MemoryRepo struct {
	mu      sync.Mutex
	entries map[string]Entry
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{entries: make(map[string]Entry)}
}

func (r *MemoryRepo) Create(ctx context.Context, e Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[e.ID] = e
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, orgID, id string) (Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || e.OrgID != orgID {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

func (r *MemoryRepo) ListByOrg(ctx context.Context, orgID string) ([]Entry, error) {
	return r.list(func(e Entry) bool { return e.OrgID == orgID }), nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, orgID, userID string) ([]Entry, error) {
	return r.list(func(e Entry) bool { return e.OrgID == orgID && e.UserID == userID }), nil
}

func (r *MemoryRepo) Update(ctx context.Context, e Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.entries[e.ID]
	if !ok || cur.OrgID != e.OrgID {
		return ErrNotFound
	}
	r.entries[e.ID] = e
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, orgID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || e.OrgID != orgID {
		return ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *MemoryRepo) TotalMinorByOrg(ctx context.Context, orgID string) (int64, error) {
	var sum int64
	for _, e := range r.list(func(e Entry) bool { return e.OrgID == orgID }) {
		sum += e.AmountMinor
	}
	return sum, nil
}

func (r *MemoryRepo) TotalMinorByUser(ctx context.Context, orgID, userID string) (int64, error) {
	var sum int64
	for _, e := range r.list(func(e Entry) bool { return e.OrgID == orgID && e.UserID == userID }) {
		sum += e.AmountMinor
	}
	return sum, nil
}

func (r *MemoryRepo) list(keep func(Entry) bool) []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Entry
	for _, e := range r.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}
