package loans

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory loan repository useful for tests.
type MemoryRepo struct {
	mu    sync.Mutex
	loans map[string]Loan
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{loans: make(map[string]Loan)}
}

func (r *MemoryRepo) Create(ctx context.Context, l Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loans[l.ID] = l
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, orgID, id string) (Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.loans[id]
	if !ok || l.OrgID != orgID {
		return Loan{}, ErrNotFound
	}
	return l, nil
}

func (r *MemoryRepo) ListByOrg(ctx context.Context, orgID string) ([]Loan, error) {
	return r.list(func(l Loan) bool { return l.OrgID == orgID }), nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, orgID, userID string) ([]Loan, error) {
	return r.list(func(l Loan) bool { return l.OrgID == orgID && l.UserID == userID }), nil
}

func (r *MemoryRepo) Update(ctx context.Context, l Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.loans[l.ID]
	if !ok || cur.OrgID != l.OrgID {
		return ErrNotFound
	}
	r.loans[l.ID] = l
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, orgID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.loans[id]
	if !ok || l.OrgID != orgID {
		return ErrNotFound
	}
	delete(r.loans, id)
	return nil
}

func (r *MemoryRepo) OutstandingMinorByOrg(ctx context.Context, orgID string) (int64, error) {
	return r.outstanding(func(l Loan) bool { return l.OrgID == orgID }), nil
}

func (r *MemoryRepo) OutstandingMinorByUser(ctx context.Context, orgID, userID string) (int64, error) {
	return r.outstanding(func(l Loan) bool { return l.OrgID == orgID && l.UserID == userID }), nil
}

func (r *MemoryRepo) list(keep func(Loan) bool) []Loan {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Loan
	for _, l := range r.loans {
		if keep(l) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r *MemoryRepo) outstanding(keep func(Loan) bool) int64 {
	var sum int64
	for _, l := range r.list(keep) {
		if l.Status != StatusApproved {
			continue
		}
		if rem := l.PrincipalMinor - l.RepaidMinor; rem > 0 {
			sum += rem
		}
	}
	return sum
}
