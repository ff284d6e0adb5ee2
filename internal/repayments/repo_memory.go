package repayments

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory repayment repository useful for tests.
type MemoryRepo struct {
	mu         sync.Mutex
	repayments map[string]Repayment
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{repayments: make(map[string]Repayment)}
}

func (r *MemoryRepo) Create(ctx context.Context, rp Repayment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.repayments[rp.ID] = rp
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, orgID, id string) (Repayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rp, ok := r.repayments[id]
	if !ok || rp.OrgID != orgID {
		return Repayment{}, ErrNotFound
	}
	return rp, nil
}

func (r *MemoryRepo) ListByOrg(ctx context.Context, orgID string) ([]Repayment, error) {
	return r.list(func(rp Repayment) bool { return rp.OrgID == orgID }), nil
}

func (r *MemoryRepo) ListByLoan(ctx context.Context, orgID, loanID string) ([]Repayment, error) {
	return r.list(func(rp Repayment) bool { return rp.OrgID == orgID && rp.LoanID == loanID }), nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, orgID, userID string) ([]Repayment, error) {
	return r.list(func(rp Repayment) bool { return rp.OrgID == orgID && rp.UserID == userID }), nil
}

func (r *MemoryRepo) TotalMinorByOrg(ctx context.Context, orgID string) (int64, error) {
	return r.total(func(rp Repayment) bool { return rp.OrgID == orgID }), nil
}

func (r *MemoryRepo) TotalMinorByUser(ctx context.Context, orgID, userID string) (int64, error) {
	return r.total(func(rp Repayment) bool { return rp.OrgID == orgID && rp.UserID == userID }), nil
}

func (r *MemoryRepo) list(keep func(Repayment) bool) []Repayment {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Repayment
	for _, rp := range r.repayments {
		if keep(rp) {
			out = append(out, rp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r *MemoryRepo) total(keep func(Repayment) bool) int64 {
	var sum int64
	for _, rp := range r.list(keep) {
		sum += rp.AmountMinor
	}
	return sum
}
