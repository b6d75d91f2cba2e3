package memstore

import (
	"context"

	"github.com/thriveremote/thrive-server/ledger"
	"github.com/thriveremote/thrive-server/users"
)

var _ ledger.Repo = ledgerRepo{}

type ledgerRepo struct {
	s *Store
}

// Append writes the entry and moves the cached score under one lock hold, so
// the pair is atomic and concurrent appends for the same user never lose an
// increment.
func (r ledgerRepo) Append(_ context.Context, e *ledger.Entry) (int, error) {
	r.s.lock.Lock()
	defer r.s.lock.Unlock()
	u, ok := r.s.users[e.UserID]
	if !ok {
		return 0, users.ErrNotFound
	}
	clone := *e
	r.s.entries[e.UserID] = append(r.s.entries[e.UserID], &clone)
	u.ProductivityScore += e.Points
	return u.ProductivityScore, nil
}

func (r ledgerRepo) ListByUser(_ context.Context, userID string, limit int) ([]*ledger.Entry, error) {
	r.s.lock.RLock()
	defer r.s.lock.RUnlock()
	all := r.s.entries[userID]
	if limit <= 0 || limit > len(all) {
		limit = len(all)
	}
	out := make([]*ledger.Entry, 0, limit)
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		clone := *all[i]
		out = append(out, &clone)
	}
	return out, nil
}

func (r ledgerRepo) SumPoints(_ context.Context, userID string) (int, error) {
	r.s.lock.RLock()
	defer r.s.lock.RUnlock()
	sum := 0
	for _, e := range r.s.entries[userID] {
		sum += e.Points
	}
	return sum, nil
}
