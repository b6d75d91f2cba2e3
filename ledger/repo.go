package ledger

import "context"

// Repo defines storage for the points ledger. Append must write the entry and
// add its points to the user's cached productivity score as one atomic unit:
// either both happen or neither does, and two concurrent appends for the same
// user must not lose an increment.
type Repo interface {
	// Append stores the entry, adds entry.Points to the user's score, and
	// returns the new cumulative total.
	Append(ctx context.Context, e *Entry) (int, error)

	// ListByUser returns the user's most recent entries, newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]*Entry, error)

	// SumPoints re-sums the user's entries. This is the audit view; the user
	// record holds the authoritative cached total.
	SumPoints(ctx context.Context, userID string) (int, error)
}
