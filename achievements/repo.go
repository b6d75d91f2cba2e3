package achievements

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("achievement not found")

// Repo defines storage for per-user achievement state. TryUnlock is the only
// mutation after seeding and must be a conditional transition, not a
// read-then-write: under concurrent calls for the same (user, achievement)
// exactly one caller may observe true.
type Repo interface {
	// Seed creates an unlocked=false row per definition for the user, leaving
	// rows that already exist untouched. Safe to call repeatedly.
	Seed(ctx context.Context, userID string, defs []Definition) error

	// TryUnlock transitions the row from unlocked=false to unlocked=true with
	// the given unlock time, only if it is currently false. It reports whether
	// the transition happened. Unknown rows return ErrNotFound.
	TryUnlock(ctx context.Context, userID, achievementID string, now time.Time) (bool, error)

	// ListByUser returns the user's rows ordered unlocked-first, then by
	// catalog order.
	ListByUser(ctx context.Context, userID string) ([]*State, error)

	// CountUnlocked returns how many achievements the user has unlocked.
	CountUnlocked(ctx context.Context, userID string) (int, error)
}
