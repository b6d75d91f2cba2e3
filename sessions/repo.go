package sessions

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("session not found")

// Repo defines the interface for session storage. Operations on the same token
// must be linearizable; there is no cross-token ordering requirement.
type Repo interface {
	// Put stores a session keyed by its token.
	Put(ctx context.Context, s *Session) error

	// Get retrieves a session by token, returning ErrNotFound when absent.
	Get(ctx context.Context, token string) (*Session, error)

	// Touch refreshes the session's last-used time. The expiry is untouched.
	Touch(ctx context.Context, token string, now time.Time) error

	// Delete removes a session. Deleting an unknown token is a no-op.
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes sessions whose expiry is at or before the cutoff
	// and returns how many were removed. It must never remove a session whose
	// expiry is in the future.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int, error)
}
