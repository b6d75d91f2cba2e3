package users

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("user not found")

// Repo defines the storage operations for user records. Every read-modify-write
// method must be atomic per user: two concurrent touches, score increments, or
// counter bumps for the same user must not lose updates.
type Repo interface {
	// Get retrieves a user by ID, returning ErrNotFound when absent.
	Get(ctx context.Context, id string) (*User, error)

	// Insert stores a new user record.
	Insert(ctx context.Context, u *User) error

	// Touch applies one activity stamp (AdvanceStreak semantics) atomically
	// and returns the resulting daily streak.
	Touch(ctx context.Context, id string, now time.Time) (int, error)

	// IncAchievements bumps the unlocked-achievements counter by one.
	IncAchievements(ctx context.Context, id string) error

	// SetSavings overwrites the current savings amount and returns the
	// updated user.
	SetSavings(ctx context.Context, id string, amount float64) (*User, error)

	// SetPongHighScore raises the stored high score if the given score beats
	// it, and returns the high score after the update.
	SetPongHighScore(ctx context.Context, id string, score int) (int, error)

	// IncCommands bumps the executed-commands counter and returns the new value.
	IncCommands(ctx context.Context, id string) (int, error)

	// IncEasterEggs bumps the found-easter-eggs counter and returns the new value.
	IncEasterEggs(ctx context.Context, id string) (int, error)
}
