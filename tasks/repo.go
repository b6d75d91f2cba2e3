package tasks

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("task not found")

// Repo defines storage for user tasks.
type Repo interface {
	// Insert stores a new task.
	Insert(ctx context.Context, t *Task) error

	// Get retrieves a task owned by the user, returning ErrNotFound when
	// absent or owned by somebody else.
	Get(ctx context.Context, userID, taskID string) (*Task, error)

	// ListByUser returns the user's tasks, newest first.
	ListByUser(ctx context.Context, userID string) ([]*Task, error)

	// MarkCompleted sets the task's status to completed with the given
	// completion time and returns the updated task.
	MarkCompleted(ctx context.Context, userID, taskID string, now time.Time) (*Task, error)

	// CountByStatus counts the user's tasks in the given status.
	CountByStatus(ctx context.Context, userID, status string) (int, error)
}
