package ledger

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
)

var ErrInvalidAction = errors.New("action kind must not be empty")

// Ledger records scored actions. It is the sole path by which a user's
// productivity score changes.
type Ledger struct {
	repo    Repo
	nowTime func() time.Time // injectable for testing
}

// Option modifies a Ledger instance.
type Option func(*Ledger)

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) Option {
	return func(l *Ledger) {
		l.nowTime = nowFunc
	}
}

func New(repo Repo, options ...Option) (*Ledger, error) {
	if repo == nil {
		return nil, pkgerrors.New("[ledger.New] repo is required")
	}
	l := &Ledger{repo: repo, nowTime: time.Now}
	for _, opt := range options {
		opt(l)
	}
	return l, nil
}

// Record appends an immutable entry and increments the user's cached score in
// one atomic unit, returning the new total. Zero points are allowed; an empty
// action kind is a validation error and nothing is written.
func (l *Ledger) Record(ctx context.Context, userID, action string, points int, metadata map[string]string) (int, error) {
	if strings.TrimSpace(action) == "" {
		return 0, ErrInvalidAction
	}

	entry := &Entry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Points:    points,
		Timestamp: l.nowTime(),
		Metadata:  metadata,
	}
	total, err := l.repo.Append(ctx, entry)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "[Ledger.Record] repo.Append")
	}
	return total, nil
}

// History returns the user's most recent entries, newest first.
func (l *Ledger) History(ctx context.Context, userID string, limit int) ([]*Entry, error) {
	entries, err := l.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "[Ledger.History] repo.ListByUser")
	}
	return entries, nil
}

// AuditSum re-sums the ledger for a user. Tests use it to assert the cached
// score never diverges from the entries.
func (l *Ledger) AuditSum(ctx context.Context, userID string) (int, error) {
	sum, err := l.repo.SumPoints(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "[Ledger.AuditSum] repo.SumPoints")
	}
	return sum, nil
}
