package sessions

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/pkg/errors"
)

const (
	// tokenLength is the number of random bytes behind each token, well above
	// the 128-bit unguessability floor.
	tokenLength = 32

	// DefaultTTL is the session lifetime when none is configured.
	DefaultTTL = 24 * time.Hour
)

// Store issues, resolves, and invalidates session tokens on top of a Repo.
// Expiry is enforced lazily at resolve time; Sweep exists only to bound the
// memory of long-running processes.
type Store struct {
	repo    Repo
	ttl     time.Duration
	nowTime func() time.Time // injectable for testing
}

// StoreOption modifies a Store instance.
type StoreOption func(*Store)

// WithTTL overrides the session lifetime.
func WithTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) StoreOption {
	return func(s *Store) {
		s.nowTime = nowFunc
	}
}

func NewStore(repo Repo, options ...StoreOption) (*Store, error) {
	if repo == nil {
		return nil, errors.New("[NewStore] session repo is required")
	}
	s := &Store{
		repo:    repo,
		ttl:     DefaultTTL,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Issue generates a fresh opaque token for the user and stores the session.
// The expiry is fixed at issue time and is never extended by use.
func (s *Store) Issue(ctx context.Context, userID string) (string, error) {
	bytes := make([]byte, tokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", errors.Wrap(err, "[Store.Issue] rand.Read")
	}
	token := base64.URLEncoding.EncodeToString(bytes)

	now := s.nowTime()
	session := &Session{
		Token:      token,
		UserID:     userID,
		CreatedAt:  now,
		LastUsedAt: now,
		ExpiresAt:  now.Add(s.ttl),
	}
	if err := s.repo.Put(ctx, session); err != nil {
		return "", errors.Wrap(err, "[Store.Issue] repo.Put")
	}
	return token, nil
}

// Resolve returns the user behind a live token. Unknown and expired tokens
// both resolve to ok=false; callers must treat that identically to no token
// being supplied at all. Expired sessions are removed lazily here.
func (s *Store) Resolve(ctx context.Context, token string) (string, bool) {
	if token == "" {
		return "", false
	}

	session, err := s.repo.Get(ctx, token)
	if err != nil {
		return "", false
	}

	now := s.nowTime()
	if !session.Alive(now) {
		_ = s.repo.Delete(ctx, token)
		return "", false
	}

	_ = s.repo.Touch(ctx, token, now)
	return session.UserID, true
}

// Invalidate removes a session. Invalidating twice, or a token that was never
// issued, is a no-op.
func (s *Store) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.repo.Delete(ctx, token); err != nil {
		return errors.Wrap(err, "[Store.Invalidate] repo.Delete")
	}
	return nil
}

// Sweep removes every session that has already expired and returns the count.
func (s *Store) Sweep(ctx context.Context) (int, error) {
	removed, err := s.repo.DeleteExpired(ctx, s.nowTime())
	if err != nil {
		return 0, errors.Wrap(err, "[Store.Sweep] repo.DeleteExpired")
	}
	return removed, nil
}
