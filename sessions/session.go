package sessions

import "time"

// Session maps an opaque token to a logged-in context. The expiry is fixed at
// creation and is never extended by use; only LastUsedAt moves on resolution.
type Session struct {
	Token      string    `json:"token"`
	UserID     string    `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
	LastUsedAt time.Time `json:"last_used_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Alive reports whether the session is still valid at the given instant.
func (s *Session) Alive(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}
