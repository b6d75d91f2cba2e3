package memstore

import (
	"context"
	"time"

	"github.com/thriveremote/thrive-server/sessions"
)

var _ sessions.Repo = sessionRepo{}

type sessionRepo struct {
	s *Store
}

func (r sessionRepo) Put(_ context.Context, session *sessions.Session) error {
	r.s.lock.Lock()
	defer r.s.lock.Unlock()
	clone := *session
	r.s.sessions[session.Token] = &clone
	return nil
}

func (r sessionRepo) Get(_ context.Context, token string) (*sessions.Session, error) {
	r.s.lock.RLock()
	defer r.s.lock.RUnlock()
	session, ok := r.s.sessions[token]
	if !ok {
		return nil, sessions.ErrNotFound
	}
	clone := *session
	return &clone, nil
}

func (r sessionRepo) Touch(_ context.Context, token string, now time.Time) error {
	r.s.lock.Lock()
	defer r.s.lock.Unlock()
	session, ok := r.s.sessions[token]
	if !ok {
		return sessions.ErrNotFound
	}
	session.LastUsedAt = now
	return nil
}

func (r sessionRepo) Delete(_ context.Context, token string) error {
	r.s.lock.Lock()
	defer r.s.lock.Unlock()
	delete(r.s.sessions, token)
	return nil
}

func (r sessionRepo) DeleteExpired(_ context.Context, cutoff time.Time) (int, error) {
	r.s.lock.Lock()
	defer r.s.lock.Unlock()
	removed := 0
	for token, session := range r.s.sessions {
		if !cutoff.Before(session.ExpiresAt) {
			delete(r.s.sessions, token)
			removed++
		}
	}
	return removed, nil
}
