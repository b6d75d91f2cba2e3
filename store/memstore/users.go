package memstore

import (
	"context"
	"time"

	"github.com/thriveremote/thrive-server/users"
)

var _ users.Repo = userRepo{}

type userRepo struct {
	s *Store
}

func (r userRepo) Get(_ context.Context, id string) (*users.User, error) {
	r.s.lock.RLock()
	defer r.s.lock.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, users.ErrNotFound
	}
	return u.Clone(), nil
}

func (r userRepo) Insert(_ context.Context, u *users.User) error {
	r.s.lock.Lock()
	defer r.s.lock.Unlock()
	if _, ok := r.s.users[u.ID]; ok {
		return users.ErrExists
	}
	r.s.users[u.ID] = u.Clone()
	return nil
}

func (r userRepo) Touch(_ context.Context, id string, now time.Time) (int, error) {
	r.s.lock.Lock()
	defer r.s.lock.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return 0, users.ErrNotFound
	}
	users.AdvanceStreak(u, now)
	return u.DailyStreak, nil
}

func (r userRepo) IncAchievements(_ context.Context, id string) error {
	r.s.lock.Lock()
	defer r.s.lock.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return users.ErrNotFound
	}
	u.AchievementsUnlocked++
	return nil
}

func (r userRepo) SetSavings(_ context.Context, id string, amount float64) (*users.User, error) {
	r.s.lock.Lock()
	defer r.s.lock.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, users.ErrNotFound
	}
	u.CurrentSavings = amount
	return u.Clone(), nil
}

func (r userRepo) SetPongHighScore(_ context.Context, id string, score int) (int, error) {
	r.s.lock.Lock()
	defer r.s.lock.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return 0, users.ErrNotFound
	}
	if score > u.PongHighScore {
		u.PongHighScore = score
	}
	return u.PongHighScore, nil
}

func (r userRepo) IncCommands(_ context.Context, id string) (int, error) {
	r.s.lock.Lock()
	defer r.s.lock.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return 0, users.ErrNotFound
	}
	u.CommandsExecuted++
	return u.CommandsExecuted, nil
}

func (r userRepo) IncEasterEggs(_ context.Context, id string) (int, error) {
	r.s.lock.Lock()
	defer r.s.lock.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return 0, users.ErrNotFound
	}
	u.EasterEggsFound++
	return u.EasterEggsFound, nil
}
