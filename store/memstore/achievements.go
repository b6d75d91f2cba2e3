package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/thriveremote/thrive-server/achievements"
	"github.com/thriveremote/thrive-server/internal/utils"
)

var _ achievements.Repo = achievementRepo{}

type achievementRepo struct {
	s *Store
}

func (r achievementRepo) Seed(_ context.Context, userID string, defs []achievements.Definition) error {
	r.s.lock.Lock()
	defer r.s.lock.Unlock()
	rows, ok := r.s.achievements[userID]
	if !ok {
		rows = make(map[string]*achievements.State, len(defs))
		r.s.achievements[userID] = rows
	}
	for i, def := range defs {
		if _, exists := rows[def.ID]; exists {
			continue
		}
		rows[def.ID] = &achievements.State{
			AchievementID: def.ID,
			UserID:        userID,
			Ord:           i,
		}
	}
	return nil
}

// TryUnlock checks and flips the row under the write lock, which makes the
// false-to-true transition a compare-and-swap: concurrent callers for the
// same row serialize here and only the first sees false.
func (r achievementRepo) TryUnlock(_ context.Context, userID, achievementID string, now time.Time) (bool, error) {
	r.s.lock.Lock()
	defer r.s.lock.Unlock()
	row, ok := r.s.achievements[userID][achievementID]
	if !ok {
		return false, achievements.ErrNotFound
	}
	if row.Unlocked {
		return false, nil
	}
	row.Unlocked = true
	row.UnlockDate = utils.Ptr(now)
	return true, nil
}

func (r achievementRepo) ListByUser(_ context.Context, userID string) ([]*achievements.State, error) {
	r.s.lock.RLock()
	defer r.s.lock.RUnlock()
	rows := make([]*achievements.State, 0, len(r.s.achievements[userID]))
	for _, row := range r.s.achievements[userID] {
		clone := *row
		rows = append(rows, &clone)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Unlocked != rows[j].Unlocked {
			return rows[i].Unlocked
		}
		return rows[i].Ord < rows[j].Ord
	})
	return rows, nil
}

func (r achievementRepo) CountUnlocked(_ context.Context, userID string) (int, error) {
	r.s.lock.RLock()
	defer r.s.lock.RUnlock()
	count := 0
	for _, row := range r.s.achievements[userID] {
		if row.Unlocked {
			count++
		}
	}
	return count, nil
}
