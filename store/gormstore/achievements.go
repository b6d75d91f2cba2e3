package gormstore

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thriveremote/thrive-server/achievements"
)

var _ achievements.Repo = achievementRepo{}

type achievementRepo struct {
	db *gorm.DB
}

// Seed inserts the catalog rows with ON CONFLICT DO NOTHING, so repeated
// seeding leaves existing rows untouched.
func (r achievementRepo) Seed(ctx context.Context, userID string, defs []achievements.Definition) error {
	if len(defs) == 0 {
		return nil
	}
	rows := make([]achievementModel, 0, len(defs))
	for i, def := range defs {
		rows = append(rows, achievementModel{
			UserID:        userID,
			AchievementID: def.ID,
			Ord:           i,
		})
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
	if err != nil {
		return errors.Wrap(err, "[gormstore.achievements.Seed] Create")
	}
	return nil
}

// TryUnlock is a single conditional UPDATE guarded on unlocked = false. The
// database serializes the statement, so under a race exactly one caller sees
// RowsAffected == 1.
func (r achievementRepo) TryUnlock(ctx context.Context, userID, achievementID string, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&achievementModel{}).
		Where("user_id = ? AND achievement_id = ? AND unlocked = ?", userID, achievementID, false).
		Updates(map[string]any{
			"unlocked":    true,
			"unlock_date": now,
		})
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "[gormstore.achievements.TryUnlock] Updates")
	}
	if res.RowsAffected == 1 {
		return true, nil
	}

	// No transition: distinguish "already unlocked" from "no such row".
	var count int64
	err := r.db.WithContext(ctx).Model(&achievementModel{}).
		Where("user_id = ? AND achievement_id = ?", userID, achievementID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "[gormstore.achievements.TryUnlock] Count")
	}
	if count == 0 {
		return false, achievements.ErrNotFound
	}
	return false, nil
}

func (r achievementRepo) ListByUser(ctx context.Context, userID string) ([]*achievements.State, error) {
	var models []achievementModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("unlocked DESC").
		Order("ord ASC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "[gormstore.achievements.ListByUser] Find")
	}
	out := make([]*achievements.State, 0, len(models))
	for i := range models {
		out = append(out, models[i].domain())
	}
	return out, nil
}

func (r achievementRepo) CountUnlocked(ctx context.Context, userID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&achievementModel{}).
		Where("user_id = ? AND unlocked = ?", userID, true).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "[gormstore.achievements.CountUnlocked] Count")
	}
	return int(count), nil
}
