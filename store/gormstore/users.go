package gormstore

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/thriveremote/thrive-server/users"
)

var _ users.Repo = userRepo{}

type userRepo struct {
	db *gorm.DB
}

func (r userRepo) Get(ctx context.Context, id string) (*users.User, error) {
	var m userModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, users.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "[gormstore.users.Get] First")
	}
	return m.domain(), nil
}

func (r userRepo) Insert(ctx context.Context, u *users.User) error {
	err := r.db.WithContext(ctx).Create(toUserModel(u)).Error
	if err != nil {
		if isDuplicateKey(err) {
			return users.ErrExists
		}
		return errors.Wrap(err, "[gormstore.users.Insert] Create")
	}
	return nil
}

// isDuplicateKey matches primary-key violations across Postgres and SQLite.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}

// Touch advances the streak with conditional UPDATEs keyed on the previous
// streak date, so two concurrent touches for the same user cannot both
// increment: whichever statement matches first wins and the loser's condition
// no longer holds.
func (r userRepo) Touch(ctx context.Context, id string, now time.Time) (int, error) {
	today := users.DateKey(now)
	yesterday := users.DateKey(now.AddDate(0, 0, -1))
	db := r.db.WithContext(ctx)

	// Continue the streak.
	res := db.Model(&userModel{}).
		Where("id = ? AND last_streak_date = ?", id, yesterday).
		Updates(map[string]any{
			"daily_streak":     gorm.Expr("daily_streak + 1"),
			"last_streak_date": today,
			"last_active_at":   now,
			"total_sessions":   gorm.Expr("total_sessions + 1"),
		})
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "[gormstore.users.Touch] continue")
	}

	if res.RowsAffected == 0 {
		// Reset the streak after a gap (or a never-stamped user). A user
		// already stamped today matches neither condition and stays put.
		res = db.Model(&userModel{}).
			Where("id = ? AND last_streak_date <> ? AND last_streak_date <> ?", id, today, yesterday).
			Updates(map[string]any{
				"daily_streak":     1,
				"last_streak_date": today,
				"last_active_at":   now,
				"total_sessions":   gorm.Expr("total_sessions + 1"),
			})
		if res.Error != nil {
			return 0, errors.Wrap(res.Error, "[gormstore.users.Touch] reset")
		}
	}

	var m userModel
	if err := db.Select("daily_streak").First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, users.ErrNotFound
		}
		return 0, errors.Wrap(err, "[gormstore.users.Touch] re-read")
	}
	return m.DailyStreak, nil
}

func (r userRepo) IncAchievements(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ?", id).
		Update("achievements_unlocked", gorm.Expr("achievements_unlocked + 1"))
	if res.Error != nil {
		return errors.Wrap(res.Error, "[gormstore.users.IncAchievements] Update")
	}
	if res.RowsAffected == 0 {
		return users.ErrNotFound
	}
	return nil
}

func (r userRepo) SetSavings(ctx context.Context, id string, amount float64) (*users.User, error) {
	res := r.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ?", id).
		Update("current_savings", amount)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "[gormstore.users.SetSavings] Update")
	}
	if res.RowsAffected == 0 {
		return nil, users.ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r userRepo) SetPongHighScore(ctx context.Context, id string, score int) (int, error) {
	res := r.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ? AND pong_high_score < ?", id, score).
		Update("pong_high_score", score)
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "[gormstore.users.SetPongHighScore] Update")
	}
	return r.readCounter(ctx, id, "pong_high_score")
}

func (r userRepo) IncCommands(ctx context.Context, id string) (int, error) {
	res := r.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ?", id).
		Update("commands_executed", gorm.Expr("commands_executed + 1"))
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "[gormstore.users.IncCommands] Update")
	}
	if res.RowsAffected == 0 {
		return 0, users.ErrNotFound
	}
	return r.readCounter(ctx, id, "commands_executed")
}

func (r userRepo) IncEasterEggs(ctx context.Context, id string) (int, error) {
	res := r.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ?", id).
		Update("easter_eggs_found", gorm.Expr("easter_eggs_found + 1"))
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "[gormstore.users.IncEasterEggs] Update")
	}
	if res.RowsAffected == 0 {
		return 0, users.ErrNotFound
	}
	return r.readCounter(ctx, id, "easter_eggs_found")
}

func (r userRepo) readCounter(ctx context.Context, id, column string) (int, error) {
	var value int
	err := r.db.WithContext(ctx).Model(&userModel{}).
		Select(column).
		Where("id = ?", id).
		Scan(&value).Error
	if err != nil {
		return 0, errors.Wrap(err, "[gormstore.users.readCounter] Scan")
	}
	return value, nil
}
