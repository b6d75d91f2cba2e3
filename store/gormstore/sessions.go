package gormstore

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/thriveremote/thrive-server/sessions"
)

var _ sessions.Repo = sessionRepo{}

type sessionRepo struct {
	db *gorm.DB
}

func (r sessionRepo) Put(ctx context.Context, s *sessions.Session) error {
	if err := r.db.WithContext(ctx).Create(toSessionModel(s)).Error; err != nil {
		return errors.Wrap(err, "[gormstore.sessions.Put] Create")
	}
	return nil
}

func (r sessionRepo) Get(ctx context.Context, token string) (*sessions.Session, error) {
	var m sessionModel
	err := r.db.WithContext(ctx).First(&m, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, sessions.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "[gormstore.sessions.Get] First")
	}
	return m.domain(), nil
}

func (r sessionRepo) Touch(ctx context.Context, token string, now time.Time) error {
	res := r.db.WithContext(ctx).Model(&sessionModel{}).
		Where("token = ?", token).
		Update("last_used_at", now)
	if res.Error != nil {
		return errors.Wrap(res.Error, "[gormstore.sessions.Touch] Update")
	}
	if res.RowsAffected == 0 {
		return sessions.ErrNotFound
	}
	return nil
}

func (r sessionRepo) Delete(ctx context.Context, token string) error {
	if err := r.db.WithContext(ctx).Delete(&sessionModel{}, "token = ?", token).Error; err != nil {
		return errors.Wrap(err, "[gormstore.sessions.Delete] Delete")
	}
	return nil
}

func (r sessionRepo) DeleteExpired(ctx context.Context, cutoff time.Time) (int, error) {
	res := r.db.WithContext(ctx).Delete(&sessionModel{}, "expires_at <= ?", cutoff)
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "[gormstore.sessions.DeleteExpired] Delete")
	}
	return int(res.RowsAffected), nil
}
