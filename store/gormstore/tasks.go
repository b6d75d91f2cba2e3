package gormstore

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/thriveremote/thrive-server/jobs"
	"github.com/thriveremote/thrive-server/tasks"
)

var _ tasks.Repo = taskRepo{}

type taskRepo struct {
	db *gorm.DB
}

func (r taskRepo) Insert(ctx context.Context, t *tasks.Task) error {
	if err := r.db.WithContext(ctx).Create(toTaskModel(t)).Error; err != nil {
		return errors.Wrap(err, "[gormstore.tasks.Insert] Create")
	}
	return nil
}

func (r taskRepo) Get(ctx context.Context, userID, taskID string) (*tasks.Task, error) {
	var model taskModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, taskID).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, tasks.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "[gormstore.tasks.Get] First")
	}
	return model.domain(), nil
}

func (r taskRepo) ListByUser(ctx context.Context, userID string) ([]*tasks.Task, error) {
	var models []taskModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "[gormstore.tasks.ListByUser] Find")
	}
	out := make([]*tasks.Task, 0, len(models))
	for i := range models {
		out = append(out, models[i].domain())
	}
	return out, nil
}

func (r taskRepo) MarkCompleted(ctx context.Context, userID, taskID string, now time.Time) (*tasks.Task, error) {
	res := r.db.WithContext(ctx).Model(&taskModel{}).
		Where("user_id = ? AND id = ?", userID, taskID).
		Updates(map[string]any{
			"status":       tasks.StatusCompleted,
			"completed_at": now,
		})
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "[gormstore.tasks.MarkCompleted] Updates")
	}
	if res.RowsAffected == 0 {
		return nil, tasks.ErrNotFound
	}
	return r.Get(ctx, userID, taskID)
}

func (r taskRepo) CountByStatus(ctx context.Context, userID, status string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&taskModel{}).
		Where("user_id = ? AND status = ?", userID, status).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "[gormstore.tasks.CountByStatus] Count")
	}
	return int(count), nil
}

var _ jobs.Repo = applicationRepo{}

type applicationRepo struct {
	db *gorm.DB
}

func (r applicationRepo) Insert(ctx context.Context, a *jobs.Application) error {
	if err := r.db.WithContext(ctx).Create(toApplicationModel(a)).Error; err != nil {
		return errors.Wrap(err, "[gormstore.applications.Insert] Create")
	}
	return nil
}

func (r applicationRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&applicationModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "[gormstore.applications.CountByUser] Count")
	}
	return int(count), nil
}

func (r applicationRepo) ListByUser(ctx context.Context, userID string) ([]*jobs.Application, error) {
	var models []applicationModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("submitted_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "[gormstore.applications.ListByUser] Find")
	}
	out := make([]*jobs.Application, 0, len(models))
	for i := range models {
		out = append(out, models[i].domain())
	}
	return out, nil
}
