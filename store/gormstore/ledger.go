package gormstore

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/thriveremote/thrive-server/ledger"
	"github.com/thriveremote/thrive-server/users"
)

var _ ledger.Repo = ledgerRepo{}

type ledgerRepo struct {
	db *gorm.DB
}

// Append runs the insert and the score increment in one transaction: a failed
// record leaves both the ledger and the cached score unchanged, and the
// relative increment cannot lose updates under concurrency.
func (r ledgerRepo) Append(ctx context.Context, e *ledger.Entry) (int, error) {
	var total int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&userModel{}).
			Where("id = ?", e.UserID).
			Update("productivity_score", gorm.Expr("productivity_score + ?", e.Points))
		if res.Error != nil {
			return errors.Wrap(res.Error, "increment score")
		}
		if res.RowsAffected == 0 {
			return users.ErrNotFound
		}
		if err := tx.Create(toEntryModel(e)).Error; err != nil {
			return errors.Wrap(err, "insert entry")
		}
		return tx.Model(&userModel{}).
			Select("productivity_score").
			Where("id = ?", e.UserID).
			Scan(&total).Error
	})
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return 0, users.ErrNotFound
		}
		return 0, errors.Wrap(err, "[gormstore.ledger.Append] Transaction")
	}
	return total, nil
}

func (r ledgerRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*ledger.Entry, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var models []entryModel
	if err := q.Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "[gormstore.ledger.ListByUser] Find")
	}
	out := make([]*ledger.Entry, 0, len(models))
	for i := range models {
		out = append(out, models[i].domain())
	}
	return out, nil
}

func (r ledgerRepo) SumPoints(ctx context.Context, userID string) (int, error) {
	var sum *int
	err := r.db.WithContext(ctx).Model(&entryModel{}).
		Select("SUM(points)").
		Where("user_id = ?", userID).
		Scan(&sum).Error
	if err != nil {
		return 0, errors.Wrap(err, "[gormstore.ledger.SumPoints] Scan")
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}
