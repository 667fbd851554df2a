package sqldb

import (
	"context"

	"gorm.io/gorm"

	"peerlend/internal/domain/event"
)

type HistoryRepository struct{ db *gorm.DB }

func NewHistoryRepository(db *gorm.DB) *HistoryRepository { return &HistoryRepository{db: db} }

func (r *HistoryRepository) Append(ctx context.Context, entries []event.HistoryEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&entries).Error
}

func (r *HistoryRepository) ListByUserID(ctx context.Context, userID string, limit int) ([]event.HistoryEntry, error) {
	var out []event.HistoryEntry
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&out)
	return out, res.Error
}
