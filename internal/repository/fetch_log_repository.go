package repository

import (
	"context"

	"github.com/eest6/calendar-api/internal/domain"
	"gorm.io/gorm"
)

type FetchLogRepository struct {
	db *gorm.DB
}

func NewFetchLogRepository(db *gorm.DB) *FetchLogRepository {
	return &FetchLogRepository{db: db}
}

func (r *FetchLogRepository) Create(ctx context.Context, log *domain.FetchLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// ListRecent returns the newest refresh records, newest first.
func (r *FetchLogRepository) ListRecent(ctx context.Context, limit int) ([]domain.FetchLog, error) {
	var logs []domain.FetchLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// LastSuccessfulLive returns the most recent refresh that served live data,
// or nil when none has been recorded yet.
func (r *FetchLogRepository) LastSuccessfulLive(ctx context.Context) (*domain.FetchLog, error) {
	var log domain.FetchLog
	err := r.db.WithContext(ctx).
		Where("source = ?", domain.SourceLive).
		Order("created_at DESC, id DESC").
		First(&log).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}
