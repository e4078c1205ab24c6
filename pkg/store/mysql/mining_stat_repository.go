package mysql

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"minerops/pkg/store/mysql/model"
)

// MiningStatRepository handles fleet sample persistence in MySQL
type MiningStatRepository struct {
	ds *Datastore
}

// NewMiningStatRepository creates a new mining stat repository
func NewMiningStatRepository(ds *Datastore) *MiningStatRepository {
	return &MiningStatRepository{ds: ds}
}

// Create stores one fleet sample
func (r *MiningStatRepository) Create(ctx context.Context, stat *model.MiningStat) error {
	return r.ds.DB(ctx).Create(stat).Error
}

// Latest retrieves the most recent sample, nil when the table is empty
func (r *MiningStatRepository) Latest(ctx context.Context) (*model.MiningStat, error) {
	var stat model.MiningStat
	err := r.ds.DB(ctx).Order("timestamp DESC").First(&stat).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest mining stat: %w", err)
	}
	return &stat, nil
}

// Range retrieves samples in [from, to] ordered by timestamp
func (r *MiningStatRepository) Range(ctx context.Context, from, to time.Time) ([]model.MiningStat, error) {
	var stats []model.MiningStat
	err := r.ds.DB(ctx).
		Where("timestamp BETWEEN ? AND ?", from, to).
		Order("timestamp ASC").
		Find(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get mining stats range: %w", err)
	}
	return stats, nil
}

// DeleteOlderThan prunes samples before the cutoff, returning the number
// of deleted rows
func (r *MiningStatRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.ds.DB(ctx).
		Where("timestamp < ?", cutoff).
		Delete(&model.MiningStat{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to prune mining stats: %w", result.Error)
	}
	return result.RowsAffected, nil
}
