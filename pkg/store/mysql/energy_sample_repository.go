package mysql

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"minerops/pkg/store/mysql/model"
)

// EnergySampleRepository handles energy reading persistence in MySQL
type EnergySampleRepository struct {
	ds *Datastore
}

// NewEnergySampleRepository creates a new energy sample repository
func NewEnergySampleRepository(ds *Datastore) *EnergySampleRepository {
	return &EnergySampleRepository{ds: ds}
}

// Create stores one energy reading
func (r *EnergySampleRepository) Create(ctx context.Context, sample *model.EnergySample) error {
	return r.ds.DB(ctx).Create(sample).Error
}

// Latest retrieves the most recent reading, nil when the table is empty
func (r *EnergySampleRepository) Latest(ctx context.Context) (*model.EnergySample, error) {
	var sample model.EnergySample
	err := r.ds.DB(ctx).Order("timestamp DESC").First(&sample).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest energy sample: %w", err)
	}
	return &sample, nil
}

// Range retrieves readings in [from, to] ordered by timestamp
func (r *EnergySampleRepository) Range(ctx context.Context, from, to time.Time) ([]model.EnergySample, error) {
	var samples []model.EnergySample
	err := r.ds.DB(ctx).
		Where("timestamp BETWEEN ? AND ?", from, to).
		Order("timestamp ASC").
		Find(&samples).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get energy samples range: %w", err)
	}
	return samples, nil
}

// DeleteOlderThan prunes readings before the cutoff
func (r *EnergySampleRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.ds.DB(ctx).
		Where("timestamp < ?", cutoff).
		Delete(&model.EnergySample{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to prune energy samples: %w", result.Error)
	}
	return result.RowsAffected, nil
}
