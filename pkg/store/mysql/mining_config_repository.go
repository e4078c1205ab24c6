package mysql

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"minerops/pkg/store/mysql/model"
)

// MiningConfigRepository handles mining config persistence in MySQL
type MiningConfigRepository struct {
	ds *Datastore
}

// NewMiningConfigRepository creates a new mining config repository
func NewMiningConfigRepository(ds *Datastore) *MiningConfigRepository {
	return &MiningConfigRepository{ds: ds}
}

// Create creates a new mining config
func (r *MiningConfigRepository) Create(ctx context.Context, cfg *model.MiningConfig) error {
	return r.ds.DB(ctx).Create(cfg).Error
}

// Get retrieves a mining config by ID, nil when not found
func (r *MiningConfigRepository) Get(ctx context.Context, id int64) (*model.MiningConfig, error) {
	var cfg model.MiningConfig
	err := r.ds.DB(ctx).Where("id = ?", id).First(&cfg).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get mining config: %w", err)
	}
	return &cfg, nil
}

// ListByUser retrieves all configs belonging to a user
func (r *MiningConfigRepository) ListByUser(ctx context.Context, userID int64) ([]model.MiningConfig, error) {
	var configs []model.MiningConfig
	err := r.ds.DB(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&configs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list mining configs: %w", err)
	}
	return configs, nil
}

// UpdateFields updates specific fields of a mining config
func (r *MiningConfigRepository) UpdateFields(ctx context.Context, id int64, updates map[string]interface{}) error {
	return r.ds.DB(ctx).Model(&model.MiningConfig{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// SetActive flips the active flag with CAS semantics so a start and a
// stop racing on the same config cannot both win.
func (r *MiningConfigRepository) SetActive(ctx context.Context, id int64, from, to bool) error {
	result := r.ds.DB(ctx).Model(&model.MiningConfig{}).
		Where("id = ? AND active = ?", id, from).
		Update("active", to)

	if result.Error != nil {
		return fmt.Errorf("failed to update mining config: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("mining config not found or already in requested state: id=%d", id)
	}
	return nil
}

// Delete deletes a mining config
func (r *MiningConfigRepository) Delete(ctx context.Context, id int64) error {
	return r.ds.DB(ctx).Where("id = ?", id).Delete(&model.MiningConfig{}).Error
}
