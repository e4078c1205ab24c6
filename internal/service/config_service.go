package service

import (
	"context"
	"fmt"

	smodel "minerops/pkg/store/mysql/model"
)

type configStore interface {
	Create(ctx context.Context, cfg *smodel.MiningConfig) error
	Get(ctx context.Context, id int64) (*smodel.MiningConfig, error)
	ListByUser(ctx context.Context, userID int64) ([]smodel.MiningConfig, error)
	UpdateFields(ctx context.Context, id int64, updates map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
}

// ConfigService handles named rig setups.
type ConfigService struct {
	configs configStore
}

// NewConfigService creates the config service.
func NewConfigService(configs configStore) *ConfigService {
	return &ConfigService{configs: configs}
}

// Create stores a new rig setup for a user.
func (s *ConfigService) Create(ctx context.Context, cfg *smodel.MiningConfig) error {
	if cfg.Name == "" {
		return fmt.Errorf("config name is required")
	}
	if cfg.Coin == "" {
		return fmt.Errorf("config coin is required")
	}
	return s.configs.Create(ctx, cfg)
}

// Get returns one setup by ID, nil when not found.
func (s *ConfigService) Get(ctx context.Context, id int64) (*smodel.MiningConfig, error) {
	return s.configs.Get(ctx, id)
}

// ListByUser returns a user's setups.
func (s *ConfigService) ListByUser(ctx context.Context, userID int64) ([]smodel.MiningConfig, error) {
	return s.configs.ListByUser(ctx, userID)
}

// Update applies field updates to a setup.
func (s *ConfigService) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	cfg, err := s.configs.Get(ctx, id)
	if err != nil {
		return err
	}
	if cfg == nil {
		return fmt.Errorf("mining config not found: %d", id)
	}
	return s.configs.UpdateFields(ctx, id, updates)
}

// Delete removes a setup. An active setup must be stopped first.
func (s *ConfigService) Delete(ctx context.Context, id int64) error {
	cfg, err := s.configs.Get(ctx, id)
	if err != nil {
		return err
	}
	if cfg == nil {
		return fmt.Errorf("mining config not found: %d", id)
	}
	if cfg.Active {
		return fmt.Errorf("mining config %d is active, stop it before deleting", id)
	}
	return s.configs.Delete(ctx, id)
}
