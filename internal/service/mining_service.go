package service

import (
	"context"
	"fmt"
	"time"

	"minerops/internal/model"
	"minerops/pkg/logger"
	smodel "minerops/pkg/store/mysql/model"
)

type miningConfigStore interface {
	Get(ctx context.Context, id int64) (*smodel.MiningConfig, error)
	SetActive(ctx context.Context, id int64, from, to bool) error
}

// MiningService exposes the mining connector plus config-aware start
// and stop control.
type MiningService struct {
	mining  MiningSource
	configs miningConfigStore
}

// NewMiningService creates the mining service.
func NewMiningService(mining MiningSource, configs miningConfigStore) *MiningService {
	return &MiningService{mining: mining, configs: configs}
}

// GetStats returns the current fleet snapshot.
func (s *MiningService) GetStats(ctx context.Context) model.MiningStats {
	return s.mining.GetStats(ctx)
}

// GetGPUStats returns the per-device telemetry.
func (s *MiningService) GetGPUStats(ctx context.Context) []model.GPUInfo {
	return s.mining.GetGPUStats(ctx)
}

// GetCoinProfitability returns the normalized coin market dataset.
func (s *MiningService) GetCoinProfitability(ctx context.Context) map[string]model.CoinMarket {
	return s.mining.GetCoinProfitability(ctx)
}

// StartMining validates the stored config, flips it active and starts
// mining. The active flag uses CAS so two concurrent starts cannot both
// win.
func (s *MiningService) StartMining(ctx context.Context, configID int64) model.ActionResult {
	cfg, err := s.configs.Get(ctx, configID)
	if err != nil {
		return actionError(configID, "failed to load mining config", err)
	}
	if cfg == nil {
		return actionError(configID, "mining config not found", fmt.Errorf("config %d does not exist", configID))
	}

	if err := s.configs.SetActive(ctx, configID, false, true); err != nil {
		return actionError(configID, "mining config is already active", err)
	}

	result := s.mining.StartMining(ctx, int(configID))
	if result.Status != "success" {
		// Roll the flag back so the config can be started again.
		if rbErr := s.configs.SetActive(ctx, configID, true, false); rbErr != nil {
			logger.Errorf("mining service: failed to roll back active flag for config %d: %v", configID, rbErr)
		}
	}
	return result
}

// StopMining stops mining for a config and flips it inactive.
func (s *MiningService) StopMining(ctx context.Context, configID int64) model.ActionResult {
	cfg, err := s.configs.Get(ctx, configID)
	if err != nil {
		return actionError(configID, "failed to load mining config", err)
	}
	if cfg == nil {
		return actionError(configID, "mining config not found", fmt.Errorf("config %d does not exist", configID))
	}

	if err := s.configs.SetActive(ctx, configID, true, false); err != nil {
		return actionError(configID, "mining config is not active", err)
	}

	return s.mining.StopMining(ctx, int(configID))
}

func actionError(configID int64, message string, err error) model.ActionResult {
	return model.ActionResult{
		Status:    "error",
		Message:   message,
		ConfigID:  int(configID),
		Error:     err.Error(),
		Timestamp: time.Now(),
	}
}
