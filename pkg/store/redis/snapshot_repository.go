package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"minerops/internal/model"

	"github.com/go-redis/redis/v8"
)

const (
	snapshotKeyMining = "snapshot:mining"
	snapshotKeyEnergy = "snapshot:energy"
	snapshotKeyRental = "snapshot:rental"
	snapshotTTL       = 15 * time.Minute
)

// SnapshotRepository keeps the latest connector payloads in Redis for
// the live stats stream and dashboards. API reads always go to the
// connectors; these snapshots are observability data with a TTL.
type SnapshotRepository struct {
	redis *redis.Client
}

// NewSnapshotRepository creates snapshot repository
func NewSnapshotRepository(redisClient *RedisClient) *SnapshotRepository {
	return &SnapshotRepository{redis: redisClient.GetClient()}
}

// SaveMiningStats stores the latest fleet snapshot
func (r *SnapshotRepository) SaveMiningStats(ctx context.Context, stats model.MiningStats) error {
	return r.save(ctx, snapshotKeyMining, stats)
}

// GetMiningStats retrieves the latest fleet snapshot, nil when expired
// or never saved
func (r *SnapshotRepository) GetMiningStats(ctx context.Context) (*model.MiningStats, error) {
	var stats model.MiningStats
	ok, err := r.load(ctx, snapshotKeyMining, &stats)
	if err != nil || !ok {
		return nil, err
	}
	return &stats, nil
}

// SaveEnergyData stores the latest energy snapshot
func (r *SnapshotRepository) SaveEnergyData(ctx context.Context, data model.EnergyData) error {
	return r.save(ctx, snapshotKeyEnergy, data)
}

// GetEnergyData retrieves the latest energy snapshot, nil when expired
// or never saved
func (r *SnapshotRepository) GetEnergyData(ctx context.Context) (*model.EnergyData, error) {
	var data model.EnergyData
	ok, err := r.load(ctx, snapshotKeyEnergy, &data)
	if err != nil || !ok {
		return nil, err
	}
	return &data, nil
}

// SaveRentalProfitability stores the latest marketplace view
func (r *SnapshotRepository) SaveRentalProfitability(ctx context.Context, view model.RentalProfitability) error {
	return r.save(ctx, snapshotKeyRental, view)
}

// GetRentalProfitability retrieves the latest marketplace view, nil
// when expired or never saved
func (r *SnapshotRepository) GetRentalProfitability(ctx context.Context) (*model.RentalProfitability, error) {
	var view model.RentalProfitability
	ok, err := r.load(ctx, snapshotKeyRental, &view)
	if err != nil || !ok {
		return nil, err
	}
	return &view, nil
}

func (r *SnapshotRepository) save(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := r.redis.Set(ctx, key, data, snapshotTTL).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (r *SnapshotRepository) load(ctx context.Context, key string, out interface{}) (bool, error) {
	data, err := r.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get snapshot: %w", err)
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return false, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return true, nil
}
