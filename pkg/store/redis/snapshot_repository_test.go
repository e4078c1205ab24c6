package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minerops/internal/model"
	"minerops/pkg/config"
)

func newTestRepository(t *testing.T) (*SnapshotRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := NewRedisClient(&config.Config{
		Redis: config.RedisConfig{Addr: mr.Addr()},
	})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return NewSnapshotRepository(client), mr
}

func TestSnapshotRoundTrip(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	stats := model.MiningStats{
		TotalHashrate: 350.5,
		ActiveGPUs:    5,
		ActiveCoin:    "ETH",
		Source:        model.SourceMock,
	}
	require.NoError(t, repo.SaveMiningStats(ctx, stats))

	got, err := repo.GetMiningStats(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, stats.TotalHashrate, got.TotalHashrate)
	assert.Equal(t, stats.ActiveCoin, got.ActiveCoin)
	assert.Equal(t, model.SourceMock, got.Source)
}

func TestSnapshotMissingReturnsNil(t *testing.T) {
	repo, _ := newTestRepository(t)

	got, err := repo.GetEnergyData(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSnapshotExpires(t *testing.T) {
	repo, mr := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveEnergyData(ctx, model.EnergyData{DailyCost: 2.28, Source: model.SourceMock}))

	got, err := repo.GetEnergyData(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)

	mr.FastForward(snapshotTTL + 1)

	got, err = repo.GetEnergyData(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRentalSnapshotRoundTrip(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	view := model.RentalProfitability{
		Rentals:        []model.RentalOffer{{GPUModel: "NVIDIA GeForce RTX 4090", PricePerHour: 0.90}},
		Recommendation: "hold",
		Source:         model.SourceLive,
	}
	require.NoError(t, repo.SaveRentalProfitability(ctx, view))

	got, err := repo.GetRentalProfitability(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Rentals, 1)
	assert.Equal(t, view.Rentals[0], got.Rentals[0])
}
