package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minerops/internal/model"
	"minerops/pkg/catalog"
)

func newTestCollector() (*CollectorService, *memCollectorStores) {
	stores := &memCollectorStores{}

	mining := &stubMining{stats: model.MiningStats{
		Timestamp:     time.Now(),
		TotalHashrate: 350.5,
		ActiveGPUs:    5,
		ActiveCoin:    "ETH",
		CoinsData:     catalog.CoinsMap(),
		Source:        model.SourceMock,
	}}
	energy := &stubEnergy{data: model.EnergyData{
		Timestamp:          time.Now(),
		CurrentConsumption: 3.2,
		CostPerKWh:         0.08,
		SolarProduction:    &model.SolarProduction{CurrentOutput: 1.8},
		Source:             model.SourceMock,
	}}
	rental := &stubRental{view: model.RentalProfitability{
		Recommendation: "hold",
		Source:         model.SourceMock,
	}}

	svc := NewCollectorService(
		mining, energy, rental,
		statStore{stores}, sampleStore{stores}, stores, stores,
	)
	return svc, stores
}

func TestSampleAllPersistsEverything(t *testing.T) {
	svc, stores := newTestCollector()

	require.NoError(t, svc.SampleAll(context.Background()))

	require.Len(t, stores.stats, 1)
	assert.InDelta(t, 350.5, stores.stats[0].TotalHashrate, 1e-9)
	assert.Equal(t, model.SourceMock, stores.stats[0].Source)

	require.Len(t, stores.samples, 1)
	assert.InDelta(t, 1.8, stores.samples[0].SolarProduction, 1e-9)

	require.Len(t, stores.prices, 1)
	assert.Len(t, stores.prices[0], len(catalog.CoinOrder))

	assert.Len(t, stores.mining, 1)
	assert.Len(t, stores.energy, 1)
	assert.Len(t, stores.rental, 1)
}

func TestRefreshSingleScope(t *testing.T) {
	svc, stores := newTestCollector()

	require.NoError(t, svc.Refresh(context.Background(), ScopeEnergy))

	assert.Empty(t, stores.stats)
	assert.Len(t, stores.samples, 1)
	assert.Empty(t, stores.rental)
}

func TestRefreshUnknownScope(t *testing.T) {
	svc, _ := newTestCollector()
	assert.Error(t, svc.Refresh(context.Background(), "bogus"))
}
