package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minerops/internal/model"
	"minerops/pkg/assistant"
	"minerops/pkg/catalog"
)

// recordingGenerator captures the prompt and returns a canned answer.
type recordingGenerator struct {
	answer string
	prompt string
}

func (g *recordingGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.answer, nil
}

func newTestProfitabilityService(gen assistant.Generator) (*ProfitabilityService, *stubMining, *stubEnergy, *stubRental) {
	mining := &stubMining{
		stats: model.MiningStats{
			TotalHashrate: 350.5,
			ActiveCoin:    "ETH",
			CoinsData:     catalog.CoinsMap(),
			Source:        model.SourceMock,
		},
		coins: catalog.CoinsMap(),
	}
	energy := &stubEnergy{data: model.EnergyData{
		CurrentConsumption: 3.2,
		CostPerKWh:         0.08,
		Source:             model.SourceMock,
	}}
	rental := &stubRental{
		view: model.RentalProfitability{Recommendation: "hold", Source: model.SourceMock},
		mode: model.SourceMock,
	}

	var engine *assistant.Engine
	if gen != nil {
		engine = assistant.New(gen)
	}
	return NewProfitabilityService(mining, energy, rental, engine, 0.08), mining, energy, rental
}

func TestSnapshotJoinsAllConnectors(t *testing.T) {
	s, _, _, _ := newTestProfitabilityService(nil)

	snapshot := s.Snapshot(context.Background())

	assert.InDelta(t, 350.5, snapshot.Mining.TotalHashrate, 1e-9)
	assert.InDelta(t, 0.08, snapshot.Energy.CostPerKWh, 1e-9)
	assert.Equal(t, "hold", snapshot.Rental.Recommendation)
}

func TestCalculateUsesCatalogFleetAndStableOrder(t *testing.T) {
	s, _, _, _ := newTestProfitabilityService(nil)

	result := s.Calculate(context.Background())

	assert.Equal(t, catalog.CoinOrder, result.CoinOrder)
	for _, symbol := range catalog.CoinOrder {
		rows, ok := result.Predictions[symbol]
		require.True(t, ok, symbol)
		assert.Len(t, rows, len(catalog.GPUs()))
	}
	// At 0.08 EUR/kWh the whole catalog mines at a loss, so no best
	// option is reported.
	assert.Empty(t, result.BestOption.Coin)
	assert.Zero(t, result.BestOption.DailyProfit)
}

func TestCalculateFallsBackToDefaultEnergyCost(t *testing.T) {
	s, _, energy, _ := newTestProfitabilityService(nil)
	energy.data.CostPerKWh = 0

	result := s.Calculate(context.Background())

	// 170 W at the default 0.08 EUR/kWh
	row := result.Predictions["BTC"][0]
	assert.InDelta(t, 0.3264, row.DailyEnergyCost, 1e-9)
}

func TestOptimizeStrategyFeedsSnapshotToEngine(t *testing.T) {
	gen := &recordingGenerator{answer: "Το πιο κερδοφόρο κρυπτονόμισμα είναι το ETH."}
	s, _, _, _ := newTestProfitabilityService(gen)

	result := s.OptimizeStrategy(context.Background(), model.UserConfig{
		GPUs:         []string{"NVIDIA GeForce RTX 3080"},
		RentalBudget: 50,
	})

	assert.Equal(t, "ETH", result.Suggestions.RecommendedCoin)
	assert.Contains(t, gen.prompt, "NVIDIA GeForce RTX 3080")
	assert.Contains(t, gen.prompt, "67500.25") // BTC price from market data
}

func TestAnalyzeMiningDataReturnsSections(t *testing.T) {
	gen := &recordingGenerator{answer: "Σύνοψη\nΣταθερή λειτουργία."}
	s, _, _, _ := newTestProfitabilityService(gen)

	sections := s.AnalyzeMiningData(context.Background())

	assert.Equal(t, "Σταθερή λειτουργία.", sections["Σύνοψη"])
	assert.Contains(t, gen.prompt, "350.5")
}

func TestOrderCoinsExtrasSorted(t *testing.T) {
	coins := map[string]model.CoinMarket{
		"ZEC": {Symbol: "ZEC"},
		"ETH": {Symbol: "ETH"},
		"AAA": {Symbol: "AAA"},
		"BTC": {Symbol: "BTC"},
	}

	ordered := orderCoins(coins)

	symbols := make([]string, len(ordered))
	for i, c := range ordered {
		symbols[i] = c.Symbol
	}
	assert.Equal(t, []string{"BTC", "ETH", "AAA", "ZEC"}, symbols)
}
