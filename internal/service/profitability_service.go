package service

import (
	"context"
	"sort"
	"sync"

	"minerops/internal/model"
	"minerops/pkg/assistant"
	"minerops/pkg/catalog"
	"minerops/pkg/profit"
)

// OperationsSnapshot is the joined view of all three connectors used by
// the profitability and assistant endpoints.
type OperationsSnapshot struct {
	Mining model.MiningStats         `json:"mining"`
	Energy model.EnergyData          `json:"energy"`
	Rental model.RentalProfitability `json:"rental"`
}

// ProfitabilityService joins connector data into profitability answers
// and drives the assistant flows.
type ProfitabilityService struct {
	mining MiningSource
	energy EnergySource
	rental RentalSource
	engine *assistant.Engine

	// defaultEnergyCost is used when the energy snapshot carries no
	// price, EUR/kWh.
	defaultEnergyCost float64
}

// NewProfitabilityService creates the profitability service.
func NewProfitabilityService(mining MiningSource, energy EnergySource, rental RentalSource, engine *assistant.Engine, defaultEnergyCost float64) *ProfitabilityService {
	return &ProfitabilityService{
		mining:            mining,
		energy:            energy,
		rental:            rental,
		engine:            engine,
		defaultEnergyCost: defaultEnergyCost,
	}
}

// Snapshot fans out to all three connectors concurrently and joins the
// results. Each connector bounds its own remote calls, so the snapshot
// completes even when every backend is down.
func (s *ProfitabilityService) Snapshot(ctx context.Context) OperationsSnapshot {
	var snapshot OperationsSnapshot

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		snapshot.Mining = s.mining.GetStats(ctx)
	}()
	go func() {
		defer wg.Done()
		snapshot.Energy = s.energy.GetEnergyData(ctx)
	}()
	go func() {
		defer wg.Done()
		snapshot.Rental = s.rental.GetProfitability(ctx, nil)
	}()
	wg.Wait()

	return snapshot
}

// Calculate produces the prediction table for the catalog fleet against
// the current coin market, priced at the current energy cost.
func (s *ProfitabilityService) Calculate(ctx context.Context) profit.Result {
	var coins map[string]model.CoinMarket
	var energyCost float64

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		coins = s.mining.GetCoinProfitability(ctx)
	}()
	go func() {
		defer wg.Done()
		energyCost = s.energy.GetEnergyData(ctx).CostPerKWh
	}()
	wg.Wait()

	if energyCost <= 0 {
		energyCost = s.defaultEnergyCost
	}

	return profit.Calculate(catalog.GPUs(), orderCoins(coins), energyCost)
}

// OptimizeStrategy gathers current market and energy state and asks the
// assistant for a strategy tailored to the caller's setup.
func (s *ProfitabilityService) OptimizeStrategy(ctx context.Context, userCfg model.UserConfig) model.OptimizationResult {
	snapshot := s.Snapshot(ctx)

	market := model.MarketData{
		Prices:        make(map[string]float64, len(snapshot.Mining.CoinsData)),
		Profitability: snapshot.Mining.CoinsData,
	}
	for symbol, coin := range snapshot.Mining.CoinsData {
		market.Prices[symbol] = coin.CurrentPrice
	}

	energy := model.EnergyInput{
		CurrentPrice:   snapshot.Energy.CostPerKWh,
		AvailablePower: snapshot.Energy.CurrentConsumption,
	}
	if snapshot.Energy.SolarProduction != nil {
		energy.SolarForecast = map[string]float64{
			"current_output":  snapshot.Energy.SolarProduction.CurrentOutput,
			"daily_forecast":  snapshot.Energy.SolarProduction.DailyProduction,
			"solar_share_pct": snapshot.Energy.SolarPercentage,
		}
	}

	return s.engine.OptimizeStrategy(ctx, userCfg, market, energy)
}

// AnalyzeMiningData asks the assistant to review the current fleet
// snapshot, returning the standard analysis sections.
func (s *ProfitabilityService) AnalyzeMiningData(ctx context.Context) map[string]string {
	stats := s.mining.GetStats(ctx)
	return s.engine.AnalyzeMiningData(ctx, stats)
}

// Chat answers a free-form operator question with the current fleet
// snapshot as context.
func (s *ProfitabilityService) Chat(ctx context.Context, question string) string {
	stats := s.mining.GetStats(ctx)
	return s.engine.Chat(ctx, question, stats)
}

// orderCoins flattens the coin map into a stable slice: catalog coins
// first in their fixed order, then any extra symbols alphabetically.
func orderCoins(coins map[string]model.CoinMarket) []model.CoinMarket {
	out := make([]model.CoinMarket, 0, len(coins))
	seen := make(map[string]bool, len(coins))

	for _, symbol := range catalog.CoinOrder {
		if coin, ok := coins[symbol]; ok {
			out = append(out, coin)
			seen[symbol] = true
		}
	}

	extras := make([]string, 0, len(coins))
	for symbol := range coins {
		if !seen[symbol] {
			extras = append(extras, symbol)
		}
	}
	sort.Strings(extras)
	for _, symbol := range extras {
		out = append(out, coins[symbol])
	}

	return out
}
