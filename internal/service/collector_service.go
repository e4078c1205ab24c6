package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"minerops/internal/model"
	"minerops/pkg/logger"
	smodel "minerops/pkg/store/mysql/model"
)

// Refresh scopes accepted by the collector.
const (
	ScopeMining = "mining"
	ScopeEnergy = "energy"
	ScopeRental = "rental"
	ScopeAll    = "all"
)

type miningStatStore interface {
	Create(ctx context.Context, stat *smodel.MiningStat) error
}

type energySampleStore interface {
	Create(ctx context.Context, sample *smodel.EnergySample) error
}

type cryptoPriceStore interface {
	CreateBatch(ctx context.Context, prices []smodel.CryptoPrice) error
}

type snapshotStore interface {
	SaveMiningStats(ctx context.Context, stats model.MiningStats) error
	SaveEnergyData(ctx context.Context, data model.EnergyData) error
	SaveRentalProfitability(ctx context.Context, view model.RentalProfitability) error
}

// CollectorService samples the connectors and persists the results:
// history rows in MySQL, latest payloads in Redis for the live stream.
type CollectorService struct {
	mining MiningSource
	energy EnergySource
	rental RentalSource

	stats     miningStatStore
	samples   energySampleStore
	prices    cryptoPriceStore
	snapshots snapshotStore
}

// NewCollectorService creates the collector service.
func NewCollectorService(
	mining MiningSource, energy EnergySource, rental RentalSource,
	stats miningStatStore, samples energySampleStore, prices cryptoPriceStore,
	snapshots snapshotStore,
) *CollectorService {
	return &CollectorService{
		mining:    mining,
		energy:    energy,
		rental:    rental,
		stats:     stats,
		samples:   samples,
		prices:    prices,
		snapshots: snapshots,
	}
}

// SampleAll refreshes every scope concurrently. Scope failures are
// independent; the first error is returned after all scopes finish.
func (s *CollectorService) SampleAll(ctx context.Context) error {
	scopes := []string{ScopeMining, ScopeEnergy, ScopeRental}
	errs := make([]error, len(scopes))

	var wg sync.WaitGroup
	for i, scope := range scopes {
		wg.Add(1)
		go func(i int, scope string) {
			defer wg.Done()
			errs[i] = s.Refresh(ctx, scope)
		}(i, scope)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Refresh samples one scope and persists it.
func (s *CollectorService) Refresh(ctx context.Context, scope string) error {
	switch scope {
	case ScopeAll:
		return s.SampleAll(ctx)
	case ScopeMining:
		return s.refreshMining(ctx)
	case ScopeEnergy:
		return s.refreshEnergy(ctx)
	case ScopeRental:
		return s.refreshRental(ctx)
	default:
		return fmt.Errorf("unknown refresh scope: %s", scope)
	}
}

func (s *CollectorService) refreshMining(ctx context.Context) error {
	stats := s.mining.GetStats(ctx)

	details, err := json.Marshal(stats.GPUs)
	if err != nil {
		return fmt.Errorf("failed to marshal gpu telemetry: %w", err)
	}
	var detailMap smodel.JSONMap
	if err := json.Unmarshal(detailsWrapper(details), &detailMap); err != nil {
		return fmt.Errorf("failed to build gpu detail map: %w", err)
	}

	row := &smodel.MiningStat{
		Timestamp:     stats.Timestamp,
		TotalHashrate: stats.TotalHashrate,
		TotalPower:    stats.TotalPower,
		ActiveGPUs:    stats.ActiveGPUs,
		ActiveCoin:    stats.ActiveCoin,
		Earnings24h:   stats.TotalEarnings24h,
		Source:        stats.Source,
		Details:       detailMap,
	}
	if err := s.stats.Create(ctx, row); err != nil {
		return fmt.Errorf("failed to store mining sample: %w", err)
	}

	now := time.Now()
	priceRows := make([]smodel.CryptoPrice, 0, len(stats.CoinsData))
	for symbol, coin := range stats.CoinsData {
		priceRows = append(priceRows, smodel.CryptoPrice{
			Symbol:            symbol,
			PriceEUR:          coin.CurrentPrice,
			PriceChange24h:    coin.PriceChange24h,
			Algorithm:         coin.Algorithm,
			RewardPerHashrate: coin.RewardPerHashrate,
			Timestamp:         now,
		})
	}
	if err := s.prices.CreateBatch(ctx, priceRows); err != nil {
		return fmt.Errorf("failed to store price samples: %w", err)
	}

	if err := s.snapshots.SaveMiningStats(ctx, stats); err != nil {
		logger.Warnf("collector: failed to save mining snapshot: %v", err)
	}
	return nil
}

func (s *CollectorService) refreshEnergy(ctx context.Context) error {
	data := s.energy.GetEnergyData(ctx)

	row := &smodel.EnergySample{
		Timestamp:       data.Timestamp,
		Consumption:     data.CurrentConsumption,
		DailyCost:       data.DailyCost,
		CostPerKWh:      data.CostPerKWh,
		SolarPercentage: data.SolarPercentage,
		Source:          data.Source,
	}
	if data.SolarProduction != nil {
		row.SolarProduction = data.SolarProduction.CurrentOutput
	}
	if err := s.samples.Create(ctx, row); err != nil {
		return fmt.Errorf("failed to store energy sample: %w", err)
	}

	if err := s.snapshots.SaveEnergyData(ctx, data); err != nil {
		logger.Warnf("collector: failed to save energy snapshot: %v", err)
	}
	return nil
}

func (s *CollectorService) refreshRental(ctx context.Context) error {
	view := s.rental.GetProfitability(ctx, nil)

	if err := s.snapshots.SaveRentalProfitability(ctx, view); err != nil {
		return fmt.Errorf("failed to save rental snapshot: %w", err)
	}
	return nil
}

// detailsWrapper lifts a JSON array into an object so it fits the JSON
// map column.
func detailsWrapper(arr []byte) []byte {
	return []byte(fmt.Sprintf(`{"gpus": %s}`, arr))
}
