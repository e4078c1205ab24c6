package service

import (
	"context"
	"sync"
	"time"

	"minerops/internal/model"
	smodel "minerops/pkg/store/mysql/model"
)

// stubMining implements MiningSource with canned data.
type stubMining struct {
	stats       model.MiningStats
	coins       map[string]model.CoinMarket
	startResult model.ActionResult
	stopResult  model.ActionResult
}

func (s *stubMining) GetStats(context.Context) model.MiningStats                  { return s.stats }
func (s *stubMining) GetCoinProfitability(context.Context) map[string]model.CoinMarket {
	return s.coins
}
func (s *stubMining) GetGPUStats(context.Context) []model.GPUInfo { return s.stats.GPUs }
func (s *stubMining) StartMining(_ context.Context, configID int) model.ActionResult {
	r := s.startResult
	r.ConfigID = configID
	return r
}
func (s *stubMining) StopMining(_ context.Context, configID int) model.ActionResult {
	r := s.stopResult
	r.ConfigID = configID
	return r
}
func (s *stubMining) Mode() string { return s.stats.Source }

// stubEnergy implements EnergySource with canned data.
type stubEnergy struct {
	data model.EnergyData
}

func (s *stubEnergy) GetEnergyData(context.Context) model.EnergyData { return s.data }
func (s *stubEnergy) GetSolarProduction(context.Context) *model.SolarProduction {
	return s.data.SolarProduction
}
func (s *stubEnergy) GetEnergyForecast(context.Context, int) []model.EnergyForecastDay { return nil }
func (s *stubEnergy) Mode() string                                                     { return s.data.Source }

// stubRental implements RentalSource with canned data.
type stubRental struct {
	view    model.RentalProfitability
	receipt model.RentalReceipt
	cancel  model.ActionResult
	mode    string
}

func (s *stubRental) GetAvailability(context.Context) []model.GPUAvailability { return nil }
func (s *stubRental) GetPricing(context.Context) []model.GPUPricing           { return nil }
func (s *stubRental) GetProfitability(context.Context, []string) model.RentalProfitability {
	return s.view
}
func (s *stubRental) Rent(context.Context, string, int) model.RentalReceipt { return s.receipt }
func (s *stubRental) CancelRental(context.Context, string) model.ActionResult {
	return s.cancel
}
func (s *stubRental) Mode() string { return s.mode }

// memConfigStore is an in-memory miningConfigStore / configStore.
type memConfigStore struct {
	mu      sync.Mutex
	configs map[int64]*smodel.MiningConfig
}

func newMemConfigStore(configs ...*smodel.MiningConfig) *memConfigStore {
	m := &memConfigStore{configs: make(map[int64]*smodel.MiningConfig)}
	for _, cfg := range configs {
		m.configs[cfg.ID] = cfg
	}
	return m
}

func (m *memConfigStore) Create(_ context.Context, cfg *smodel.MiningConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cfg.ID = int64(len(m.configs) + 1)
	m.configs[cfg.ID] = cfg
	return nil
}

func (m *memConfigStore) Get(_ context.Context, id int64) (*smodel.MiningConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cfg, ok := m.configs[id]
	if !ok {
		return nil, nil
	}
	copied := *cfg
	return &copied, nil
}

func (m *memConfigStore) ListByUser(_ context.Context, userID int64) ([]smodel.MiningConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []smodel.MiningConfig
	for _, cfg := range m.configs {
		if cfg.UserID == userID {
			out = append(out, *cfg)
		}
	}
	return out, nil
}

func (m *memConfigStore) UpdateFields(_ context.Context, id int64, updates map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cfg, ok := m.configs[id]
	if !ok {
		return nil
	}
	if active, found := updates["active"]; found {
		cfg.Active = active.(bool)
	}
	return nil
}

func (m *memConfigStore) SetActive(_ context.Context, id int64, from, to bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cfg, ok := m.configs[id]
	if !ok || cfg.Active != from {
		return errStateConflict
	}
	cfg.Active = to
	return nil
}

func (m *memConfigStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.configs, id)
	return nil
}

var errStateConflict = &stateConflictError{}

type stateConflictError struct{}

func (*stateConflictError) Error() string { return "state conflict" }

// memRentalRecords is an in-memory rentalRecordStore.
type memRentalRecords struct {
	mu      sync.Mutex
	records []*smodel.RentalRecord
}

func (m *memRentalRecords) Create(_ context.Context, record *smodel.RentalRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
	return nil
}

func (m *memRentalRecords) ListActive(context.Context) ([]smodel.RentalRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []smodel.RentalRecord
	for _, r := range m.records {
		if r.Status == "active" {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memRentalRecords) MarkCancelled(_ context.Context, rentalID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.RentalID == rentalID && r.Status == "active" {
			r.Status = "cancelled"
			r.CancelledAt = &at
			return nil
		}
	}
	return errStateConflict
}

// memCollectorStores records what the collector persisted.
type memCollectorStores struct {
	mu        sync.Mutex
	stats     []*smodel.MiningStat
	samples   []*smodel.EnergySample
	prices    [][]smodel.CryptoPrice
	mining    []model.MiningStats
	energy    []model.EnergyData
	rental    []model.RentalProfitability
}

// statStore / sampleStore adapt memCollectorStores to the narrow store
// interfaces, which both declare a Create method.
type statStore struct{ m *memCollectorStores }

func (s statStore) Create(ctx context.Context, stat *smodel.MiningStat) error {
	return s.m.CreateStat(ctx, stat)
}

type sampleStore struct{ m *memCollectorStores }

func (s sampleStore) Create(ctx context.Context, sample *smodel.EnergySample) error {
	return s.m.CreateSample(ctx, sample)
}

func (m *memCollectorStores) CreateStat(_ context.Context, stat *smodel.MiningStat) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats = append(m.stats, stat)
	return nil
}

func (m *memCollectorStores) CreateSample(_ context.Context, sample *smodel.EnergySample) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.samples = append(m.samples, sample)
	return nil
}

func (m *memCollectorStores) CreateBatch(_ context.Context, prices []smodel.CryptoPrice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prices = append(m.prices, prices)
	return nil
}

func (m *memCollectorStores) SaveMiningStats(_ context.Context, stats model.MiningStats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mining = append(m.mining, stats)
	return nil
}

func (m *memCollectorStores) SaveEnergyData(_ context.Context, data model.EnergyData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.energy = append(m.energy, data)
	return nil
}

func (m *memCollectorStores) SaveRentalProfitability(_ context.Context, view model.RentalProfitability) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rental = append(m.rental, view)
	return nil
}
