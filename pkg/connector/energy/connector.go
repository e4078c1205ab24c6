// Package energy wraps the home energy meter and the optional solar
// inverter API. Fetch operations never fail; unreachable hardware is
// covered by the deterministic mock dataset.
package energy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"sync"
	"time"

	"minerops/internal/model"
	"minerops/pkg/config"
	"minerops/pkg/logger"
)

const requestTimeout = 10 * time.Second

// Connector reads consumption from the meter and production from the
// solar API, combining both into one snapshot.
type Connector struct {
	cfg config.EnergyConfig

	mu      sync.Mutex
	client  *http.Client
	ready   bool
	useMock bool

	// transport overrides the default transport; used by tests.
	transport http.RoundTripper
}

// New creates an energy connector. Without a meter URL it runs on mock
// data.
func New(cfg config.EnergyConfig) *Connector {
	return &Connector{
		cfg:     cfg,
		useMock: cfg.UseMock || cfg.MeterURL == "",
	}
}

// Initialize probes the meter and, when configured, the solar API. A
// failed meter probe degrades the connector to mock mode; a failed solar
// probe only logs, since solar is optional.
func (c *Connector) Initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initializeLocked(ctx)
}

func (c *Connector) initializeLocked(ctx context.Context) error {
	if c.ready {
		return nil
	}

	c.client = &http.Client{
		Timeout:   requestTimeout,
		Transport: c.transport,
	}

	if c.useMock {
		logger.Infof("energy connector: using mock data")
		c.ready = true
		return nil
	}

	if err := c.probe(ctx, c.cfg.MeterURL+"/status", c.cfg.MeterToken); err != nil {
		logger.Errorf("energy connector: meter unreachable, degrading to mock data: %v", err)
		c.useMock = true
		c.ready = true
		return fmt.Errorf("energy connector initialization: %w", err)
	}

	if c.cfg.SolarURL != "" {
		if err := c.probe(ctx, c.cfg.SolarURL+"/status", c.cfg.SolarToken); err != nil {
			logger.Warnf("energy connector: solar API unreachable: %v", err)
		}
	}

	logger.Infof("energy connector: connected to meter at %s", c.cfg.MeterURL)
	c.ready = true
	return nil
}

func (c *Connector) ensureInitialized(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ready {
		_ = c.initializeLocked(ctx)
	}
}

// Close releases the HTTP client. Safe to call repeatedly.
func (c *Connector) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		c.client.CloseIdleConnections()
		c.client = nil
		c.ready = false
		logger.Infof("energy connector: closed")
	}
}

// Mode reports the current data source, live or mock.
func (c *Connector) Mode() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.useMock {
		return model.SourceMock
	}
	return model.SourceLive
}

// GetEnergyData returns the combined meter + solar snapshot. Never
// fails: any remote error is replaced by the mock snapshot.
func (c *Connector) GetEnergyData(ctx context.Context) model.EnergyData {
	c.ensureInitialized(ctx)

	if c.Mode() == model.SourceMock {
		return mockEnergyData(c.cfg.CostPerKWh)
	}

	data, err := c.fetchEnergyData(ctx)
	if err != nil {
		logger.Errorf("energy connector: meter fetch failed, serving mock data: %v", err)
		return mockEnergyData(c.cfg.CostPerKWh)
	}
	return data
}

// GetSolarProduction returns the solar part of the snapshot, nil when no
// solar installation is configured on a live connector.
func (c *Connector) GetSolarProduction(ctx context.Context) *model.SolarProduction {
	c.ensureInitialized(ctx)

	if c.Mode() == model.SourceMock {
		return mockSolarProduction(c.cfg.CostPerKWh)
	}
	if c.cfg.SolarURL == "" {
		return nil
	}

	solar, err := c.fetchSolarProduction(ctx)
	if err != nil {
		logger.Errorf("energy connector: solar fetch failed, serving mock data: %v", err)
		return mockSolarProduction(c.cfg.CostPerKWh)
	}
	return solar
}

// GetEnergyForecast projects consumption, solar production and cost for
// the coming days. The projection extrapolates the current snapshot with
// a fixed per-weekday variation, so repeated calls agree except for the
// dates.
func (c *Connector) GetEnergyForecast(ctx context.Context, days int) []model.EnergyForecastDay {
	if days <= 0 {
		days = 7
	}
	data := c.GetEnergyData(ctx)
	return forecastFrom(data, days, time.Now())
}

// meterReading is the raw meter snapshot.
type meterReading struct {
	CurrentPower  float64 `json:"current_power"`  // kW
	DailyEnergy   float64 `json:"daily_energy"`   // kWh
	MonthlyEnergy float64 `json:"monthly_energy"` // kWh
	PricePerKWh   float64 `json:"price_per_kwh"`
}

// solarReading is the raw inverter snapshot.
type solarReading struct {
	CurrentOutput     float64 `json:"current_output"`     // kW
	DailyProduction   float64 `json:"daily_production"`   // kWh
	MonthlyProduction float64 `json:"monthly_production"` // kWh
}

func (c *Connector) fetchEnergyData(ctx context.Context) (model.EnergyData, error) {
	var reading meterReading
	if err := c.doGet(ctx, c.cfg.MeterURL+"/consumption", c.cfg.MeterToken, &reading); err != nil {
		return model.EnergyData{}, err
	}

	cost := reading.PricePerKWh
	if cost <= 0 {
		cost = c.cfg.CostPerKWh
	}

	data := model.EnergyData{
		Timestamp:          time.Now(),
		CurrentConsumption: reading.CurrentPower,
		DailyConsumption:   reading.DailyEnergy,
		MonthlyConsumption: reading.MonthlyEnergy,
		CostPerKWh:         cost,
		DailyCost:          round2(reading.DailyEnergy * cost),
		MonthlyCost:        round2(reading.MonthlyEnergy * cost),
		GridPercentage:     100,
		Source:             model.SourceLive,
	}

	if c.cfg.SolarURL != "" {
		solar, err := c.fetchSolarProduction(ctx)
		if err != nil {
			logger.Warnf("energy connector: solar fetch failed, reporting grid only: %v", err)
		} else {
			data.SolarProduction = solar
			data.SolarPercentage, data.GridPercentage = splitPercentages(solar.DailyProduction, data.DailyConsumption)
		}
	}

	return data, nil
}

func (c *Connector) fetchSolarProduction(ctx context.Context) (*model.SolarProduction, error) {
	var reading solarReading
	if err := c.doGet(ctx, c.cfg.SolarURL+"/production", c.cfg.SolarToken, &reading); err != nil {
		return nil, err
	}

	return &model.SolarProduction{
		CurrentOutput:     reading.CurrentOutput,
		DailyProduction:   reading.DailyProduction,
		MonthlyProduction: reading.MonthlyProduction,
		EnergySaved:       round2(reading.MonthlyProduction * c.cfg.CostPerKWh),
	}, nil
}

// splitPercentages returns solar and grid shares of daily consumption.
// Solar share is capped at 100 and the two always sum to 100.
func splitPercentages(solarDaily, consumptionDaily float64) (solarPct, gridPct float64) {
	if consumptionDaily <= 0 {
		return 0, 100
	}
	solarPct = round2(math.Min(100, solarDaily/consumptionDaily*100))
	return solarPct, round2(100 - solarPct)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (c *Connector) probe(ctx context.Context, url, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status check returned %d", resp.StatusCode)
	}
	return nil
}

func (c *Connector) doGet(ctx context.Context, url, token string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.mu.Lock()
	client := c.client
	c.mu.Unlock()
	if client == nil {
		return fmt.Errorf("connector is closed")
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("energy API error (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
