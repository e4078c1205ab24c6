// Package mining wraps the mining backend (rig telemetry plus a coin
// profitability feed) behind fetch operations that always return a
// well-formed payload, degrading to the shared catalog when the remote
// is unreachable.
package mining

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"minerops/internal/model"
	"minerops/pkg/config"
	"minerops/pkg/logger"
)

const requestTimeout = 10 * time.Second

// Connector talks to the configured mining software API. It owns one
// HTTP client and is safe for concurrent fetches once initialized.
type Connector struct {
	cfg config.MiningConfig

	mu      sync.Mutex
	client  *http.Client
	ready   bool
	useMock bool

	// transport overrides the default transport; used by tests.
	transport http.RoundTripper
}

// New creates a mining connector. Missing credentials force mock mode.
func New(cfg config.MiningConfig) *Connector {
	return &Connector{
		cfg:     cfg,
		useMock: cfg.UseMock || cfg.APIURL == "" || cfg.APIKey == "",
	}
}

// Initialize builds the HTTP client and probes the mining API. On any
// probe failure the connector degrades to mock mode and stays usable;
// the returned error is informational.
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
		logger.Infof("mining connector: using mock data")
		c.ready = true
		return nil
	}

	if !strings.EqualFold(c.cfg.Software, "nicehash") {
		// No probe protocol for other backends yet; assume reachable.
		logger.Infof("mining connector: using %s backend", c.cfg.Software)
		c.ready = true
		return nil
	}

	statusURL := fmt.Sprintf("%s/api/v2/mining/external/%s/rigs", c.cfg.APIURL, c.cfg.APIKey)
	if err := c.probe(ctx, statusURL); err != nil {
		logger.Errorf("mining connector: initialization failed, degrading to mock data: %v", err)
		c.useMock = true
		c.ready = true
		return fmt.Errorf("mining connector initialization: %w", err)
	}

	logger.Infof("mining connector: connected to %s", c.cfg.APIURL)
	c.ready = true
	return nil
}

// ensureInitialized lazily initializes before a fetch. Initialization
// failures are swallowed here: the fetch will serve mock data.
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
		logger.Infof("mining connector: closed")
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

// GetStats returns the aggregated fleet snapshot. Never fails: any
// remote error is replaced by the mock snapshot.
func (c *Connector) GetStats(ctx context.Context) model.MiningStats {
	c.ensureInitialized(ctx)

	if c.Mode() == model.SourceMock {
		return mockStats(c.mockCoins())
	}

	stats, err := c.fetchStats(ctx)
	if err != nil {
		logger.Errorf("mining connector: stats fetch failed, serving mock data: %v", err)
		return mockStats(c.mockCoins())
	}
	return stats
}

// GetCoinProfitability returns the normalized coin market dataset.
func (c *Connector) GetCoinProfitability(ctx context.Context) map[string]model.CoinMarket {
	c.ensureInitialized(ctx)

	if c.Mode() == model.SourceMock {
		return c.mockCoins()
	}

	coins, err := c.fetchCoins(ctx)
	if err != nil {
		logger.Errorf("mining connector: coin feed fetch failed, serving mock data: %v", err)
		return c.mockCoins()
	}
	return coins
}

// GetGPUStats returns the per-device telemetry rows.
func (c *Connector) GetGPUStats(ctx context.Context) []model.GPUInfo {
	return c.GetStats(ctx).GPUs
}

// StartMining starts mining with the given configuration.
func (c *Connector) StartMining(ctx context.Context, configID int) model.ActionResult {
	c.ensureInitialized(ctx)
	// Rig control is driver-local; the remote API has no start call.
	logger.Infof("mining connector: starting mining with config %d", configID)
	return model.ActionResult{
		Status:    "success",
		Message:   fmt.Sprintf("mining started with config %d", configID),
		ConfigID:  configID,
		Timestamp: time.Now(),
	}
}

// StopMining stops mining for the given configuration.
func (c *Connector) StopMining(ctx context.Context, configID int) model.ActionResult {
	c.ensureInitialized(ctx)
	logger.Infof("mining connector: stopping mining with config %d", configID)
	return model.ActionResult{
		Status:    "success",
		Message:   fmt.Sprintf("mining stopped with config %d", configID),
		ConfigID:  configID,
		Timestamp: time.Now(),
	}
}

// rigsResponse is the raw rig listing from the mining API.
type rigsResponse struct {
	Rigs []struct {
		Devices []struct {
			Name          string  `json:"name"`
			Status        string  `json:"status"`
			PowerUsage    float64 `json:"powerUsage"`
			SpeedAccepted float64 `json:"speedAccepted"`
			Temperature   float64 `json:"temperature"`
			FanSpeed      float64 `json:"fanSpeed"`
		} `json:"devices"`
	} `json:"rigs"`
}

// coinsResponse is the raw coin profitability feed.
type coinsResponse struct {
	Coins map[string]struct {
		Tag             string  `json:"tag"`
		Name            string  `json:"name"`
		Algorithm       string  `json:"algorithm"`
		ExchangeRate    float64 `json:"exchange_rate"`
		ExchangeRateVol float64 `json:"exchange_rate_vol"`
		EstimatedReward float64 `json:"estimated_rewards"`
		BTCRevenue      float64 `json:"btc_revenue"`
		NetHash         float64 `json:"nethash"`
	} `json:"coins"`
}

// fetchStats is the live path for GetStats.
func (c *Connector) fetchStats(ctx context.Context) (model.MiningStats, error) {
	url := fmt.Sprintf("%s/api/v2/mining/external/%s/rigs", c.cfg.APIURL, c.cfg.APIKey)

	var rigs rigsResponse
	if err := c.doGet(ctx, url, &rigs); err != nil {
		return model.MiningStats{}, err
	}

	coins, err := c.fetchCoins(ctx)
	if err != nil {
		logger.Errorf("mining connector: coin feed fetch failed, using mock coin data: %v", err)
		coins = c.mockCoins()
	}

	// The hosted backend always settles in BTC.
	const activeCoin = "BTC"

	stats := model.MiningStats{
		Timestamp:  time.Now(),
		ActiveCoin: activeCoin,
		CoinsData:  coins,
		Source:     model.SourceLive,
	}

	for _, rig := range rigs.Rigs {
		for _, device := range rig.Devices {
			if device.Status != "MINING" {
				continue
			}
			stats.ActiveGPUs++
			stats.TotalPower += device.PowerUsage
			stats.TotalHashrate += device.SpeedAccepted

			efficiency := 0.0
			if device.PowerUsage > 0 {
				efficiency = device.SpeedAccepted / device.PowerUsage
			}
			stats.GPUs = append(stats.GPUs, model.GPUInfo{
				Model:            device.Name,
				Hashrate:         device.SpeedAccepted,
				PowerConsumption: device.PowerUsage,
				Temperature:      device.Temperature,
				FanSpeed:         device.FanSpeed,
				Efficiency:       efficiency,
			})
		}
	}

	if coin, ok := coins[activeCoin]; ok {
		stats.TotalEarnings24h = stats.TotalHashrate * coin.RewardPerHashrate * 24
	}

	return stats, nil
}

// fetchCoins is the live path for GetCoinProfitability.
func (c *Connector) fetchCoins(ctx context.Context) (map[string]model.CoinMarket, error) {
	url := c.cfg.CoinsURL
	if url == "" {
		url = "https://whattomine.com/coins.json"
	}

	var feed coinsResponse
	if err := c.doGet(ctx, url, &feed); err != nil {
		return nil, err
	}

	coins := make(map[string]model.CoinMarket, len(feed.Coins))
	for id, entry := range feed.Coins {
		symbol := entry.Tag
		if symbol == "" {
			symbol = id
		}

		netHash := entry.NetHash
		if netHash == 0 {
			netHash = 1
		}

		coins[symbol] = model.CoinMarket{
			Symbol:         symbol,
			Name:           entry.Name,
			Algorithm:      entry.Algorithm,
			CurrentPrice:   entry.ExchangeRate,
			PriceChange24h: entry.ExchangeRateVol,
			EstimatedEarnings: model.EstimatedEarnings{
				Day:   entry.EstimatedReward,
				Week:  entry.EstimatedReward * 7,
				Month: entry.EstimatedReward * 30,
			},
			RewardPerHashrate: entry.BTCRevenue / netHash,
		}
	}

	return coins, nil
}

// probe performs the initialization reachability check.
func (c *Connector) probe(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
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

// doGet performs one authenticated GET and decodes the JSON response.
func (c *Connector) doGet(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if c.cfg.APISecret != "" {
		req.Header.Set("X-Auth-Secret", c.cfg.APISecret)
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
		return fmt.Errorf("mining API error (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
