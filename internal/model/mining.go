package model

import "time"

// Data source tags attached to connector payloads so callers can tell
// degraded (mock) responses from live ones.
const (
	SourceLive = "live"
	SourceMock = "mock"
)

// GPUInfo is the per-device telemetry reported by the mining backend.
type GPUInfo struct {
	Model            string  `json:"model"`
	Hashrate         float64 `json:"hashrate"`
	PowerConsumption float64 `json:"power_consumption"`
	Temperature      float64 `json:"temperature"`
	FanSpeed         float64 `json:"fan_speed"`
	Efficiency       float64 `json:"efficiency"`
}

// GPUDevice describes a GPU model for profitability calculations.
// Hashrate maps coin symbol to hashrate; a missing coin means the device
// cannot mine it.
type GPUDevice struct {
	Model            string             `json:"model"`
	Hashrate         map[string]float64 `json:"hashrate"`
	PowerConsumption float64            `json:"power_consumption"` // watts
	Price            float64            `json:"price,omitempty"`   // acquisition price, EUR
}

// HashrateFor returns the device hashrate for a coin, 0 if unknown.
func (g GPUDevice) HashrateFor(coin string) float64 {
	return g.Hashrate[coin]
}

// EstimatedEarnings holds reward estimates at the usual horizons.
type EstimatedEarnings struct {
	Day   float64 `json:"day"`
	Week  float64 `json:"week"`
	Month float64 `json:"month"`
}

// CoinMarket is the normalized market entry for one coin.
type CoinMarket struct {
	Symbol            string            `json:"symbol"`
	Name              string            `json:"name"`
	Algorithm         string            `json:"algorithm"`
	CurrentPrice      float64           `json:"current_price"`
	PriceChange24h    float64           `json:"price_change_24h"`
	EstimatedEarnings EstimatedEarnings `json:"estimated_earnings"`
	RewardPerHashrate float64           `json:"reward_per_hashrate"`
}

// MiningStats is the aggregated snapshot of the mining fleet.
type MiningStats struct {
	Timestamp        time.Time             `json:"timestamp"`
	TotalHashrate    float64               `json:"total_hashrate"`
	TotalPower       float64               `json:"total_power"`
	ActiveGPUs       int                   `json:"active_gpus"`
	GPUs             []GPUInfo             `json:"gpus"`
	ActiveCoin       string                `json:"active_coin"`
	CoinsData        map[string]CoinMarket `json:"coins_data"`
	TotalEarnings24h float64               `json:"total_earnings_24h"`
	Source           string                `json:"source"`
}

// ActionResult is the payload for control operations (start/stop mining,
// rental cancellation and similar).
type ActionResult struct {
	Status    string    `json:"status"` // success or error
	Message   string    `json:"message"`
	ConfigID  int       `json:"config_id,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
