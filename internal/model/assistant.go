package model

// UserConfig carries the caller-owned inputs to strategy optimization.
type UserConfig struct {
	GPUs         []string `json:"gpus"`
	CurrentCoin  string   `json:"current_coin"`
	RentalBudget float64  `json:"rental_budget"` // EUR
	ROIThreshold float64  `json:"roi_threshold"` // days
}

// MarketData carries the market-side inputs to strategy optimization.
type MarketData struct {
	Prices           map[string]float64    `json:"prices"`
	MiningDifficulty map[string]float64    `json:"mining_difficulty"`
	Profitability    map[string]CoinMarket `json:"profitability"`
}

// EnergyInput carries the energy-side inputs to strategy optimization.
type EnergyInput struct {
	CurrentPrice   float64            `json:"current_price"` // EUR/kWh
	SolarForecast  map[string]float64 `json:"solar_forecast"`
	AvailablePower float64            `json:"available_power"` // kW
}

// RentalRecommendation is the go/no-go rental advice and its rationale.
type RentalRecommendation struct {
	Recommendation string `json:"recommendation,omitempty"` // yes or no
	Rationale      string `json:"rationale,omitempty"`
}

// EstimatedProfitability holds the parsed profitability figures. Fields
// stay zero-valued when no number could be extracted.
type EstimatedProfitability struct {
	Daily float64 `json:"daily,omitempty"`
}

// OptimizationSuggestion is the structured part of an optimization
// answer. Every field is best-effort: it is populated only when the
// generated text allowed unambiguous extraction.
type OptimizationSuggestion struct {
	RecommendedCoin        string                 `json:"recommended_coin,omitempty"`
	GPUAllocation          map[string]string      `json:"gpu_allocation,omitempty"`
	RentalRecommendation   RentalRecommendation   `json:"rental_recommendation"`
	MiningSchedule         map[string]string      `json:"mining_schedule,omitempty"`
	EstimatedProfitability EstimatedProfitability `json:"estimated_profitability"`
}

// OptimizationResult pairs the structured suggestion with the unmodified
// generated text so callers can always fall back to the source.
type OptimizationResult struct {
	RawAnalysis string                 `json:"raw_analysis"`
	Suggestions OptimizationSuggestion `json:"suggestions"`
}
