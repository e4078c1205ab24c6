package model

import "time"

// GPUAvailability is one marketplace availability row.
type GPUAvailability struct {
	GPUModel    string    `json:"gpu_model"`
	Available   int       `json:"available"`
	Total       int       `json:"total"`
	LastUpdated time.Time `json:"last_updated"`
}

// GPUPricing is one marketplace price-list row.
type GPUPricing struct {
	GPUModel          string  `json:"gpu_model"`
	PricePerHour      float64 `json:"price_per_hour"`
	PricePerDay       float64 `json:"price_per_day"`
	PricePerWeek      float64 `json:"price_per_week"`
	MinimumHours      int     `json:"minimum_hours"`
	PerformanceRating float64 `json:"performance_rating"`
}

// RentalOffer is a marketplace offer considered during optimization.
type RentalOffer struct {
	GPUModel         string  `json:"gpu_model"`
	PricePerHour     float64 `json:"price_per_hour"`
	PricePerDay      float64 `json:"price_per_day"`
	Availability     int     `json:"availability"`
	PerformanceIndex float64 `json:"performance_index"`
}

// MarketTrend summarizes the marketplace view of one coin.
type MarketTrend struct {
	PriceChange24h         float64 `json:"price_change_24h"`
	ProfitabilityChange24h float64 `json:"profitability_change_24h"`
	Forecast7d             string  `json:"forecast_7d"`
}

// RentalProfitability is the marketplace profitability answer for a set
// of GPU models.
type RentalProfitability struct {
	Rentals        []RentalOffer          `json:"rentals"`
	MarketTrends   map[string]MarketTrend `json:"market_trends"`
	Recommendation string                 `json:"recommendation"`
	Source         string                 `json:"source"`
}

// ConnectionInfo describes how to reach a rented machine.
type ConnectionInfo struct {
	IP       string `json:"ip"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// RentalReceipt is the outcome of a rent or cancel call. Status is
// "error" when the remote operation failed; a failed financial operation
// is never replaced with synthetic success.
type RentalReceipt struct {
	Status         string          `json:"status"`
	Message        string          `json:"message,omitempty"`
	Error          string          `json:"error,omitempty"`
	RentalID       string          `json:"rental_id,omitempty"`
	GPUModel       string          `json:"gpu_model,omitempty"`
	DurationHours  int             `json:"duration_hours,omitempty"`
	StartTime      time.Time       `json:"start_time,omitempty"`
	EndTime        time.Time       `json:"end_time,omitempty"`
	PricePerHour   float64         `json:"price_per_hour,omitempty"`
	TotalCost      float64         `json:"total_cost,omitempty"`
	ConnectionInfo *ConnectionInfo `json:"connection_info,omitempty"`
}
