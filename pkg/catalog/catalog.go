// Package catalog holds the fixed synthetic dataset served whenever a
// connector runs degraded. All three connectors draw from the same
// catalog so mock payloads stay mutually consistent.
package catalog

import (
	"time"

	"minerops/internal/model"
)

// Coin symbols known to the catalog, in stable enumeration order.
var CoinOrder = []string{"BTC", "ETH", "XMR", "RVN"}

// coins is the fixed market dataset.
var coins = map[string]model.CoinMarket{
	"BTC": {
		Symbol:         "BTC",
		Name:           "Bitcoin",
		Algorithm:      "SHA-256",
		CurrentPrice:   67500.25,
		PriceChange24h: 1.2,
		EstimatedEarnings: model.EstimatedEarnings{
			Day: 0.00012, Week: 0.00084, Month: 0.0036,
		},
		RewardPerHashrate: 0.00000015,
	},
	"ETH": {
		Symbol:         "ETH",
		Name:           "Ethereum",
		Algorithm:      "Ethash",
		CurrentPrice:   3200.75,
		PriceChange24h: -0.5,
		EstimatedEarnings: model.EstimatedEarnings{
			Day: 0.0025, Week: 0.0175, Month: 0.075,
		},
		RewardPerHashrate: 0.0000012,
	},
	"XMR": {
		Symbol:         "XMR",
		Name:           "Monero",
		Algorithm:      "RandomX",
		CurrentPrice:   185.50,
		PriceChange24h: 0.8,
		EstimatedEarnings: model.EstimatedEarnings{
			Day: 0.015, Week: 0.105, Month: 0.45,
		},
		RewardPerHashrate: 0.0000085,
	},
	"RVN": {
		Symbol:         "RVN",
		Name:           "Ravencoin",
		Algorithm:      "KAWPOW",
		CurrentPrice:   0.025,
		PriceChange24h: 2.5,
		EstimatedEarnings: model.EstimatedEarnings{
			Day: 35, Week: 245, Month: 1050,
		},
		RewardPerHashrate: 0.000075,
	},
}

// gpus is the fixed GPU fleet. Hashrate units follow each coin's
// conventional unit; a coin absent from the map cannot be mined by that
// device.
var gpus = []model.GPUDevice{
	{
		Model:            "NVIDIA GeForce RTX 3060",
		Hashrate:         map[string]float64{"ETH": 50.2, "RVN": 22.5, "XMR": 1.1},
		PowerConsumption: 170,
		Price:            329,
	},
	{
		Model:            "NVIDIA GeForce RTX 3070",
		Hashrate:         map[string]float64{"ETH": 61.5, "RVN": 27.0, "XMR": 1.3},
		PowerConsumption: 220,
		Price:            499,
	},
	{
		Model:            "NVIDIA GeForce RTX 3080",
		Hashrate:         map[string]float64{"ETH": 97.0, "RVN": 42.5, "XMR": 1.9},
		PowerConsumption: 320,
		Price:            699,
	},
	{
		Model:            "NVIDIA GeForce RTX 3090",
		Hashrate:         map[string]float64{"ETH": 120.5, "RVN": 52.0, "XMR": 2.4},
		PowerConsumption: 350,
		Price:            1499,
	},
	{
		Model:            "NVIDIA GeForce RTX 4070",
		Hashrate:         map[string]float64{"ETH": 80.2, "RVN": 37.0, "XMR": 1.7},
		PowerConsumption: 200,
		Price:            599,
	},
	{
		Model:            "NVIDIA GeForce RTX 4080",
		Hashrate:         map[string]float64{"ETH": 105.0, "RVN": 48.0, "XMR": 2.2},
		PowerConsumption: 300,
		Price:            1199,
	},
	{
		Model:            "NVIDIA GeForce RTX 4090",
		Hashrate:         map[string]float64{"ETH": 130.0, "RVN": 58.5, "XMR": 2.8},
		PowerConsumption: 420,
		Price:            1599,
	},
}

// pricing is the fixed rental price list, one row per catalog GPU.
var pricing = []model.GPUPricing{
	{GPUModel: "NVIDIA GeForce RTX 3060", PricePerHour: 0.25, PricePerDay: 5.50, PricePerWeek: 35.00, MinimumHours: 1, PerformanceRating: 8.5},
	{GPUModel: "NVIDIA GeForce RTX 3070", PricePerHour: 0.35, PricePerDay: 7.50, PricePerWeek: 48.00, MinimumHours: 1, PerformanceRating: 9.2},
	{GPUModel: "NVIDIA GeForce RTX 3080", PricePerHour: 0.50, PricePerDay: 10.50, PricePerWeek: 68.00, MinimumHours: 1, PerformanceRating: 9.7},
	{GPUModel: "NVIDIA GeForce RTX 3090", PricePerHour: 0.70, PricePerDay: 15.00, PricePerWeek: 95.00, MinimumHours: 2, PerformanceRating: 10.0},
	{GPUModel: "NVIDIA GeForce RTX 4070", PricePerHour: 0.45, PricePerDay: 9.50, PricePerWeek: 60.00, MinimumHours: 1, PerformanceRating: 9.5},
	{GPUModel: "NVIDIA GeForce RTX 4080", PricePerHour: 0.65, PricePerDay: 14.00, PricePerWeek: 88.00, MinimumHours: 2, PerformanceRating: 9.9},
	{GPUModel: "NVIDIA GeForce RTX 4090", PricePerHour: 0.90, PricePerDay: 19.00, PricePerWeek: 120.00, MinimumHours: 3, PerformanceRating: 10.0},
}

// availability mirrors the pricing list with fixed stock counts.
var availability = []struct {
	model     string
	available int
	total     int
}{
	{"NVIDIA GeForce RTX 3060", 15, 50},
	{"NVIDIA GeForce RTX 3070", 8, 30},
	{"NVIDIA GeForce RTX 3080", 5, 25},
	{"NVIDIA GeForce RTX 3090", 3, 20},
	{"NVIDIA GeForce RTX 4070", 10, 30},
	{"NVIDIA GeForce RTX 4080", 6, 20},
	{"NVIDIA GeForce RTX 4090", 2, 15},
}

// trends is the fixed marketplace trend view.
var trends = map[string]model.MarketTrend{
	"ETH": {PriceChange24h: 2.5, ProfitabilityChange24h: 1.8, Forecast7d: "slightly_increasing"},
	"BTC": {PriceChange24h: 1.2, ProfitabilityChange24h: 0.5, Forecast7d: "stable"},
	"RVN": {PriceChange24h: 5.7, ProfitabilityChange24h: 4.2, Forecast7d: "increasing"},
}

// Coins returns the coin dataset in stable order.
func Coins() []model.CoinMarket {
	out := make([]model.CoinMarket, 0, len(CoinOrder))
	for _, symbol := range CoinOrder {
		out = append(out, coins[symbol])
	}
	return out
}

// CoinsMap returns the coin dataset keyed by symbol.
func CoinsMap() map[string]model.CoinMarket {
	out := make(map[string]model.CoinMarket, len(coins))
	for symbol, coin := range coins {
		out[symbol] = coin
	}
	return out
}

// GPUs returns the GPU fleet. Hashrate maps are copied so callers cannot
// mutate the catalog.
func GPUs() []model.GPUDevice {
	out := make([]model.GPUDevice, len(gpus))
	for i, gpu := range gpus {
		rates := make(map[string]float64, len(gpu.Hashrate))
		for coin, rate := range gpu.Hashrate {
			rates[coin] = rate
		}
		gpu.Hashrate = rates
		out[i] = gpu
	}
	return out
}

// GPU returns the catalog entry for a model name, false if unknown.
func GPU(modelName string) (model.GPUDevice, bool) {
	for _, gpu := range GPUs() {
		if gpu.Model == modelName {
			return gpu, true
		}
	}
	return model.GPUDevice{}, false
}

// Pricing returns the rental price list.
func Pricing() []model.GPUPricing {
	out := make([]model.GPUPricing, len(pricing))
	copy(out, pricing)
	return out
}

// PriceFor returns the hourly rental price for a model, falling back to
// a mid-range default for unknown hardware.
func PriceFor(modelName string) float64 {
	for _, p := range pricing {
		if p.GPUModel == modelName {
			return p.PricePerHour
		}
	}
	return 0.5
}

// Availability returns the availability rows stamped with the given time.
func Availability(now time.Time) []model.GPUAvailability {
	out := make([]model.GPUAvailability, len(availability))
	for i, a := range availability {
		out[i] = model.GPUAvailability{
			GPUModel:    a.model,
			Available:   a.available,
			Total:       a.total,
			LastUpdated: now,
		}
	}
	return out
}

// RentalOffers returns marketplace offers derived from pricing and
// availability, optionally filtered to the requested models.
func RentalOffers(models []string) []model.RentalOffer {
	wanted := make(map[string]bool, len(models))
	for _, m := range models {
		wanted[m] = true
	}

	out := make([]model.RentalOffer, 0, len(pricing))
	for i, p := range pricing {
		if len(models) > 0 && !wanted[p.GPUModel] {
			continue
		}
		out = append(out, model.RentalOffer{
			GPUModel:         p.GPUModel,
			PricePerHour:     p.PricePerHour,
			PricePerDay:      p.PricePerDay,
			Availability:     availability[i].available,
			PerformanceIndex: p.PerformanceRating,
		})
	}
	return out
}

// MarketTrends returns the fixed trend view.
func MarketTrends() map[string]model.MarketTrend {
	out := make(map[string]model.MarketTrend, len(trends))
	for coin, trend := range trends {
		out[coin] = trend
	}
	return out
}
