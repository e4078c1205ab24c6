package service

import (
	"context"

	"minerops/internal/model"
)

// MiningSource is the mining connector surface the services consume.
type MiningSource interface {
	GetStats(ctx context.Context) model.MiningStats
	GetCoinProfitability(ctx context.Context) map[string]model.CoinMarket
	GetGPUStats(ctx context.Context) []model.GPUInfo
	StartMining(ctx context.Context, configID int) model.ActionResult
	StopMining(ctx context.Context, configID int) model.ActionResult
	Mode() string
}

// EnergySource is the energy connector surface the services consume.
type EnergySource interface {
	GetEnergyData(ctx context.Context) model.EnergyData
	GetSolarProduction(ctx context.Context) *model.SolarProduction
	GetEnergyForecast(ctx context.Context, days int) []model.EnergyForecastDay
	Mode() string
}

// RentalSource is the rental connector surface the services consume.
type RentalSource interface {
	GetAvailability(ctx context.Context) []model.GPUAvailability
	GetPricing(ctx context.Context) []model.GPUPricing
	GetProfitability(ctx context.Context, models []string) model.RentalProfitability
	Rent(ctx context.Context, gpuModel string, hours int) model.RentalReceipt
	CancelRental(ctx context.Context, rentalID string) model.ActionResult
	Mode() string
}
