package service

import (
	"context"

	"minerops/internal/model"
)

// EnergyService exposes the energy connector readings.
type EnergyService struct {
	energy EnergySource
}

// NewEnergyService creates the energy service.
func NewEnergyService(energy EnergySource) *EnergyService {
	return &EnergyService{energy: energy}
}

// GetEnergyData returns the combined consumption and solar reading.
func (s *EnergyService) GetEnergyData(ctx context.Context) model.EnergyData {
	return s.energy.GetEnergyData(ctx)
}

// GetSolarProduction returns the solar reading, or nil when no
// installation is configured.
func (s *EnergyService) GetSolarProduction(ctx context.Context) *model.SolarProduction {
	return s.energy.GetSolarProduction(ctx)
}

// GetEnergyForecast returns the per-day forecast for the given horizon.
func (s *EnergyService) GetEnergyForecast(ctx context.Context, days int) []model.EnergyForecastDay {
	return s.energy.GetEnergyForecast(ctx, days)
}
