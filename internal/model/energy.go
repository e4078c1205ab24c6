package model

import "time"

// SolarProduction is the photovoltaic part of an energy snapshot.
// Absent entirely when no solar installation is configured.
type SolarProduction struct {
	CurrentOutput     float64 `json:"current_output"`     // kW
	DailyProduction   float64 `json:"daily_production"`   // kWh
	MonthlyProduction float64 `json:"monthly_production"` // kWh
	EnergySaved       float64 `json:"energy_saved"`       // EUR
}

// EnergyData is the combined meter + solar snapshot.
// GridPercentage and SolarPercentage sum to 100 whenever SolarProduction
// is present; GridPercentage is 100 otherwise.
type EnergyData struct {
	Timestamp          time.Time        `json:"timestamp"`
	CurrentConsumption float64          `json:"current_consumption"` // kW
	DailyConsumption   float64          `json:"daily_consumption"`   // kWh
	MonthlyConsumption float64          `json:"monthly_consumption"` // kWh
	CostPerKWh         float64          `json:"cost_per_kwh"`
	DailyCost          float64          `json:"daily_cost"`
	MonthlyCost        float64          `json:"monthly_cost"`
	SolarProduction    *SolarProduction `json:"solar_production,omitempty"`
	GridPercentage     float64          `json:"grid_percentage"`
	SolarPercentage    float64          `json:"solar_percentage"`
	Source             string           `json:"source"`
}

// EnergyForecastDay is one day of the consumption/production forecast.
type EnergyForecastDay struct {
	Day             int       `json:"day"`
	Date            time.Time `json:"date"`
	Consumption     float64   `json:"consumption"`      // kWh
	SolarProduction float64   `json:"solar_production"` // kWh
	Cost            float64   `json:"cost"`             // EUR
	GridPercentage  float64   `json:"grid_percentage"`
	SolarPercentage float64   `json:"solar_percentage"`
}
