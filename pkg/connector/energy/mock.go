package energy

import (
	"time"

	"minerops/internal/model"
)

// Fixed mock meter values, kW / kWh.
const (
	mockCurrentConsumption = 3.2
	mockDailyConsumption   = 28.5
	mockMonthlyConsumption = 855.0

	mockSolarOutput            = 1.8
	mockSolarDailyProduction   = 9.6
	mockSolarMonthlyProduction = 288.0
)

// Per-weekday variation applied when projecting the current snapshot
// forward. Consumption and solar vary independently.
var (
	consumptionVariation = []float64{1.05, 0.92, 1.08, 0.97, 1.01, 0.88, 1.10}
	solarVariation       = []float64{1.10, 0.85, 1.15, 0.95, 1.05, 0.80, 1.20}
)

// mockSolarProduction builds the degraded solar snapshot.
func mockSolarProduction(costPerKWh float64) *model.SolarProduction {
	return &model.SolarProduction{
		CurrentOutput:     mockSolarOutput,
		DailyProduction:   mockSolarDailyProduction,
		MonthlyProduction: mockSolarMonthlyProduction,
		EnergySaved:       round2(mockSolarMonthlyProduction * costPerKWh),
	}
}

// mockEnergyData builds the degraded combined snapshot. Every value
// except the timestamp is deterministic.
func mockEnergyData(costPerKWh float64) model.EnergyData {
	data := model.EnergyData{
		Timestamp:          time.Now(),
		CurrentConsumption: mockCurrentConsumption,
		DailyConsumption:   mockDailyConsumption,
		MonthlyConsumption: mockMonthlyConsumption,
		CostPerKWh:         costPerKWh,
		DailyCost:          round2(mockDailyConsumption * costPerKWh),
		MonthlyCost:        round2(mockMonthlyConsumption * costPerKWh),
		SolarProduction:    mockSolarProduction(costPerKWh),
		Source:             model.SourceMock,
	}
	data.SolarPercentage, data.GridPercentage = splitPercentages(mockSolarDailyProduction, mockDailyConsumption)
	return data
}

// forecastFrom projects a snapshot over the coming days using the fixed
// variation tables.
func forecastFrom(data model.EnergyData, days int, now time.Time) []model.EnergyForecastDay {
	solarDaily := 0.0
	if data.SolarProduction != nil {
		solarDaily = data.SolarProduction.DailyProduction
	}

	out := make([]model.EnergyForecastDay, 0, days)
	for i := 0; i < days; i++ {
		consumption := round2(data.DailyConsumption * consumptionVariation[i%len(consumptionVariation)])
		solar := round2(solarDaily * solarVariation[i%len(solarVariation)])

		gridEnergy := consumption - solar
		if gridEnergy < 0 {
			gridEnergy = 0
		}

		solarPct, gridPct := splitPercentages(solar, consumption)
		out = append(out, model.EnergyForecastDay{
			Day:             i + 1,
			Date:            now.AddDate(0, 0, i+1),
			Consumption:     consumption,
			SolarProduction: solar,
			Cost:            round2(gridEnergy * data.CostPerKWh),
			GridPercentage:  gridPct,
			SolarPercentage: solarPct,
		})
	}
	return out
}
