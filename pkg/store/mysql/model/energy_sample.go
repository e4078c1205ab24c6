package model

import "time"

// EnergySample MySQL model for energy_samples table. One row is one
// meter + solar reading taken by the collector.
type EnergySample struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Timestamp       time.Time `gorm:"column:timestamp;type:datetime(3);not null;index:idx_timestamp" json:"timestamp"`
	Consumption     float64   `gorm:"column:consumption;not null" json:"consumption"` // kW
	DailyCost       float64   `gorm:"column:daily_cost" json:"daily_cost"`            // EUR
	CostPerKWh      float64   `gorm:"column:cost_per_kwh;not null" json:"cost_per_kwh"`
	SolarProduction float64   `gorm:"column:solar_production" json:"solar_production"` // kW
	SolarPercentage float64   `gorm:"column:solar_percentage" json:"solar_percentage"`
	Source          string    `gorm:"column:source;type:varchar(8);not null" json:"source"` // live or mock
	CreatedAt       time.Time `gorm:"column:created_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"created_at"`
}

// TableName specifies the table name for EnergySample
func (EnergySample) TableName() string {
	return "energy_samples"
}
