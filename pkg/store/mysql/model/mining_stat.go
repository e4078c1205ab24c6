package model

import "time"

// MiningStat MySQL model for mining_stats table. One row is one fleet
// sample taken by the collector.
type MiningStat struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Timestamp     time.Time `gorm:"column:timestamp;type:datetime(3);not null;index:idx_timestamp" json:"timestamp"`
	TotalHashrate float64   `gorm:"column:total_hashrate;not null" json:"total_hashrate"`
	TotalPower    float64   `gorm:"column:total_power;not null" json:"total_power"` // watts
	ActiveGPUs    int       `gorm:"column:active_gpus;not null" json:"active_gpus"`
	ActiveCoin    string    `gorm:"column:active_coin;type:varchar(16)" json:"active_coin"`
	Earnings24h   float64   `gorm:"column:earnings_24h" json:"earnings_24h"`
	Source        string    `gorm:"column:source;type:varchar(8);not null" json:"source"` // live or mock
	Details       JSONMap   `gorm:"column:details;type:json" json:"details"`              // per-GPU telemetry
	CreatedAt     time.Time `gorm:"column:created_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"created_at"`
}

// TableName specifies the table name for MiningStat
func (MiningStat) TableName() string {
	return "mining_stats"
}
