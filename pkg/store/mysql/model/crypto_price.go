package model

import "time"

// CryptoPrice MySQL model for crypto_prices table. One row per coin
// sample; history queries read this table by symbol and timestamp.
type CryptoPrice struct {
	ID                int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Symbol            string    `gorm:"column:symbol;type:varchar(16);not null;index:idx_symbol_ts,priority:1" json:"symbol"`
	PriceEUR          float64   `gorm:"column:price_eur;not null" json:"price_eur"`
	PriceChange24h    float64   `gorm:"column:price_change_24h" json:"price_change_24h"`
	Algorithm         string    `gorm:"column:algorithm;type:varchar(32)" json:"algorithm"`
	RewardPerHashrate float64   `gorm:"column:reward_per_hashrate" json:"reward_per_hashrate"`
	Timestamp         time.Time `gorm:"column:timestamp;type:datetime(3);not null;index:idx_symbol_ts,priority:2" json:"timestamp"`
}

// TableName specifies the table name for CryptoPrice
func (CryptoPrice) TableName() string {
	return "crypto_prices"
}
