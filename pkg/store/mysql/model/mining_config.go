package model

import "time"

// MiningConfig MySQL model for mining_configs table. One row is one
// named rig setup an operator can start or stop.
type MiningConfig struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        int64           `gorm:"column:user_id;not null;index:idx_user_id" json:"user_id"`
	Name          string          `gorm:"column:name;type:varchar(128);not null" json:"name"`
	Coin          string          `gorm:"column:coin;type:varchar(16);not null" json:"coin"`
	WalletAddress string          `gorm:"column:wallet_address;type:varchar(255)" json:"wallet_address"`
	Pool          string          `gorm:"column:pool;type:varchar(255)" json:"pool"`
	GPUs          JSONStringArray `gorm:"column:gpus;type:json" json:"gpus"`
	PowerLimit    int             `gorm:"column:power_limit" json:"power_limit"` // watts, 0 = unlimited
	Active        bool            `gorm:"column:active;not null;default:false;index:idx_active" json:"active"`
	CreatedAt     time.Time       `gorm:"column:created_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"updated_at"`
}

// TableName specifies the table name for MiningConfig
func (MiningConfig) TableName() string {
	return "mining_configs"
}
