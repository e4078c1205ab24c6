package model

import "time"

// RentalRecord MySQL model for rental_records table. One row per rental
// placed through the marketplace connector, including mock rentals so
// the operator can audit degraded-mode activity.
type RentalRecord struct {
	ID            int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	RentalID      string     `gorm:"column:rental_id;type:varchar(64);not null;uniqueIndex:idx_rental_id_unique" json:"rental_id"`
	GPUModel      string     `gorm:"column:gpu_model;type:varchar(128);not null" json:"gpu_model"`
	DurationHours int        `gorm:"column:duration_hours;not null" json:"duration_hours"`
	PricePerHour  float64    `gorm:"column:price_per_hour;not null" json:"price_per_hour"`
	TotalCost     float64    `gorm:"column:total_cost;not null" json:"total_cost"`
	Status        string     `gorm:"column:status;type:varchar(16);not null;index:idx_status" json:"status"` // active or cancelled
	Source        string     `gorm:"column:source;type:varchar(8);not null" json:"source"`                   // live or mock
	StartTime     time.Time  `gorm:"column:start_time;type:datetime(3);not null" json:"start_time"`
	EndTime       time.Time  `gorm:"column:end_time;type:datetime(3);not null" json:"end_time"`
	CancelledAt   *time.Time `gorm:"column:cancelled_at;type:datetime(3)" json:"cancelled_at,omitempty"`
	CreatedAt     time.Time  `gorm:"column:created_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"created_at"`
}

// TableName specifies the table name for RentalRecord
func (RentalRecord) TableName() string {
	return "rental_records"
}
