package model

import "time"

// User MySQL model for users table
type User struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username       string    `gorm:"column:username;type:varchar(64);not null;uniqueIndex:idx_username_unique" json:"username"`
	Email          string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex:idx_email_unique" json:"email"`
	HashedPassword string    `gorm:"column:hashed_password;type:varchar(255);not null" json:"-"`
	IsActive       bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"column:created_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;type:datetime(3);not null;default:CURRENT_TIMESTAMP(3)" json:"updated_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
