package models

import "time"

// Characteristic holds per-user values that do not change over time.
type Characteristic struct {
	ID          uint      `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt   time.Time `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt   time.Time `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	UserID      uint      `gorm:"uniqueIndex;not null" json:"user_id" example:"1"`
	DateOfBirth time.Time `json:"date_of_birth" example:"1990-05-17T00:00:00Z"`
}
