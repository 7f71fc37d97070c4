package models

import "time"

type AuthorizationStatus string

const (
	AuthorizationGranted AuthorizationStatus = "granted"
	AuthorizationDenied  AuthorizationStatus = "denied"
)

func (s AuthorizationStatus) Valid() bool {
	return s == AuthorizationGranted || s == AuthorizationDenied
}

// HealthAuthorization records the user's answer to a read-access request for one sample type.
type HealthAuthorization struct {
	ID        uint                `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt time.Time           `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt time.Time           `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	UserID    uint                `gorm:"uniqueIndex:idx_auth_user_type;not null" json:"user_id" example:"1"`
	Type      SampleType          `gorm:"type:varchar(32);uniqueIndex:idx_auth_user_type;not null" json:"type" example:"height"`
	Status    AuthorizationStatus `gorm:"type:varchar(16);not null" json:"status" example:"granted"`
}
