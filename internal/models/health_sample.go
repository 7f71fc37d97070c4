package models

import (
	"time"

	"gorm.io/gorm"
)

type SampleType string

const (
	SampleTypeHeight      SampleType = "height"
	SampleTypeBodyMass    SampleType = "body_mass"
	SampleTypeDateOfBirth SampleType = "date_of_birth"
)

// ProfileSampleTypes are the types the profile needs read access to.
var ProfileSampleTypes = []SampleType{SampleTypeDateOfBirth, SampleTypeHeight, SampleTypeBodyMass}

func (t SampleType) Valid() bool {
	switch t {
	case SampleTypeHeight, SampleTypeBodyMass, SampleTypeDateOfBirth:
		return true
	}
	return false
}

// Quantity reports whether samples of this type carry a numeric value.
func (t SampleType) Quantity() bool {
	return t == SampleTypeHeight || t == SampleTypeBodyMass
}

// CanonicalUnit is the unit values are stored in.
func (t SampleType) CanonicalUnit() string {
	switch t {
	case SampleTypeHeight:
		return "m"
	case SampleTypeBodyMass:
		return "kg"
	}
	return ""
}

type HealthSample struct {
	ID         uint           `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt  time.Time      `json:"created_at" example:"2023-01-01T00:00:00Z"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-" swaggerignore:"true"`
	UserID     uint           `gorm:"index:idx_sample_user_type_time,priority:1;not null" json:"user_id" example:"1"`
	Type       SampleType     `gorm:"type:varchar(32);index:idx_sample_user_type_time,priority:2;not null" json:"type" example:"height"`
	Value      float64        `gorm:"not null" json:"value" example:"1.8"`
	Unit       string         `gorm:"type:varchar(8);not null" json:"unit" example:"m"`
	RecordedAt time.Time      `gorm:"index:idx_sample_user_type_time,priority:3;not null" json:"recorded_at" example:"2023-01-01T00:00:00Z"`
}
