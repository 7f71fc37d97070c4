package models

import "time"

type RecordSampleRequest struct {
	Type       SampleType `json:"type" binding:"required" example:"height"`
	Value      *float64   `json:"value" binding:"required" example:"1.8"`
	Unit       string     `json:"unit" example:"m"`
	RecordedAt *time.Time `json:"recorded_at" example:"2023-01-01T00:00:00Z"`
}

type SetDateOfBirthRequest struct {
	DateOfBirth string `json:"date_of_birth" binding:"required" example:"1990-05-17"`
}

type SetAuthorizationRequest struct {
	Types  []SampleType        `json:"types" binding:"required,min=1" example:"height,body_mass"`
	Status AuthorizationStatus `json:"status" binding:"required" example:"granted"`
}
