// Package healthstore is the read side of the health-data store the profile
// is built from: read-access authorization plus latest-sample queries.
package healthstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fitprofile/internal/models"
	"fitprofile/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrAuthorizationDenied = errors.New("health data authorization denied")
	ErrNoSampleAvailable   = errors.New("no sample available")
	ErrQueryFailed         = errors.New("health data query failed")
)

// Sample is the most recent reading of a quantity type, in canonical units.
type Sample struct {
	Type       models.SampleType
	Value      float64
	Unit       string
	RecordedAt time.Time
}

type HealthStore interface {
	// RequestAuthorization succeeds only if read access was granted for every type.
	RequestAuthorization(ctx context.Context, userID uint, types []models.SampleType) error
	QueryLatest(ctx context.Context, userID uint, sampleType models.SampleType) (Sample, error)
	DateOfBirth(ctx context.Context, userID uint) (time.Time, error)
}

type gormStore struct {
	samples         repository.SampleRepository
	authorizations  repository.AuthorizationRepository
	characteristics repository.CharacteristicRepository
}

func NewStore(
	samples repository.SampleRepository,
	authorizations repository.AuthorizationRepository,
	characteristics repository.CharacteristicRepository,
) HealthStore {
	return &gormStore{
		samples:         samples,
		authorizations:  authorizations,
		characteristics: characteristics,
	}
}

func (s *gormStore) RequestAuthorization(ctx context.Context, userID uint, types []models.SampleType) error {
	auths, err := s.authorizations.FindByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}

	granted := make(map[models.SampleType]bool, len(auths))
	for _, a := range auths {
		granted[a.Type] = a.Status == models.AuthorizationGranted
	}

	for _, t := range types {
		if !granted[t] {
			return fmt.Errorf("%w: %s", ErrAuthorizationDenied, t)
		}
	}
	return nil
}

func (s *gormStore) QueryLatest(ctx context.Context, userID uint, sampleType models.SampleType) (Sample, error) {
	if !sampleType.Quantity() {
		return Sample{}, fmt.Errorf("%w: %s is not a quantity type", ErrQueryFailed, sampleType)
	}
	if err := s.RequestAuthorization(ctx, userID, []models.SampleType{sampleType}); err != nil {
		return Sample{}, err
	}

	row, err := s.samples.FindLatest(ctx, userID, sampleType)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Sample{}, fmt.Errorf("%w: %s", ErrNoSampleAvailable, sampleType)
	}
	if err != nil {
		return Sample{}, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}

	return Sample{
		Type:       row.Type,
		Value:      row.Value,
		Unit:       row.Unit,
		RecordedAt: row.RecordedAt,
	}, nil
}

func (s *gormStore) DateOfBirth(ctx context.Context, userID uint) (time.Time, error) {
	if err := s.RequestAuthorization(ctx, userID, []models.SampleType{models.SampleTypeDateOfBirth}); err != nil {
		return time.Time{}, err
	}

	c, err := s.characteristics.FindByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && c.DateOfBirth.IsZero()) {
		return time.Time{}, fmt.Errorf("%w: %s", ErrNoSampleAvailable, models.SampleTypeDateOfBirth)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}
	return c.DateOfBirth, nil
}
