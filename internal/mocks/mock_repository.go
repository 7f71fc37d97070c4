package mocks

import (
	"context"
	"time"

	"fitprofile/internal/healthstore"
	"fitprofile/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockSampleRepository struct {
	mock.Mock
}

func (m *MockSampleRepository) Create(ctx context.Context, sample *models.HealthSample) error {
	args := m.Called(ctx, sample)
	return args.Error(0)
}

func (m *MockSampleRepository) FindLatest(ctx context.Context, userID uint, sampleType models.SampleType) (*models.HealthSample, error) {
	args := m.Called(ctx, userID, sampleType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HealthSample), args.Error(1)
}

func (m *MockSampleRepository) ListByType(ctx context.Context, userID uint, sampleType models.SampleType, limit int) ([]models.HealthSample, error) {
	args := m.Called(ctx, userID, sampleType, limit)
	return args.Get(0).([]models.HealthSample), args.Error(1)
}

func (m *MockSampleRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockAuthorizationRepository struct {
	mock.Mock
}

func (m *MockAuthorizationRepository) Set(ctx context.Context, userID uint, types []models.SampleType, status models.AuthorizationStatus) error {
	args := m.Called(ctx, userID, types, status)
	return args.Error(0)
}

func (m *MockAuthorizationRepository) FindByUserID(ctx context.Context, userID uint) ([]models.HealthAuthorization, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.HealthAuthorization), args.Error(1)
}

type MockCharacteristicRepository struct {
	mock.Mock
}

func (m *MockCharacteristicRepository) Upsert(ctx context.Context, c *models.Characteristic) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCharacteristicRepository) FindByUserID(ctx context.Context, userID uint) (*models.Characteristic, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Characteristic), args.Error(1)
}

type MockHealthStore struct {
	mock.Mock
}

func (m *MockHealthStore) RequestAuthorization(ctx context.Context, userID uint, types []models.SampleType) error {
	args := m.Called(ctx, userID, types)
	return args.Error(0)
}

func (m *MockHealthStore) QueryLatest(ctx context.Context, userID uint, sampleType models.SampleType) (healthstore.Sample, error) {
	args := m.Called(ctx, userID, sampleType)
	return args.Get(0).(healthstore.Sample), args.Error(1)
}

func (m *MockHealthStore) DateOfBirth(ctx context.Context, userID uint) (time.Time, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(time.Time), args.Error(1)
}
