package repository

import (
	"context"
	"testing"
	"time"

	"fitprofile/internal/models"

	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/ncruces/go-sqlite3/gormlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(gormlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.HealthSample{}, &models.HealthAuthorization{}, &models.Characteristic{}))
	return db
}

func TestSampleRepositoryFindLatest(t *testing.T) {
	ctx := context.Background()
	repo := NewSampleRepository(setupTestDB(t))

	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &models.HealthSample{UserID: 1, Type: models.SampleTypeHeight, Value: 1.78, Unit: "m", RecordedAt: base}))
	require.NoError(t, repo.Create(ctx, &models.HealthSample{UserID: 1, Type: models.SampleTypeHeight, Value: 1.80, Unit: "m", RecordedAt: base.Add(time.Hour)}))
	require.NoError(t, repo.Create(ctx, &models.HealthSample{UserID: 1, Type: models.SampleTypeBodyMass, Value: 72, Unit: "kg", RecordedAt: base.Add(2 * time.Hour)}))
	require.NoError(t, repo.Create(ctx, &models.HealthSample{UserID: 2, Type: models.SampleTypeHeight, Value: 1.65, Unit: "m", RecordedAt: base.Add(3 * time.Hour)}))

	latest, err := repo.FindLatest(ctx, 1, models.SampleTypeHeight)
	require.NoError(t, err)
	assert.Equal(t, 1.80, latest.Value)

	_, err = repo.FindLatest(ctx, 3, models.SampleTypeHeight)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSampleRepositoryLatestTieBreaksOnID(t *testing.T) {
	ctx := context.Background()
	repo := NewSampleRepository(setupTestDB(t))

	at := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &models.HealthSample{UserID: 1, Type: models.SampleTypeBodyMass, Value: 70, Unit: "kg", RecordedAt: at}))
	require.NoError(t, repo.Create(ctx, &models.HealthSample{UserID: 1, Type: models.SampleTypeBodyMass, Value: 71, Unit: "kg", RecordedAt: at}))

	latest, err := repo.FindLatest(ctx, 1, models.SampleTypeBodyMass)
	require.NoError(t, err)
	assert.Equal(t, 71.0, latest.Value)
}

func TestSampleRepositoryListAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewSampleRepository(setupTestDB(t))

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, &models.HealthSample{
			UserID:     1,
			Type:       models.SampleTypeBodyMass,
			Value:      70 + float64(i),
			Unit:       "kg",
			RecordedAt: time.Date(2024, 1, i+1, 0, 0, 0, 0, time.UTC),
		}))
	}

	samples, err := repo.ListByType(ctx, 1, models.SampleTypeBodyMass, 3)
	require.NoError(t, err)
	require.Len(t, samples, 3)
	assert.Equal(t, 74.0, samples[0].Value)

	require.NoError(t, repo.DeleteByUserID(ctx, 1))
	samples, err = repo.ListByType(ctx, 1, models.SampleTypeBodyMass, 0)
	require.NoError(t, err)
	assert.Empty(t, samples)
}

func TestSampleRepositoryCreateDefaultsRecordedAt(t *testing.T) {
	ctx := context.Background()
	repo := NewSampleRepository(setupTestDB(t))

	s := &models.HealthSample{UserID: 1, Type: models.SampleTypeHeight, Value: 1.7, Unit: "m"}
	require.NoError(t, repo.Create(ctx, s))
	assert.False(t, s.RecordedAt.IsZero())
}

func TestAuthorizationRepositorySetReplaces(t *testing.T) {
	ctx := context.Background()
	repo := NewAuthorizationRepository(setupTestDB(t))

	require.NoError(t, repo.Set(ctx, 1, models.ProfileSampleTypes, models.AuthorizationGranted))
	require.NoError(t, repo.Set(ctx, 1, []models.SampleType{models.SampleTypeBodyMass}, models.AuthorizationDenied))

	auths, err := repo.FindByUserID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, auths, 3)

	byType := map[models.SampleType]models.AuthorizationStatus{}
	for _, a := range auths {
		byType[a.Type] = a.Status
	}
	assert.Equal(t, models.AuthorizationDenied, byType[models.SampleTypeBodyMass])
	assert.Equal(t, models.AuthorizationGranted, byType[models.SampleTypeHeight])
	assert.Equal(t, models.AuthorizationGranted, byType[models.SampleTypeDateOfBirth])

	require.NoError(t, repo.Set(ctx, 1, nil, models.AuthorizationGranted))
}

func TestCharacteristicRepositoryUpsert(t *testing.T) {
	ctx := context.Background()
	repo := NewCharacteristicRepository(setupTestDB(t))

	_, err := repo.FindByUserID(ctx, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	first := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)
	second := time.Date(1991, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Upsert(ctx, &models.Characteristic{UserID: 1, DateOfBirth: first}))
	require.NoError(t, repo.Upsert(ctx, &models.Characteristic{UserID: 1, DateOfBirth: second}))

	c, err := repo.FindByUserID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, second.Equal(c.DateOfBirth))
}
