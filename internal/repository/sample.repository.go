package repository

import (
	"context"
	"time"

	"fitprofile/internal/models"

	"gorm.io/gorm"
)

type SampleRepository interface {
	Create(ctx context.Context, sample *models.HealthSample) error
	FindLatest(ctx context.Context, userID uint, sampleType models.SampleType) (*models.HealthSample, error)
	ListByType(ctx context.Context, userID uint, sampleType models.SampleType, limit int) ([]models.HealthSample, error)
	DeleteByUserID(ctx context.Context, userID uint) error
}

type sampleRepository struct {
	db *gorm.DB
}

func NewSampleRepository(db *gorm.DB) SampleRepository {
	return &sampleRepository{db}
}

func (r *sampleRepository) Create(ctx context.Context, sample *models.HealthSample) error {
	if sample.RecordedAt.IsZero() {
		sample.RecordedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(sample).Error
}

// FindLatest returns gorm.ErrRecordNotFound when the user has no sample of that type.
func (r *sampleRepository) FindLatest(ctx context.Context, userID uint, sampleType models.SampleType) (*models.HealthSample, error) {
	var sample models.HealthSample
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND type = ?", userID, sampleType).
		Order("recorded_at DESC").
		Order("id DESC").
		First(&sample).Error
	if err != nil {
		return nil, err
	}
	return &sample, nil
}

func (r *sampleRepository) ListByType(ctx context.Context, userID uint, sampleType models.SampleType, limit int) ([]models.HealthSample, error) {
	var samples []models.HealthSample
	q := r.db.WithContext(ctx).
		Where("user_id = ? AND type = ?", userID, sampleType).
		Order("recorded_at DESC").
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&samples).Error
	return samples, err
}

func (r *sampleRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Unscoped().Where("user_id = ?", userID).Delete(&models.HealthSample{}).Error
}
