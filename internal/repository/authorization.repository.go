package repository

import (
	"context"

	"fitprofile/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AuthorizationRepository interface {
	// Set records status for every type, replacing earlier answers.
	Set(ctx context.Context, userID uint, types []models.SampleType, status models.AuthorizationStatus) error
	FindByUserID(ctx context.Context, userID uint) ([]models.HealthAuthorization, error)
}

type authorizationRepository struct {
	db *gorm.DB
}

func NewAuthorizationRepository(db *gorm.DB) AuthorizationRepository {
	return &authorizationRepository{db}
}

func (r *authorizationRepository) Set(ctx context.Context, userID uint, types []models.SampleType, status models.AuthorizationStatus) error {
	if len(types) == 0 {
		return nil
	}
	rows := make([]models.HealthAuthorization, 0, len(types))
	for _, t := range types {
		rows = append(rows, models.HealthAuthorization{UserID: userID, Type: t, Status: status})
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "type"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
	}).Create(&rows).Error
}

func (r *authorizationRepository) FindByUserID(ctx context.Context, userID uint) ([]models.HealthAuthorization, error) {
	var auths []models.HealthAuthorization
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("type").Find(&auths).Error
	return auths, err
}
