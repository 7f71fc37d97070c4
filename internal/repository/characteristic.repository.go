package repository

import (
	"context"

	"fitprofile/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CharacteristicRepository interface {
	Upsert(ctx context.Context, c *models.Characteristic) error
	FindByUserID(ctx context.Context, userID uint) (*models.Characteristic, error)
}

type characteristicRepository struct {
	db *gorm.DB
}

func NewCharacteristicRepository(db *gorm.DB) CharacteristicRepository {
	return &characteristicRepository{db}
}

func (r *characteristicRepository) Upsert(ctx context.Context, c *models.Characteristic) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"date_of_birth", "updated_at"}),
	}).Create(c).Error
}

func (r *characteristicRepository) FindByUserID(ctx context.Context, userID uint) (*models.Characteristic, error) {
	var c models.Characteristic
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}
