package repository

import (
	"medipublish_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(a *model.ActivityAttempt) error {
	return r.DB.Create(a).Error
}

func (r *AttemptRepository) CountByUserAndActivity(userID, activityID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ActivityAttempt{}).
		Where("user_id = ? AND activity_id = ?", userID, activityID).
		Count(&count).Error
	return count, err
}

func (r *AttemptRepository) ListByUserAndActivity(userID, activityID uint) ([]model.ActivityAttempt, error) {
	var attempts []model.ActivityAttempt
	err := r.DB.Where("user_id = ? AND activity_id = ?", userID, activityID).
		Order("created_at asc").
		Find(&attempts).Error
	return attempts, err
}
