package repository

import (
	"errors"
	"medipublish_backend/internal/model"
	"medipublish_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type ActivityRepository struct {
	DB *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

func (r *ActivityRepository) Create(a *model.Activity) error {
	return r.DB.Create(a).Error
}

func (r *ActivityRepository) FindByID(id uint) (*model.Activity, error) {
	var a model.Activity
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("`order` asc, id asc")
	}).First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrActivityNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListPublished returns published activities in stable creation order so
// catalog pagination does not shuffle between requests.
func (r *ActivityRepository) ListPublished(specialty string, creditType string, page, limit int) ([]model.Activity, int64, error) {
	var as []model.Activity
	var total int64

	query := r.DB.Model(&model.Activity{}).Where("status = ?", model.ActivityPublished)
	if specialty != "" {
		like := "%" + specialty + "%"
		query = query.Where("LOWER(specialty) LIKE LOWER(?) OR LOWER(target_audience) LIKE LOWER(?)", like, like)
	}
	if creditType != "" {
		query = query.Where("credit_type = ?", creditType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at asc, id asc").Offset(offset).Limit(limit).Find(&as).Error
	return as, total, err
}

func (r *ActivityRepository) Update(a *model.Activity) error {
	return r.DB.Save(a).Error
}

func (r *ActivityRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Activity{}, id).Error
}

func (r *ActivityRepository) Publish(id uint) error {
	now := time.Now()
	return r.DB.Model(&model.Activity{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":       model.ActivityPublished,
		"published_at": &now,
	}).Error
}

func (r *ActivityRepository) CreateQuestion(q *model.ActivityQuestion) error {
	return r.DB.Create(q).Error
}

func (r *ActivityRepository) UpdateQuestion(q *model.ActivityQuestion) error {
	return r.DB.Save(q).Error
}

func (r *ActivityRepository) DeleteQuestion(id uint) error {
	return r.DB.Delete(&model.ActivityQuestion{}, id).Error
}

func (r *ActivityRepository) FindQuestionByID(id uint) (*model.ActivityQuestion, error) {
	var q model.ActivityQuestion
	err := r.DB.First(&q, id).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}
