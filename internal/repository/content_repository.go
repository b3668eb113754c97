package repository

import (
	"errors"
	"medipublish_backend/internal/model"
	"medipublish_backend/internal/util"

	"gorm.io/gorm"
)

type ContentRepository struct {
	DB *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

func (r *ContentRepository) Create(c *model.Content) error {
	return r.DB.Create(c).Error
}

func (r *ContentRepository) FindByID(id uint) (*model.Content, error) {
	var c model.Content
	err := r.DB.Preload("Creator").First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrContentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContentRepository) ListPublished(contentType, specialty string, page, limit int) ([]model.Content, int64, error) {
	var cs []model.Content
	var total int64

	query := r.DB.Model(&model.Content{}).Where("status = ?", model.ContentLive)
	if contentType != "" {
		query = query.Where("type = ?", contentType)
	}
	if specialty != "" {
		query = query.Where("LOWER(specialty) LIKE LOWER(?)", "%"+specialty+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("published_at desc, id desc").Offset(offset).Limit(limit).Find(&cs).Error
	return cs, total, err
}

func (r *ContentRepository) ListByCreator(creatorID uint, page, limit int) ([]model.Content, int64, error) {
	var cs []model.Content
	var total int64

	query := r.DB.Model(&model.Content{}).Where("creator_id = ?", creatorID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&cs).Error
	return cs, total, err
}

func (r *ContentRepository) Update(c *model.Content) error {
	return r.DB.Save(c).Error
}

func (r *ContentRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Content{}, id).Error
}

func (r *ContentRepository) IncrementViewCount(id uint) error {
	return r.DB.Model(&model.Content{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}
