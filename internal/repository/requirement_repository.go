package repository

import (
	"errors"
	"medipublish_backend/internal/model"
	"medipublish_backend/internal/util"

	"gorm.io/gorm"
)

type RequirementRepository struct {
	DB *gorm.DB
}

func NewRequirementRepository(db *gorm.DB) *RequirementRepository {
	return &RequirementRepository{DB: db}
}

func (r *RequirementRepository) FindBySpecialty(specialty string) (*model.SpecialtyRequirement, error) {
	var req model.SpecialtyRequirement
	err := r.DB.Preload("CategoryMinimums").
		Where("LOWER(specialty) = LOWER(?)", specialty).
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUnknownSpecialty
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RequirementRepository) List() ([]model.SpecialtyRequirement, error) {
	var reqs []model.SpecialtyRequirement
	err := r.DB.Preload("CategoryMinimums").Order("specialty asc").Find(&reqs).Error
	return reqs, err
}

func (r *RequirementRepository) Create(req *model.SpecialtyRequirement) error {
	return r.DB.Create(req).Error
}

func (r *RequirementRepository) Update(req *model.SpecialtyRequirement) error {
	return r.DB.Save(req).Error
}
