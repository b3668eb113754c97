package repository

import (
	"errors"
	"medipublish_backend/internal/model"
	"medipublish_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	DB *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{DB: db}
}

func (r *SubscriptionRepository) ListPlans() ([]model.SubscriptionPlan, error) {
	var plans []model.SubscriptionPlan
	err := r.DB.Where("enabled = ?", true).Order("price_monthly asc").Find(&plans).Error
	return plans, err
}

func (r *SubscriptionRepository) FindPlanByCode(code string) (*model.SubscriptionPlan, error) {
	var plan model.SubscriptionPlan
	err := r.DB.Where("code = ?", code).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *SubscriptionRepository) Create(s *model.Subscription) error {
	return r.DB.Create(s).Error
}

func (r *SubscriptionRepository) Update(s *model.Subscription) error {
	return r.DB.Save(s).Error
}

func (r *SubscriptionRepository) FindActiveByUser(userID uint) (*model.Subscription, error) {
	var s model.Subscription
	err := r.DB.Preload("Plan").
		Where("user_id = ? AND status = ?", userID, model.SubscriptionActive).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubscriptionRepository) FindByStripeID(stripeSubscriptionID string) (*model.Subscription, error) {
	var s model.Subscription
	err := r.DB.Where("stripe_subscription_id = ?", stripeSubscriptionID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubscriptionRepository) SetStatus(id uint, status model.SubscriptionStatus, periodEnd *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if periodEnd != nil {
		updates["current_period_end"] = periodEnd
	}
	if status == model.SubscriptionCanceled {
		now := time.Now()
		updates["canceled_at"] = &now
	}
	return r.DB.Model(&model.Subscription{}).Where("id = ?", id).Updates(updates).Error
}

func (r *SubscriptionRepository) CountActive() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Subscription{}).Where("status = ?", model.SubscriptionActive).Count(&count).Error
	return count, err
}
