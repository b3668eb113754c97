package model

import (
	"time"
)

// swagger:model SubscriptionPlan
type SubscriptionPlan struct {
	BaseModel
	Code          string `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Name          string `gorm:"size:100;not null" json:"name"`
	PriceMonthly  int64  `gorm:"not null" json:"priceMonthly"` // cents
	StripePriceID string `gorm:"size:64" json:"-"`
	Enabled       bool   `gorm:"default:true" json:"enabled"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}

type SubscriptionStatus string

const (
	SubscriptionIncomplete SubscriptionStatus = "incomplete"
	SubscriptionActive     SubscriptionStatus = "active"
	SubscriptionPastDue    SubscriptionStatus = "past_due"
	SubscriptionCanceled   SubscriptionStatus = "canceled"
)

// swagger:model Subscription
type Subscription struct {
	BaseModel
	UserID               uint               `gorm:"index;type:bigint unsigned" json:"userId"`
	PlanID               uint               `gorm:"index;type:bigint unsigned" json:"planId"`
	Plan                 *SubscriptionPlan  `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
	StripeSubscriptionID string             `gorm:"size:64;uniqueIndex" json:"-"`
	Status               SubscriptionStatus `gorm:"size:20;default:'incomplete';index" json:"status"`
	CurrentPeriodEnd     *time.Time         `json:"currentPeriodEnd,omitempty"`
	CanceledAt           *time.Time         `json:"canceledAt,omitempty"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
