package service

import (
	"encoding/json"
	"errors"
	"time"

	"medipublish_backend/internal/config"
	"medipublish_backend/internal/model"
	"medipublish_backend/internal/repository"
	"medipublish_backend/internal/util"
	"medipublish_backend/pkg/logger"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/customer"
	"github.com/stripe/stripe-go/v76/subscription"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SubscriptionService struct {
	SubscriptionRepo *repository.SubscriptionRepository
	UserRepo         *repository.UserRepository
	Analytics        *AnalyticsService
	Cfg              *config.Config
}

func NewSubscriptionService(subscriptionRepo *repository.SubscriptionRepository, userRepo *repository.UserRepository, analytics *AnalyticsService, cfg *config.Config) *SubscriptionService {
	stripe.Key = cfg.Stripe.SecretKey
	return &SubscriptionService{
		SubscriptionRepo: subscriptionRepo,
		UserRepo:         userRepo,
		Analytics:        analytics,
		Cfg:              cfg,
	}
}

func (s *SubscriptionService) ListPlans() ([]model.SubscriptionPlan, error) {
	return s.SubscriptionRepo.ListPlans()
}

func (s *SubscriptionService) GetCurrent(userID uint) (*model.Subscription, error) {
	sub, err := s.SubscriptionRepo.FindActiveByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubscriptionMissing
		}
		return nil, err
	}
	return sub, nil
}

// Subscribe opens a Stripe subscription for the user on the chosen plan.
// The local record starts incomplete; the webhook flips it once the first
// invoice settles.
func (s *SubscriptionService) Subscribe(userID uint, planCode string) (*model.Subscription, error) {
	if _, err := s.SubscriptionRepo.FindActiveByUser(userID); err == nil {
		return nil, util.ErrAlreadySubscribed
	}

	plan, err := s.SubscriptionRepo.FindPlanByCode(planCode)
	if err != nil {
		return nil, err
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	customerID := user.StripeID
	if customerID == "" {
		cust, err := customer.New(&stripe.CustomerParams{
			Email: stripe.String(user.Email),
			Name:  stripe.String(user.Name),
		})
		if err != nil {
			return nil, err
		}
		customerID = cust.ID
		if err := s.UserRepo.SetStripeID(userID, customerID); err != nil {
			return nil, err
		}
	}

	stripeSub, err := subscription.New(&stripe.SubscriptionParams{
		Customer: stripe.String(customerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(plan.StripePriceID)},
		},
		PaymentBehavior: stripe.String("default_incomplete"),
	})
	if err != nil {
		return nil, err
	}

	sub := &model.Subscription{
		UserID:               userID,
		PlanID:               plan.ID,
		StripeSubscriptionID: stripeSub.ID,
		Status:               model.SubscriptionIncomplete,
	}
	if err := s.SubscriptionRepo.Create(sub); err != nil {
		return nil, err
	}

	logger.Log.Info("subscription opened",
		zap.Uint("user_id", userID),
		zap.String("plan", planCode))

	return sub, nil
}

// Cancel ends the user's subscription both at Stripe and locally.
func (s *SubscriptionService) Cancel(userID uint) error {
	sub, err := s.GetCurrent(userID)
	if err != nil {
		return err
	}

	if sub.StripeSubscriptionID != "" {
		if _, err := subscription.Cancel(sub.StripeSubscriptionID, nil); err != nil {
			return err
		}
	}

	return s.SubscriptionRepo.SetStatus(sub.ID, model.SubscriptionCanceled, nil)
}

// HandleWebhook verifies and applies a Stripe event. Unrecognized event
// types are acknowledged and ignored.
func (s *SubscriptionService) HandleWebhook(payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, s.Cfg.Stripe.WebhookSecret)
	if err != nil {
		return err
	}

	switch event.Type {
	case "customer.subscription.updated", "customer.subscription.deleted":
		var stripeSub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &stripeSub); err != nil {
			return err
		}
		return s.applySubscriptionState(&stripeSub)
	case "invoice.paid", "invoice.payment_failed":
		var invoice stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			return err
		}
		if invoice.Subscription == nil {
			return nil
		}
		stripeSub, err := subscription.Get(invoice.Subscription.ID, nil)
		if err != nil {
			return err
		}
		return s.applySubscriptionState(stripeSub)
	default:
		return nil
	}
}

func (s *SubscriptionService) applySubscriptionState(stripeSub *stripe.Subscription) error {
	sub, err := s.SubscriptionRepo.FindByStripeID(stripeSub.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Log.Warn("webhook for unknown subscription", zap.String("stripe_id", stripeSub.ID))
			return nil
		}
		return err
	}

	status := mapStripeStatus(stripeSub.Status)
	periodEnd := time.Unix(stripeSub.CurrentPeriodEnd, 0)

	wasActive := sub.Status == model.SubscriptionActive
	if err := s.SubscriptionRepo.SetStatus(sub.ID, status, &periodEnd); err != nil {
		return err
	}

	if status == model.SubscriptionActive && !wasActive {
		s.Analytics.Track(sub.UserID, model.EventSubscription, nil, "activated")
	}

	logger.Log.Info("subscription state applied",
		zap.Uint("subscription_id", sub.ID),
		zap.String("status", string(status)))

	return nil
}

func mapStripeStatus(status stripe.SubscriptionStatus) model.SubscriptionStatus {
	switch status {
	case stripe.SubscriptionStatusActive, stripe.SubscriptionStatusTrialing:
		return model.SubscriptionActive
	case stripe.SubscriptionStatusPastDue:
		return model.SubscriptionPastDue
	case stripe.SubscriptionStatusCanceled, stripe.SubscriptionStatusUnpaid, stripe.SubscriptionStatusIncompleteExpired:
		return model.SubscriptionCanceled
	default:
		return model.SubscriptionIncomplete
	}
}
