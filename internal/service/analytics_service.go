package service

import (
	"context"
	"fmt"
	"medipublish_backend/internal/model"
	"medipublish_backend/internal/repository"
	"medipublish_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// AnalyticsService records append-only tracking events and serves the
// aggregate views. It is constructed and injected like every other
// service; there is no package-level tracker instance.
type AnalyticsService struct {
	Repo             *repository.AnalyticsRepository
	SubscriptionRepo *repository.SubscriptionRepository
	Redis            *redis.Client
}

func NewAnalyticsService(repo *repository.AnalyticsRepository, subRepo *repository.SubscriptionRepository, rdb *redis.Client) *AnalyticsService {
	return &AnalyticsService{Repo: repo, SubscriptionRepo: subRepo, Redis: rdb}
}

// Track appends one event. Failures are logged and swallowed: analytics
// must never break the request that emitted the event.
func (s *AnalyticsService) Track(userID uint, eventType model.EventType, contentID *uint, metadata string) {
	event := &model.TrackingEvent{
		UserID:    userID,
		Type:      eventType,
		ContentID: contentID,
		Metadata:  metadata,
	}
	if err := s.Repo.CreateEvent(event); err != nil {
		logger.Log.Error("failed to record tracking event",
			zap.String("type", string(eventType)),
			zap.Error(err),
		)
		return
	}

	if s.Redis != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		key := fmt.Sprintf("analytics:daily:%s:%s", time.Now().Format("2006-01-02"), eventType)
		s.Redis.Incr(ctx, key)
		s.Redis.Expire(ctx, key, 48*time.Hour)
	}
}

// Overview is the admin dashboard aggregate for one trailing window.
type Overview struct {
	WindowDays        int                        `json:"windowDays"`
	EventCounts       []repository.EventCountRow `json:"eventCounts"`
	TopContent        []repository.TopContentRow `json:"topContent"`
	ActiveSubscribers int64                      `json:"activeSubscribers"`
	CompletionsToday  int64                      `json:"completionsToday"`
}

func (s *AnalyticsService) GetOverview(windowDays int) (*Overview, error) {
	if windowDays <= 0 {
		windowDays = 30
	}
	since := time.Now().AddDate(0, 0, -windowDays)

	counts, err := s.Repo.CountEventsByType(since)
	if err != nil {
		return nil, err
	}

	top, err := s.Repo.TopContent(since, 10)
	if err != nil {
		return nil, err
	}

	subscribers, err := s.SubscriptionRepo.CountActive()
	if err != nil {
		return nil, err
	}

	midnight := time.Now().Truncate(24 * time.Hour)
	completionsToday, err := s.Repo.CountEvents(model.EventCMEComplete, midnight)
	if err != nil {
		return nil, err
	}

	return &Overview{
		WindowDays:        windowDays,
		EventCounts:       counts,
		TopContent:        top,
		ActiveSubscribers: subscribers,
		CompletionsToday:  completionsToday,
	}, nil
}
