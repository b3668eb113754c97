package service

import (
	"context"
	"encoding/json"
	"fmt"
	"medipublish_backend/internal/model"
	"medipublish_backend/internal/repository"
	"time"

	"github.com/go-redis/redis/v8"
)

const catalogCacheTTL = 5 * time.Minute

// CatalogService lists publishable CME activities. Listings are read-mostly
// and cached briefly in redis keyed by the full filter tuple.
type CatalogService struct {
	ActivityRepo *repository.ActivityRepository
	Redis        *redis.Client
}

func NewCatalogService(activityRepo *repository.ActivityRepository, rdb *redis.Client) *CatalogService {
	return &CatalogService{ActivityRepo: activityRepo, Redis: rdb}
}

type catalogPage struct {
	Activities []model.Activity `json:"activities"`
	Total      int64            `json:"total"`
}

// ListActivities returns published activities matching the optional
// specialty and credit-type filters, in stable creation order.
func (s *CatalogService) ListActivities(ctx context.Context, specialty, creditType string, page, limit int) ([]model.Activity, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	cacheKey := fmt.Sprintf("cme:catalog:%s:%s:%d:%d", specialty, creditType, page, limit)
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var p catalogPage
			if json.Unmarshal([]byte(cached), &p) == nil {
				return p.Activities, p.Total, nil
			}
		}
	}

	activities, total, err := s.ActivityRepo.ListPublished(specialty, creditType, page, limit)
	if err != nil {
		return nil, 0, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(catalogPage{Activities: activities, Total: total}); err == nil {
			s.Redis.Set(ctx, cacheKey, payload, catalogCacheTTL)
		}
	}

	return activities, total, nil
}

// InvalidateCache drops the catalog cache, called after publish/update.
func (s *CatalogService) InvalidateCache(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	iter := s.Redis.Scan(ctx, 0, "cme:catalog:*", 100).Iterator()
	for iter.Next(ctx) {
		s.Redis.Del(ctx, iter.Val())
	}
}
