package repository

import (
	"medipublish_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type AnalyticsRepository struct {
	DB *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{DB: db}
}

func (r *AnalyticsRepository) CreateEvent(e *model.TrackingEvent) error {
	return r.DB.Create(e).Error
}

func (r *AnalyticsRepository) CountEvents(eventType model.EventType, since time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.TrackingEvent{}).
		Where("type = ? AND created_at >= ?", eventType, since).
		Count(&count).Error
	return count, err
}

// EventCountRow is one bucket of the per-type aggregate.
type EventCountRow struct {
	Type  model.EventType `json:"type"`
	Count int64           `json:"count"`
}

func (r *AnalyticsRepository) CountEventsByType(since time.Time) ([]EventCountRow, error) {
	var rows []EventCountRow
	err := r.DB.Model(&model.TrackingEvent{}).
		Select("type, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("type").
		Scan(&rows).Error
	return rows, err
}

// TopContentRow is one entry of the most-viewed listing.
type TopContentRow struct {
	ContentID uint  `json:"contentId"`
	Views     int64 `json:"views"`
}

func (r *AnalyticsRepository) TopContent(since time.Time, limit int) ([]TopContentRow, error) {
	var rows []TopContentRow
	err := r.DB.Model(&model.TrackingEvent{}).
		Select("content_id, COUNT(*) as views").
		Where("type = ? AND created_at >= ? AND content_id IS NOT NULL", model.EventContentView, since).
		Group("content_id").
		Order("views desc").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
