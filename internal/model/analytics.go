package model

type EventType string

const (
	EventContentView  EventType = "content_view"
	EventCMEStart     EventType = "cme_start"
	EventCMEComplete  EventType = "cme_complete"
	EventSubscription EventType = "subscription"
	EventPurchase     EventType = "purchase"
)

// TrackingEvent is an append-only analytics event. Aggregates are computed
// on read; nothing is updated in place.
// swagger:model TrackingEvent
type TrackingEvent struct {
	BaseModel
	UserID    uint      `gorm:"index;type:bigint unsigned" json:"userId"`
	Type      EventType `gorm:"size:30;index;not null" json:"type"`
	ContentID *uint     `gorm:"index;type:bigint unsigned" json:"contentId,omitempty"`
	Metadata  string    `gorm:"size:512" json:"metadata,omitempty"`
}

func (TrackingEvent) TableName() string {
	return "tracking_events"
}
