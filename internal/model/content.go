package model

import (
	"time"
)

type ContentType string

const (
	ContentArticle ContentType = "article"
	ContentVideo   ContentType = "video"
	ContentCME     ContentType = "cme"
)

type AccessType string

const (
	AccessFree     AccessType = "free"
	AccessPremium  AccessType = "premium"
	AccessPurchase AccessType = "purchase"
	AccessCME      AccessType = "cme"
)

type ContentStatus string

const (
	ContentDraft    ContentStatus = "draft"
	ContentInReview ContentStatus = "review"
	ContentLive     ContentStatus = "published"
)

// swagger:model Content
type Content struct {
	BaseModel
	Title       string        `gorm:"size:255;not null" json:"title"`
	Body        string        `gorm:"type:longtext" json:"body,omitempty"`
	Type        ContentType   `gorm:"size:20;not null;index" json:"type"`
	AccessType  AccessType    `gorm:"size:20;default:'free';index" json:"accessType"`
	Price       int64         `gorm:"default:0" json:"price"` // cents, purchase access only
	Specialty   string        `gorm:"size:100;index" json:"specialty"`
	Status      ContentStatus `gorm:"size:20;default:'draft';index" json:"status"`
	PublishedAt *time.Time    `json:"publishedAt,omitempty"`
	CreatorID   uint          `gorm:"index;type:bigint unsigned" json:"creatorId"`
	Creator     *User         `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	VideoURL    string        `gorm:"size:512" json:"videoUrl,omitempty"`
	Thumbnail   string        `gorm:"size:512" json:"thumbnail,omitempty"`
	Duration    int           `gorm:"default:0" json:"duration"` // seconds, video only
	ViewCount   int64         `gorm:"default:0" json:"viewCount"`
}

func (Content) TableName() string {
	return "contents"
}
