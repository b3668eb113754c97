package model

import (
	"encoding/json"
	"strings"
	"time"
)

type ActivityStatus string

const (
	ActivityReview    ActivityStatus = "review"
	ActivityPublished ActivityStatus = "published"
	ActivityRetired   ActivityStatus = "retired"
)

type CreditType string

const (
	CreditAMA    CreditType = "AMA_PRA_1"
	CreditAAFP   CreditType = "AAFP"
	CreditAANP   CreditType = "AANP"
	CreditEthics CreditType = "ethics"
)

// Activity is a publishable CME unit with an attached question bank.
// swagger:model Activity
type Activity struct {
	BaseModel
	Title           string             `gorm:"size:255;not null" json:"title"`
	Description     string             `gorm:"type:text" json:"description"`
	Specialty       string             `gorm:"size:100;index" json:"specialty"`
	TargetAudience  string             `gorm:"size:255" json:"targetAudience"` // comma-separated specialty tags
	CreditHours     float64            `gorm:"type:decimal(4,2);not null" json:"creditHours"`
	CreditType      CreditType         `gorm:"size:20;default:'AMA_PRA_1'" json:"creditType"`
	PassingScore    int                `gorm:"default:70" json:"passingScore"` // percentage, 0-100
	AttemptsAllowed int                `gorm:"default:3" json:"attemptsAllowed"`
	ExpirationDate  *time.Time         `json:"expirationDate,omitempty"`
	Status          ActivityStatus     `gorm:"size:20;default:'review';index" json:"status"`
	PublishedAt     *time.Time         `json:"publishedAt,omitempty"`
	CreatorID       uint               `gorm:"index;type:bigint unsigned" json:"creatorId"`
	ContentID       *uint              `gorm:"index;type:bigint unsigned" json:"contentId,omitempty"`
	Questions       []ActivityQuestion `gorm:"foreignKey:ActivityID" json:"questions,omitempty"`
}

func (Activity) TableName() string {
	return "cme_activities"
}

// TimeLimit returns the allotted minutes for the post-test, derived from
// credit hours at the customary 60 minutes per credit.
func (a *Activity) TimeLimit() int {
	return int(a.CreditHours * 60)
}

// MatchesSpecialty does a case-insensitive match against the activity's
// primary specialty and its audience tags.
func (a *Activity) MatchesSpecialty(specialty string) bool {
	if specialty == "" {
		return true
	}
	needle := strings.ToLower(specialty)
	if strings.Contains(strings.ToLower(a.Specialty), needle) {
		return true
	}
	for _, tag := range strings.Split(a.TargetAudience, ",") {
		if strings.ToLower(strings.TrimSpace(tag)) == needle {
			return true
		}
	}
	return false
}

// ActivityQuestion is one multiple-choice question in an activity's bank.
// swagger:model ActivityQuestion
type ActivityQuestion struct {
	BaseModel
	ActivityID    uint            `gorm:"index;type:bigint unsigned" json:"activityId"`
	Content       string          `gorm:"type:text;not null" json:"content"`
	Options       json.RawMessage `gorm:"type:json" json:"options"` // JSON: []string
	CorrectAnswer int             `gorm:"not null" json:"-"`        // index into Options, hidden from learners
	Explanation   string          `gorm:"type:text" json:"explanation,omitempty"`
	Order         int             `gorm:"default:0" json:"order"`
}

func (ActivityQuestion) TableName() string {
	return "cme_activity_questions"
}
