package model

import (
	"time"

	"gorm.io/gorm"
)

// CompletionRecord is the credential-bearing record of a passed activity.
// Append-only: rows are never updated or deleted (regulatory record).
//
// Sequence is the retake ordinal. Under the default policy every record is
// written at sequence 0, so the unique index on (user_id, activity_id,
// sequence) enforces at-most-one credited completion per learner per
// activity even under concurrent submissions. When retake credit is
// enabled, later passes append at sequence 1, 2, ... without weakening
// the constraint.
// swagger:model CompletionRecord
type CompletionRecord struct {
	BaseModel
	UserID        uint      `gorm:"uniqueIndex:idx_user_activity_seq;type:bigint unsigned" json:"userId"`
	ActivityID    uint      `gorm:"uniqueIndex:idx_user_activity_seq;type:bigint unsigned" json:"activityId"`
	Sequence      int       `gorm:"uniqueIndex:idx_user_activity_seq;default:0" json:"-"`
	CertificateID string    `gorm:"size:36;uniqueIndex" json:"certificateId"`
	Activity      *Activity `gorm:"foreignKey:ActivityID" json:"activity,omitempty"`
	CompletedAt   time.Time `json:"completedAt"`
	Score         int       `json:"score"` // 0-100
	CreditsEarned float64   `gorm:"type:decimal(4,2)" json:"creditsEarned"`
	TimeSpent     int       `json:"timeSpent"` // seconds
}

func (CompletionRecord) TableName() string {
	return "cme_completions"
}

// Each credited completion carries a citable certificate id.
func (r *CompletionRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if r.CertificateID == "" {
		r.CertificateID = GenerateUUID()
	}
	return
}

// ActivityAttempt logs every scored submission, passing or not. The attempt
// count against AttemptsAllowed is derived from these rows.
// swagger:model ActivityAttempt
type ActivityAttempt struct {
	BaseModel
	UserID     uint `gorm:"index:idx_attempt_user_activity;type:bigint unsigned" json:"userId"`
	ActivityID uint `gorm:"index:idx_attempt_user_activity;type:bigint unsigned" json:"activityId"`
	Score      int  `json:"score"`
	Passed     bool `json:"passed"`
	TimeSpent  int  `json:"timeSpent"` // seconds
}

func (ActivityAttempt) TableName() string {
	return "cme_attempts"
}
