package repository

import (
	"errors"
	"medipublish_backend/internal/model"
	"strings"

	"gorm.io/gorm"
)

type CompletionRepository struct {
	DB *gorm.DB
}

func NewCompletionRepository(db *gorm.DB) *CompletionRepository {
	return &CompletionRepository{DB: db}
}

// CreateIfAbsent inserts the completion at sequence 0 unless one already
// exists for the (user, activity) pair. The check and insert run in one
// transaction; a unique-index violation from a concurrent insert is
// resolved by returning the row that won. The bool reports whether rec was
// actually persisted.
func (r *CompletionRepository) CreateIfAbsent(rec *model.CompletionRecord) (*model.CompletionRecord, bool, error) {
	var result *model.CompletionRecord
	created := false
	rec.Sequence = 0

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.CompletionRecord
		err := tx.Where("user_id = ? AND activity_id = ? AND sequence = 0", rec.UserID, rec.ActivityID).First(&existing).Error
		if err == nil {
			result = &existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(rec).Error; err != nil {
			if !isDuplicateErr(err) {
				return err
			}
			// Lost the race: another transaction inserted first.
			if err := tx.Where("user_id = ? AND activity_id = ? AND sequence = 0", rec.UserID, rec.ActivityID).First(&existing).Error; err != nil {
				return err
			}
			result = &existing
			return nil
		}
		result = rec
		created = true
		return nil
	})

	if err != nil {
		return nil, false, err
	}
	return result, created, nil
}

// Append writes an additional completion at the next free retake ordinal;
// used when retake credit is allowed. Concurrent appends retry on index
// collisions instead of failing.
func (r *CompletionRepository) Append(rec *model.CompletionRecord) error {
	for attempt := 0; attempt < 5; attempt++ {
		err := r.DB.Transaction(func(tx *gorm.DB) error {
			var maxSeq struct{ Seq int }
			err := tx.Model(&model.CompletionRecord{}).
				Select("COALESCE(MAX(sequence), -1) as seq").
				Where("user_id = ? AND activity_id = ?", rec.UserID, rec.ActivityID).
				Scan(&maxSeq).Error
			if err != nil {
				return err
			}
			rec.Sequence = maxSeq.Seq + 1
			return tx.Create(rec).Error
		})
		if err == nil || !isDuplicateErr(err) {
			return err
		}
	}
	return gorm.ErrDuplicatedKey
}

func (r *CompletionRepository) FindByUserAndActivity(userID, activityID uint) (*model.CompletionRecord, error) {
	var rec model.CompletionRecord
	err := r.DB.Where("user_id = ? AND activity_id = ?", userID, activityID).First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListByUser returns a user's completions oldest first, with the activity
// preloaded for specialty and credit-type grouping.
func (r *CompletionRepository) ListByUser(userID uint) ([]model.CompletionRecord, error) {
	var recs []model.CompletionRecord
	err := r.DB.Preload("Activity").
		Where("user_id = ?", userID).
		Order("completed_at asc, id asc").
		Find(&recs).Error
	return recs, err
}

func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
