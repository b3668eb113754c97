package service

import (
	"testing"

	"medipublish_backend/internal/model"
	"medipublish_backend/internal/repository"
	"medipublish_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newActivityService(db *gorm.DB) *ActivityService {
	activityRepo := repository.NewActivityRepository(db)
	return NewActivityService(
		activityRepo,
		repository.NewAttemptRepository(db),
		NewCatalogService(activityRepo, nil),
		nil,
	)
}

func TestCreateActivityDefaults(t *testing.T) {
	db := newTestDB(t)
	creator := seedUser(t, db, "author", model.LicenseVerified)
	svc := newActivityService(db)

	activity := &model.Activity{
		Title:        "New Draft",
		Specialty:    "Internal Medicine",
		CreditHours:  1.0,
		PassingScore: 150, // out of range, falls back to 70
		Status:       model.ActivityPublished,
	}
	require.NoError(t, svc.CreateActivity(creator.ID, activity))

	assert.Equal(t, creator.ID, activity.CreatorID)
	assert.Equal(t, model.ActivityReview, activity.Status, "new activities always start in review")
	assert.Equal(t, 70, activity.PassingScore)
	assert.Nil(t, activity.PublishedAt)
}

func TestPublishActivityRejectsEmptyBank(t *testing.T) {
	db := newTestDB(t)
	svc := newActivityService(db)

	activity := seedActivity(t, db, "No Questions", 1.0, 70, 0)
	require.NoError(t, db.Model(activity).Update("status", model.ActivityReview).Error)

	_, err := svc.PublishActivity(activity.ID)
	assert.ErrorIs(t, err, util.ErrNoQuestionBank)
}

func TestPublishActivityMakesItLive(t *testing.T) {
	db := newTestDB(t)
	svc := newActivityService(db)

	activity := seedActivity(t, db, "Ready", 1.0, 70, 5)
	require.NoError(t, db.Model(activity).Updates(map[string]interface{}{
		"status":       model.ActivityReview,
		"published_at": nil,
	}).Error)

	published, err := svc.PublishActivity(activity.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ActivityPublished, published.Status)
	assert.NotNil(t, published.PublishedAt)
}

func TestGetActivityHidesUnpublished(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "learner", model.LicenseVerified)
	svc := newActivityService(db)

	activity := seedActivity(t, db, "Hidden", 1.0, 70, 5)
	require.NoError(t, db.Model(activity).Update("status", model.ActivityReview).Error)

	_, err := svc.GetActivity(user.ID, activity.ID)
	assert.ErrorIs(t, err, util.ErrActivityNotLive)
}

func TestGetActivityForAuthorOwnership(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner", model.LicenseVerified)
	other := seedUser(t, db, "other", model.LicenseVerified)
	svc := newActivityService(db)

	activity := seedActivity(t, db, "Mine", 1.0, 70, 5)
	require.NoError(t, db.Model(activity).Update("creator_id", owner.ID).Error)

	got, err := svc.GetActivityForAuthor(owner.ID, false, activity.ID)
	require.NoError(t, err)
	assert.Equal(t, activity.ID, got.ID)

	_, err = svc.GetActivityForAuthor(other.ID, false, activity.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	// Admins bypass ownership.
	_, err = svc.GetActivityForAuthor(other.ID, true, activity.ID)
	assert.NoError(t, err)
}

func TestGetAttemptStatus(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "tracker", model.LicenseVerified)
	activity := seedActivity(t, db, "Tracked", 1.0, 70, 5)
	svc := newActivityService(db)

	status, err := svc.GetAttemptStatus(user.ID, activity.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, status.AttemptsUsed)
	assert.Equal(t, 3, status.AttemptsAllowed)
	assert.False(t, status.Exhausted)

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&model.ActivityAttempt{
			UserID:     user.ID,
			ActivityID: activity.ID,
			Score:      40,
		}).Error)
	}

	status, err = svc.GetAttemptStatus(user.ID, activity.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, status.AttemptsUsed)
	assert.True(t, status.Exhausted)
	assert.Len(t, status.Attempts, 3)
}
