package service

import (
	"sync"
	"testing"
	"time"

	"medipublish_backend/internal/config"
	"medipublish_backend/internal/model"
	"medipublish_backend/internal/repository"
	"medipublish_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCompletionService(db *gorm.DB, allowRetakeCredit bool) *CompletionService {
	cfg := &config.Config{}
	cfg.CME.AllowRetakeCredit = allowRetakeCredit
	return NewCompletionService(
		repository.NewActivityRepository(db),
		repository.NewCompletionRepository(db),
		repository.NewAttemptRepository(db),
		NewGradingService(),
		nil,
		cfg,
	)
}

func TestSubmitAnswersPassRecordsCompletion(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "pass", model.LicenseVerified)
	activity := seedActivity(t, db, "Sepsis Update", 1.5, 70, 10)
	svc := newCompletionService(db, false)

	result, err := svc.SubmitAnswers(user.ID, activity.ID, correctAnswers(10), 900)
	require.NoError(t, err)
	assert.True(t, result.Grading.Passed)
	assert.Equal(t, 100, result.Grading.Score)
	assert.False(t, result.AlreadyCompleted)
	assert.Equal(t, 1, result.AttemptsUsed)
	assert.Equal(t, 3, result.AttemptsAllowed)

	require.NotNil(t, result.Completion)
	assert.Equal(t, 1.5, result.Completion.CreditsEarned, "credits come from the activity's credit hours")
	assert.Equal(t, 0, result.Completion.Sequence)
	assert.NotEmpty(t, result.Completion.CertificateID)
}

func TestSubmitAnswersFailIsNotAnError(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "fail", model.LicenseVerified)
	activity := seedActivity(t, db, "Cardio Review", 1.0, 70, 10)
	svc := newCompletionService(db, false)

	answers := correctAnswers(10)
	for i := 5; i < 10; i++ {
		answers[i] = (answers[i] + 1) % 4
	}

	result, err := svc.SubmitAnswers(user.ID, activity.ID, answers, 600)
	require.NoError(t, err)
	assert.False(t, result.Grading.Passed)
	assert.Nil(t, result.Completion)

	var count int64
	require.NoError(t, db.Model(&model.CompletionRecord{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	// The failing attempt still counts against the cap.
	var attempts int64
	require.NoError(t, db.Model(&model.ActivityAttempt{}).Count(&attempts).Error)
	assert.EqualValues(t, 1, attempts)
}

func TestSubmitAnswersDuplicatePassIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "repeat", model.LicenseVerified)
	activity := seedActivity(t, db, "Ethics Module", 2.0, 70, 10)
	svc := newCompletionService(db, false)

	first, err := svc.SubmitAnswers(user.ID, activity.ID, correctAnswers(10), 900)
	require.NoError(t, err)
	require.False(t, first.AlreadyCompleted)

	second, err := svc.SubmitAnswers(user.ID, activity.ID, correctAnswers(10), 400)
	require.NoError(t, err)
	assert.True(t, second.AlreadyCompleted)
	assert.Equal(t, first.Completion.ID, second.Completion.ID)

	var count int64
	require.NoError(t, db.Model(&model.CompletionRecord{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count, "retake must not mint a second credit")
}

func TestSubmitAnswersRetakeCreditAppendsSequence(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "retaker", model.LicenseVerified)
	activity := seedActivity(t, db, "Annual Refresher", 1.0, 70, 10)
	svc := newCompletionService(db, true)

	first, err := svc.SubmitAnswers(user.ID, activity.ID, correctAnswers(10), 900)
	require.NoError(t, err)
	assert.Equal(t, 0, first.Completion.Sequence)
	assert.False(t, first.AlreadyCompleted)

	second, err := svc.SubmitAnswers(user.ID, activity.ID, correctAnswers(10), 800)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Completion.Sequence)
	assert.False(t, second.AlreadyCompleted)

	var count int64
	require.NoError(t, db.Model(&model.CompletionRecord{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestSubmitAnswersAttemptCap(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "capped", model.LicenseVerified)
	activity := seedActivity(t, db, "Hard Exam", 1.0, 70, 10)
	svc := newCompletionService(db, false)

	wrong := make([]int, 10)
	for i := range wrong {
		wrong[i] = (i + 1) % 4
	}

	for i := 0; i < 3; i++ {
		result, err := svc.SubmitAnswers(user.ID, activity.ID, wrong, 300)
		require.NoError(t, err)
		assert.Equal(t, i+1, result.AttemptsUsed)
	}

	_, err := svc.SubmitAnswers(user.ID, activity.ID, correctAnswers(10), 300)
	assert.ErrorIs(t, err, util.ErrAttemptsExhausted)
}

func TestSubmitAnswersUnlimitedAttempts(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "persistent", model.LicenseVerified)
	activity := seedActivity(t, db, "Open Practice", 1.0, 70, 10)
	require.NoError(t, db.Model(activity).Update("attempts_allowed", 0).Error)
	svc := newCompletionService(db, false)

	wrong := make([]int, 10)
	for i := range wrong {
		wrong[i] = (i + 1) % 4
	}
	for i := 0; i < 5; i++ {
		_, err := svc.SubmitAnswers(user.ID, activity.ID, wrong, 100)
		require.NoError(t, err)
	}
}

func TestSubmitAnswersRejectsUnpublishedActivity(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "early", model.LicenseVerified)
	activity := seedActivity(t, db, "Unreleased", 1.0, 70, 10)
	require.NoError(t, db.Model(activity).Update("status", model.ActivityReview).Error)
	svc := newCompletionService(db, false)

	_, err := svc.SubmitAnswers(user.ID, activity.ID, correctAnswers(10), 300)
	assert.ErrorIs(t, err, util.ErrActivityNotLive)
}

func TestSubmitAnswersRejectsExpiredActivity(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "late", model.LicenseVerified)
	activity := seedActivity(t, db, "Stale Content", 1.0, 70, 10)
	past := time.Now().Add(-24 * time.Hour)
	require.NoError(t, db.Model(activity).Update("expiration_date", past).Error)
	svc := newCompletionService(db, false)

	_, err := svc.SubmitAnswers(user.ID, activity.ID, correctAnswers(10), 300)
	assert.ErrorIs(t, err, util.ErrActivityExpired)
}

func TestSubmitAnswersMissingActivity(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "lost", model.LicenseVerified)
	svc := newCompletionService(db, false)

	_, err := svc.SubmitAnswers(user.ID, 9999, []int{0}, 100)
	assert.ErrorIs(t, err, util.ErrActivityNotFound)
}

func TestRecordCompletionConcurrentDuplicates(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "racer", model.LicenseVerified)
	activity := seedActivity(t, db, "Race Course", 1.0, 70, 4)
	svc := newCompletionService(db, false)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.RecordCompletion(user.ID, activity.ID, 100, 300)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	var count int64
	require.NoError(t, db.Model(&model.CompletionRecord{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count, "concurrent recording must collapse to one row")
}
