package service

import (
	"medipublish_backend/internal/config"
	"medipublish_backend/internal/model"
	"medipublish_backend/internal/repository"
	"medipublish_backend/internal/util"
	"medipublish_backend/pkg/logger"
	"medipublish_backend/pkg/monitoring"
	"time"

	"go.uber.org/zap"
)

// CompletionService grades submissions and records passing attempts as
// completion records. It owns the duplicate-completion policy; grading
// itself is delegated to the pure GradingService.
type CompletionService struct {
	ActivityRepo   *repository.ActivityRepository
	CompletionRepo *repository.CompletionRepository
	AttemptRepo    *repository.AttemptRepository
	Grader         *GradingService
	Analytics      *AnalyticsService
	Cfg            *config.Config
}

func NewCompletionService(
	activityRepo *repository.ActivityRepository,
	completionRepo *repository.CompletionRepository,
	attemptRepo *repository.AttemptRepository,
	grader *GradingService,
	analytics *AnalyticsService,
	cfg *config.Config,
) *CompletionService {
	return &CompletionService{
		ActivityRepo:   activityRepo,
		CompletionRepo: completionRepo,
		AttemptRepo:    attemptRepo,
		Grader:         grader,
		Analytics:      analytics,
		Cfg:            cfg,
	}
}

// SubmissionResult is what a learner gets back from a graded submission.
// Completion is nil for failing scores; AlreadyCompleted marks the case
// where a prior completion existed and retake credit is disabled.
type SubmissionResult struct {
	Grading          *GradingResult          `json:"grading"`
	Completion       *model.CompletionRecord `json:"completion,omitempty"`
	AlreadyCompleted bool                    `json:"alreadyCompleted"`
	AttemptsUsed     int                     `json:"attemptsUsed"`
	AttemptsAllowed  int                     `json:"attemptsAllowed"`
}

// SubmitAnswers runs the full grading flow: attempt-cap check, scoring,
// attempt logging, and completion recording on a pass. A failing score is
// not an error; the learner may resubmit until attempts run out.
func (s *CompletionService) SubmitAnswers(userID, activityID uint, answers []int, timeSpent int) (*SubmissionResult, error) {
	activity, err := s.ActivityRepo.FindByID(activityID)
	if err != nil {
		return nil, err
	}
	if activity.Status != model.ActivityPublished {
		return nil, util.ErrActivityNotLive
	}
	if activity.ExpirationDate != nil && activity.ExpirationDate.Before(time.Now()) {
		return nil, util.ErrActivityExpired
	}

	used, err := s.AttemptRepo.CountByUserAndActivity(userID, activityID)
	if err != nil {
		return nil, err
	}
	if activity.AttemptsAllowed > 0 && used >= int64(activity.AttemptsAllowed) {
		return nil, util.ErrAttemptsExhausted
	}

	grading, err := s.Grader.Grade(activity, answers)
	if err != nil {
		return nil, err
	}

	attempt := &model.ActivityAttempt{
		UserID:     userID,
		ActivityID: activityID,
		Score:      grading.Score,
		Passed:     grading.Passed,
		TimeSpent:  timeSpent,
	}
	if err := s.AttemptRepo.Create(attempt); err != nil {
		return nil, err
	}

	result := &SubmissionResult{
		Grading:         grading,
		AttemptsUsed:    int(used) + 1,
		AttemptsAllowed: activity.AttemptsAllowed,
	}

	if !grading.Passed {
		return result, nil
	}

	rec, created, err := s.recordCompletion(activity, userID, grading.Score, timeSpent)
	if err != nil {
		return nil, err
	}
	result.Completion = rec
	result.AlreadyCompleted = !created

	if created && s.Analytics != nil {
		s.Analytics.Track(userID, model.EventCMEComplete, activity.ContentID, activity.Specialty)
	}

	return result, nil
}

// RecordCompletion persists a passing attempt as a completion record. The
// caller has already established score >= passingScore; this method does
// not re-grade. Credits follow the activity's configured credit hours.
func (s *CompletionService) RecordCompletion(userID, activityID uint, score, timeSpent int) (*model.CompletionRecord, error) {
	activity, err := s.ActivityRepo.FindByID(activityID)
	if err != nil {
		return nil, err
	}
	rec, _, err := s.recordCompletion(activity, userID, score, timeSpent)
	return rec, err
}

func (s *CompletionService) recordCompletion(activity *model.Activity, userID uint, score, timeSpent int) (*model.CompletionRecord, bool, error) {
	rec := &model.CompletionRecord{
		UserID:        userID,
		ActivityID:    activity.ID,
		CompletedAt:   time.Now(),
		Score:         score,
		CreditsEarned: activity.CreditHours,
		TimeSpent:     timeSpent,
	}

	if s.Cfg != nil && s.Cfg.CME.AllowRetakeCredit {
		if err := s.CompletionRepo.Append(rec); err != nil {
			return nil, false, err
		}
		monitoring.CompletionsRecorded.Inc()
		return rec, true, nil
	}

	stored, created, err := s.CompletionRepo.CreateIfAbsent(rec)
	if err != nil {
		return nil, false, err
	}
	if created {
		monitoring.CompletionsRecorded.Inc()
		logger.Log.Info("CME completion recorded",
			zap.Uint("userId", userID),
			zap.Uint("activityId", activity.ID),
			zap.Int("score", score),
			zap.Float64("credits", activity.CreditHours),
		)
	}
	return stored, created, nil
}
