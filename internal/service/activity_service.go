package service

import (
	"context"
	"errors"
	"time"

	"medipublish_backend/internal/model"
	"medipublish_backend/internal/repository"
	"medipublish_backend/internal/util"

	"gorm.io/gorm"
)

// ActivityService covers the authoring side of CME activities: drafting,
// question-bank management, and the publish decision. Learner-facing
// listing lives in CatalogService, grading in CompletionService.
type ActivityService struct {
	ActivityRepo *repository.ActivityRepository
	AttemptRepo  *repository.AttemptRepository
	Catalog      *CatalogService
	Analytics    *AnalyticsService
}

func NewActivityService(activityRepo *repository.ActivityRepository, attemptRepo *repository.AttemptRepository, catalog *CatalogService, analytics *AnalyticsService) *ActivityService {
	return &ActivityService{
		ActivityRepo: activityRepo,
		AttemptRepo:  attemptRepo,
		Catalog:      catalog,
		Analytics:    analytics,
	}
}

func (s *ActivityService) CreateActivity(creatorID uint, activity *model.Activity) error {
	activity.CreatorID = creatorID
	activity.Status = model.ActivityReview
	activity.PublishedAt = nil
	if activity.PassingScore <= 0 || activity.PassingScore > 100 {
		activity.PassingScore = 70
	}
	if activity.AttemptsAllowed < 0 {
		activity.AttemptsAllowed = 0
	}
	return s.ActivityRepo.Create(activity)
}

func (s *ActivityService) UpdateActivity(creatorID uint, isAdmin bool, id uint, updates *model.Activity) (*model.Activity, error) {
	activity, err := s.ActivityRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if activity.CreatorID != creatorID && !isAdmin {
		return nil, util.ErrPermissionDenied
	}

	activity.Title = updates.Title
	activity.Description = updates.Description
	activity.Specialty = updates.Specialty
	activity.TargetAudience = updates.TargetAudience
	activity.CreditHours = updates.CreditHours
	activity.CreditType = updates.CreditType
	activity.ExpirationDate = updates.ExpirationDate
	if updates.PassingScore > 0 && updates.PassingScore <= 100 {
		activity.PassingScore = updates.PassingScore
	}
	if updates.AttemptsAllowed >= 0 {
		activity.AttemptsAllowed = updates.AttemptsAllowed
	}
	activity.UpdatedAt = time.Now()

	if err := s.ActivityRepo.Update(activity); err != nil {
		return nil, err
	}
	s.Catalog.InvalidateCache(context.Background())
	return activity, nil
}

// GetActivity returns an activity for a learner about to take it. Only
// published, unexpired activities are visible; question answers stay
// server-side. A cme_start event is tracked per fetch.
func (s *ActivityService) GetActivity(userID, id uint) (*model.Activity, error) {
	activity, err := s.ActivityRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if activity.Status != model.ActivityPublished {
		return nil, util.ErrActivityNotLive
	}
	if activity.ExpirationDate != nil && activity.ExpirationDate.Before(time.Now()) {
		return nil, util.ErrActivityExpired
	}

	if s.Analytics != nil {
		s.Analytics.Track(userID, model.EventCMEStart, activity.ContentID, activity.Specialty)
	}
	return activity, nil
}

// GetActivityForAuthor returns the full activity regardless of status,
// restricted to its creator or an admin.
func (s *ActivityService) GetActivityForAuthor(creatorID uint, isAdmin bool, id uint) (*model.Activity, error) {
	activity, err := s.ActivityRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if activity.CreatorID != creatorID && !isAdmin {
		return nil, util.ErrPermissionDenied
	}
	return activity, nil
}

// PublishActivity is the admin decision making an activity available in
// the catalog. Publishing with an empty question bank is rejected since
// nothing could ever be graded.
func (s *ActivityService) PublishActivity(id uint) (*model.Activity, error) {
	activity, err := s.ActivityRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if len(activity.Questions) == 0 {
		return nil, util.ErrNoQuestionBank
	}

	if err := s.ActivityRepo.Publish(id); err != nil {
		return nil, err
	}
	s.Catalog.InvalidateCache(context.Background())
	return s.ActivityRepo.FindByID(id)
}

// RetireActivity pulls an activity from the catalog. Completion records
// earned against it are untouched.
func (s *ActivityService) RetireActivity(id uint) error {
	activity, err := s.ActivityRepo.FindByID(id)
	if err != nil {
		return err
	}
	activity.Status = model.ActivityRetired
	activity.UpdatedAt = time.Now()
	if err := s.ActivityRepo.Update(activity); err != nil {
		return err
	}
	s.Catalog.InvalidateCache(context.Background())
	return nil
}

func (s *ActivityService) AddQuestion(creatorID uint, isAdmin bool, activityID uint, question *model.ActivityQuestion) error {
	if _, err := s.GetActivityForAuthor(creatorID, isAdmin, activityID); err != nil {
		return err
	}
	question.ActivityID = activityID
	return s.ActivityRepo.CreateQuestion(question)
}

func (s *ActivityService) UpdateQuestion(creatorID uint, isAdmin bool, questionID uint, updates *model.ActivityQuestion) error {
	question, err := s.ActivityRepo.FindQuestionByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrActivityNotFound
		}
		return err
	}
	if _, err := s.GetActivityForAuthor(creatorID, isAdmin, question.ActivityID); err != nil {
		return err
	}

	question.Content = updates.Content
	question.Options = updates.Options
	question.CorrectAnswer = updates.CorrectAnswer
	question.Explanation = updates.Explanation
	question.Order = updates.Order
	return s.ActivityRepo.UpdateQuestion(question)
}

func (s *ActivityService) DeleteQuestion(creatorID uint, isAdmin bool, questionID uint) error {
	question, err := s.ActivityRepo.FindQuestionByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrActivityNotFound
		}
		return err
	}
	if _, err := s.GetActivityForAuthor(creatorID, isAdmin, question.ActivityID); err != nil {
		return err
	}
	return s.ActivityRepo.DeleteQuestion(questionID)
}

// AttemptStatus reports how many attempts a learner has used against an
// activity's cap.
type AttemptStatus struct {
	AttemptsUsed    int                     `json:"attemptsUsed"`
	AttemptsAllowed int                     `json:"attemptsAllowed"`
	Exhausted       bool                    `json:"exhausted"`
	Attempts        []model.ActivityAttempt `json:"attempts"`
}

func (s *ActivityService) GetAttemptStatus(userID, activityID uint) (*AttemptStatus, error) {
	activity, err := s.ActivityRepo.FindByID(activityID)
	if err != nil {
		return nil, err
	}

	attempts, err := s.AttemptRepo.ListByUserAndActivity(userID, activityID)
	if err != nil {
		return nil, err
	}

	used := len(attempts)
	return &AttemptStatus{
		AttemptsUsed:    used,
		AttemptsAllowed: activity.AttemptsAllowed,
		Exhausted:       activity.AttemptsAllowed > 0 && used >= activity.AttemptsAllowed,
		Attempts:        attempts,
	}, nil
}
