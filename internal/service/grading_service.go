package service

import (
	"medipublish_backend/internal/model"
	"medipublish_backend/internal/util"
	"medipublish_backend/pkg/logger"
	"medipublish_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// GradingResult is the outcome of scoring one submission. It is never
// persisted; the attempt and completion tables carry the durable state.
type GradingResult struct {
	CorrectAnswers int  `json:"correctAnswers"`
	TotalQuestions int  `json:"totalQuestions"`
	Score          int  `json:"score"` // 0-100
	Passed         bool `json:"passed"`
}

// GradingService scores submitted answers against an activity's question
// bank. It holds no state and performs no I/O.
type GradingService struct{}

func NewGradingService() *GradingService {
	return &GradingService{}
}

// Grade compares answers index-by-index against the question bank and
// applies the activity's passing threshold (inclusive).
//
// A short or over-long answer slice is not an error: positions without a
// submitted answer, and answers outside the option range, simply count as
// wrong. An activity without questions cannot be graded at all; that is a
// content-integrity problem, reported as ErrNoQuestionBank and logged for
// operator attention rather than surfaced as a learner-facing failure.
func (s *GradingService) Grade(activity *model.Activity, answers []int) (*GradingResult, error) {
	total := len(activity.Questions)
	if total == 0 {
		logger.Log.Error("CME activity has no question bank",
			zap.Uint("activityId", activity.ID),
			zap.String("title", activity.Title),
		)
		return nil, util.ErrNoQuestionBank
	}

	correct := 0
	for i, q := range activity.Questions {
		if i < len(answers) && answers[i] == q.CorrectAnswer {
			correct++
		}
	}

	score := roundHalfUp(100 * float64(correct) / float64(total))
	passed := score >= activity.PassingScore

	outcome := "failed"
	if passed {
		outcome = "passed"
	}
	monitoring.GradingOutcomes.WithLabelValues(outcome).Inc()

	return &GradingResult{
		CorrectAnswers: correct,
		TotalQuestions: total,
		Score:          score,
		Passed:         passed,
	}, nil
}

// roundHalfUp rounds to the nearest integer with .5 going up, so 6.5
// correct out of 10 never loses a point to banker's rounding.
func roundHalfUp(v float64) int {
	return int(v + 0.5)
}
