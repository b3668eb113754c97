package service

import (
	"testing"

	"medipublish_backend/internal/model"
	"medipublish_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bankOf(n int) []model.ActivityQuestion {
	questions := make([]model.ActivityQuestion, n)
	for i := range questions {
		questions[i] = model.ActivityQuestion{CorrectAnswer: i % 4}
	}
	return questions
}

func TestGradeAtThresholdPasses(t *testing.T) {
	grader := NewGradingService()
	activity := &model.Activity{PassingScore: 70, Questions: bankOf(10)}

	// 7 of 10 correct, the last three wrong.
	answers := correctAnswers(10)
	for i := 7; i < 10; i++ {
		answers[i] = (answers[i] + 1) % 4
	}

	result, err := grader.Grade(activity, answers)
	require.NoError(t, err)
	assert.Equal(t, 70, result.Score)
	assert.Equal(t, 7, result.CorrectAnswers)
	assert.Equal(t, 10, result.TotalQuestions)
	assert.True(t, result.Passed, "threshold is inclusive")
}

func TestGradeBelowThresholdFails(t *testing.T) {
	grader := NewGradingService()
	activity := &model.Activity{PassingScore: 70, Questions: bankOf(10)}

	answers := correctAnswers(10)
	for i := 6; i < 10; i++ {
		answers[i] = (answers[i] + 1) % 4
	}

	result, err := grader.Grade(activity, answers)
	require.NoError(t, err)
	assert.Equal(t, 60, result.Score)
	assert.False(t, result.Passed)
}

func TestGradeShortAnswerSliceCountsMissingAsWrong(t *testing.T) {
	grader := NewGradingService()
	activity := &model.Activity{PassingScore: 70, Questions: bankOf(10)}

	// Only the first five questions answered, all correct.
	result, err := grader.Grade(activity, correctAnswers(5))
	require.NoError(t, err)
	assert.Equal(t, 50, result.Score)
	assert.Equal(t, 5, result.CorrectAnswers)
	assert.False(t, result.Passed)
}

func TestGradeOverLongAnswerSliceIgnoresExtras(t *testing.T) {
	grader := NewGradingService()
	activity := &model.Activity{PassingScore: 70, Questions: bankOf(4)}

	result, err := grader.Grade(activity, correctAnswers(12))
	require.NoError(t, err)
	assert.Equal(t, 100, result.Score)
	assert.Equal(t, 4, result.TotalQuestions)
}

func TestGradeEmptyBankIsError(t *testing.T) {
	grader := NewGradingService()
	activity := &model.Activity{PassingScore: 70}

	_, err := grader.Grade(activity, []int{0, 1})
	assert.ErrorIs(t, err, util.ErrNoQuestionBank)
}

func TestGradeRoundsHalfUp(t *testing.T) {
	grader := NewGradingService()
	// 5 of 8 correct is 62.5, which must round to 63, not 62.
	activity := &model.Activity{PassingScore: 63, Questions: bankOf(8)}

	answers := correctAnswers(8)
	for i := 5; i < 8; i++ {
		answers[i] = (answers[i] + 1) % 4
	}

	result, err := grader.Grade(activity, answers)
	require.NoError(t, err)
	assert.Equal(t, 63, result.Score)
	assert.True(t, result.Passed)
}

func TestGradeIsDeterministic(t *testing.T) {
	grader := NewGradingService()
	activity := &model.Activity{PassingScore: 70, Questions: bankOf(10)}
	answers := correctAnswers(10)
	answers[3] = (answers[3] + 1) % 4

	first, err := grader.Grade(activity, answers)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := grader.Grade(activity, answers)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
