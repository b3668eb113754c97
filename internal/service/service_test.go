package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"medipublish_backend/internal/model"
	"medipublish_backend/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema and
// seed data. A single connection keeps sqlite's locking out of the way;
// the unique-index semantics under test are the same.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string, licenseStatus model.LicenseStatus) *model.User {
	t.Helper()
	user := &model.User{
		Name:          name,
		Email:         name + "@example.com",
		Password:      "not-a-real-hash",
		Specialty:     "Internal Medicine",
		LicenseStatus: licenseStatus,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedActivity(t *testing.T, db *gorm.DB, title string, creditHours float64, passingScore, questions int) *model.Activity {
	t.Helper()
	now := time.Now()
	activity := &model.Activity{
		Title:           title,
		Specialty:       "Internal Medicine",
		CreditHours:     creditHours,
		CreditType:      model.CreditAMA,
		PassingScore:    passingScore,
		AttemptsAllowed: 3,
		Status:          model.ActivityPublished,
		PublishedAt:     &now,
	}
	require.NoError(t, db.Create(activity).Error)

	for i := 0; i < questions; i++ {
		q := &model.ActivityQuestion{
			ActivityID:    activity.ID,
			Content:       fmt.Sprintf("Question %d", i+1),
			Options:       []byte(`["A","B","C","D"]`),
			CorrectAnswer: i % 4,
			Order:         i,
		}
		require.NoError(t, db.Create(q).Error)
	}
	return activity
}

// correctAnswers returns the answer slice that scores 100 on an activity
// seeded by seedActivity.
func correctAnswers(n int) []int {
	answers := make([]int, n)
	for i := range answers {
		answers[i] = i % 4
	}
	return answers
}
