package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
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

func newTranscriptService(t *testing.T, db *gorm.DB) *TranscriptService {
	t.Helper()
	cfg := &config.Config{}
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = t.TempDir()
	cfg.Storage.PublicBaseURL = "http://localhost:8080/uploads"
	return NewTranscriptService(
		repository.NewCompletionRepository(db),
		repository.NewRequirementRepository(db),
		NewStorageService(cfg),
	)
}

func recordPass(t *testing.T, db *gorm.DB, userID uint, activity *model.Activity, completedAt time.Time) {
	t.Helper()
	rec := &model.CompletionRecord{
		UserID:        userID,
		ActivityID:    activity.ID,
		CompletedAt:   completedAt,
		Score:         90,
		CreditsEarned: activity.CreditHours,
	}
	require.NoError(t, db.Create(rec).Error)
}

func TestGetTranscriptEmpty(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "fresh", model.LicenseVerified)
	svc := newTranscriptService(t, db)

	transcript, err := svc.GetTranscript(user.ID)
	require.NoError(t, err)
	assert.Empty(t, transcript.Entries)
	assert.Zero(t, transcript.TotalCredits)
	assert.Empty(t, transcript.BySpecialty)
}

func TestGetTranscriptRollup(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "rollup", model.LicenseVerified)
	svc := newTranscriptService(t, db)

	first := seedActivity(t, db, "Sepsis Update", 1.5, 70, 4)
	second := seedActivity(t, db, "Ethics in Practice", 2.0, 70, 4)
	require.NoError(t, db.Model(second).Updates(map[string]interface{}{
		"specialty":   "Family Medicine",
		"credit_type": model.CreditEthics,
	}).Error)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	recordPass(t, db, user.ID, first, base.Add(48*time.Hour))
	second.CreditHours = 2.0
	recordPass(t, db, user.ID, second, base)

	transcript, err := svc.GetTranscript(user.ID)
	require.NoError(t, err)
	require.Len(t, transcript.Entries, 2)

	// Oldest completion first.
	assert.Equal(t, "Ethics in Practice", transcript.Entries[0].Title)
	assert.Equal(t, "Sepsis Update", transcript.Entries[1].Title)

	assert.Equal(t, 3.5, transcript.TotalCredits)
	assert.Equal(t, 1.5, transcript.BySpecialty["Internal Medicine"])
	assert.Equal(t, 2.0, transcript.BySpecialty["Family Medicine"])
	assert.Equal(t, 1.5, transcript.ByCreditType[string(model.CreditAMA)])
	assert.Equal(t, 2.0, transcript.ByCreditType[string(model.CreditEthics)])
}

func TestCheckRequirementsUnknownSpecialty(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "niche", model.LicenseVerified)
	svc := newTranscriptService(t, db)

	_, err := svc.CheckRequirements(user.ID, "Space Medicine")
	assert.ErrorIs(t, err, util.ErrUnknownSpecialty)
}

func TestCheckRequirementsDeficit(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "behind", model.LicenseVerified)
	svc := newTranscriptService(t, db)

	activity := seedActivity(t, db, "Short Course", 3.0, 70, 4)
	recordPass(t, db, user.ID, activity, time.Now())

	status, err := svc.CheckRequirements(user.ID, "internal medicine")
	require.NoError(t, err)
	assert.Equal(t, "Internal Medicine", status.Specialty, "lookup is case-insensitive")
	assert.Equal(t, 50.0, status.Required)
	assert.Equal(t, 3.0, status.Earned)
	assert.False(t, status.Satisfied)
	assert.Equal(t, 47.0, status.Deficit)
	assert.Equal(t, 2, status.CycleYears)
}

func TestCheckRequirementsCategoryMinimumUnsatisfied(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "no-ethics", model.LicenseVerified)
	svc := newTranscriptService(t, db)

	// Total hours satisfied, but the seeded ethics sub-minimum is not.
	activity := seedActivity(t, db, "Marathon Review", 50.0, 70, 4)
	recordPass(t, db, user.ID, activity, time.Now())

	status, err := svc.CheckRequirements(user.ID, "Internal Medicine")
	require.NoError(t, err)
	assert.Equal(t, 50.0, status.Earned)
	assert.False(t, status.Satisfied)
	assert.Zero(t, status.Deficit)

	require.Len(t, status.Categories, 1)
	ethics := status.Categories[0]
	assert.Equal(t, string(model.CreditEthics), ethics.CreditType)
	assert.Equal(t, 2.0, ethics.Required)
	assert.False(t, ethics.Satisfied)
}

func TestCheckRequirementsSatisfied(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "diligent", model.LicenseVerified)
	svc := newTranscriptService(t, db)

	bulk := seedActivity(t, db, "Board Review", 48.0, 70, 4)
	recordPass(t, db, user.ID, bulk, time.Now())

	ethics := seedActivity(t, db, "Ethics Hours", 2.0, 70, 4)
	require.NoError(t, db.Model(ethics).Update("credit_type", model.CreditEthics).Error)
	recordPass(t, db, user.ID, ethics, time.Now())

	status, err := svc.CheckRequirements(user.ID, "Internal Medicine")
	require.NoError(t, err)
	assert.Equal(t, 50.0, status.Earned)
	assert.True(t, status.Satisfied)
	require.Len(t, status.Categories, 1)
	assert.True(t, status.Categories[0].Satisfied)
}

func TestExportTranscriptUnsupportedFormat(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "docx", model.LicenseVerified)
	svc := newTranscriptService(t, db)

	_, err := svc.ExportTranscript(context.Background(), user.ID, "DOCX", "")
	assert.ErrorIs(t, err, util.ErrUnsupportedFormat)
}

func TestExportTranscriptCSV(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "csv", model.LicenseVerified)
	svc := newTranscriptService(t, db)

	activity := seedActivity(t, db, "Sepsis Update", 1.5, 70, 4)
	recordPass(t, db, user.ID, activity, time.Now())

	url, err := svc.ExportTranscript(context.Background(), user.ID, "csv", "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/transcripts/"))

	local := svc.Storage.Provider.(*LocalStorageProvider)
	rel := strings.TrimPrefix(url, "http://localhost:8080/uploads/")
	data, err := os.ReadFile(filepath.Join(local.Config.LocalPath, rel))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Sepsis Update")
	assert.Contains(t, string(data), "1.50")
}

func TestExportTranscriptPDF(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "pdf", model.LicenseVerified)
	svc := newTranscriptService(t, db)

	activity := seedActivity(t, db, "Cardio Review", 1.0, 70, 4)
	recordPass(t, db, user.ID, activity, time.Now())

	url, err := svc.ExportTranscript(context.Background(), user.ID, "PDF", "Texas Medical Board")
	require.NoError(t, err)

	local := svc.Storage.Provider.(*LocalStorageProvider)
	rel := strings.TrimPrefix(url, "http://localhost:8080/uploads/")
	data, err := os.ReadFile(filepath.Join(local.Config.LocalPath, rel))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestExportTranscriptXML(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "xml", model.LicenseVerified)
	svc := newTranscriptService(t, db)

	activity := seedActivity(t, db, "Peds Update", 1.0, 70, 4)
	recordPass(t, db, user.ID, activity, time.Now())

	url, err := svc.ExportTranscript(context.Background(), user.ID, "XML", "CA")
	require.NoError(t, err)

	local := svc.Storage.Provider.(*LocalStorageProvider)
	rel := strings.TrimPrefix(url, "http://localhost:8080/uploads/")
	data, err := os.ReadFile(filepath.Join(local.Config.LocalPath, rel))
	require.NoError(t, err)
	assert.Contains(t, string(data), `stateBoard="CA"`)
	assert.Contains(t, string(data), "Peds Update")
}

func TestSaveRequirementCreateAndUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := newTranscriptService(t, db)

	require.NoError(t, svc.SaveRequirement(&model.SpecialtyRequirement{
		Specialty:     "Dermatology",
		RequiredHours: 25,
		CycleYears:    1,
	}))

	created, err := svc.RequirementRepo.FindBySpecialty("Dermatology")
	require.NoError(t, err)
	assert.Equal(t, 25.0, created.RequiredHours)

	require.NoError(t, svc.SaveRequirement(&model.SpecialtyRequirement{
		Specialty:     "Dermatology",
		RequiredHours: 30,
		CycleYears:    2,
	}))

	updated, err := svc.RequirementRepo.FindBySpecialty("Dermatology")
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID, "update must not duplicate the row")
	assert.Equal(t, 30.0, updated.RequiredHours)
}
