package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"medipublish_backend/internal/model"
	"medipublish_backend/internal/repository"
	"medipublish_backend/internal/util"
	"medipublish_backend/pkg/monitoring"
	"strings"
	"time"
)

// TranscriptService aggregates a user's completion records into a
// transcript, checks them against specialty requirements, and exports the
// transcript as a durable document. The transcript is recomputed on every
// request; nothing here is cached or stored.
type TranscriptService struct {
	CompletionRepo  *repository.CompletionRepository
	RequirementRepo *repository.RequirementRepository
	Storage         *StorageService
}

func NewTranscriptService(completionRepo *repository.CompletionRepository, requirementRepo *repository.RequirementRepository, storage *StorageService) *TranscriptService {
	return &TranscriptService{
		CompletionRepo:  completionRepo,
		RequirementRepo: requirementRepo,
		Storage:         storage,
	}
}

// TranscriptEntry is one completed activity on the transcript.
type TranscriptEntry struct {
	ActivityID    uint      `json:"activityId"`
	Title         string    `json:"title"`
	Specialty     string    `json:"specialty"`
	CreditType    string    `json:"creditType"`
	CompletedAt   time.Time `json:"completedAt"`
	Score         int       `json:"score"`
	CreditsEarned float64   `json:"creditsEarned"`
}

// Transcript is the derived, read-only rollup of a user's completions.
type Transcript struct {
	UserID       uint               `json:"userId"`
	Entries      []TranscriptEntry  `json:"entries"`
	TotalCredits float64            `json:"totalCredits"`
	BySpecialty  map[string]float64 `json:"bySpecialty"`
	ByCreditType map[string]float64 `json:"byCreditType"`
	GeneratedAt  time.Time          `json:"generatedAt"`
}

// GetTranscript rolls up all completions for the user. A user with no
// completions gets an empty transcript, not an error.
func (s *TranscriptService) GetTranscript(userID uint) (*Transcript, error) {
	recs, err := s.CompletionRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	t := &Transcript{
		UserID:       userID,
		Entries:      make([]TranscriptEntry, 0, len(recs)),
		BySpecialty:  make(map[string]float64),
		ByCreditType: make(map[string]float64),
		GeneratedAt:  time.Now(),
	}

	for _, rec := range recs {
		entry := TranscriptEntry{
			ActivityID:    rec.ActivityID,
			CompletedAt:   rec.CompletedAt,
			Score:         rec.Score,
			CreditsEarned: rec.CreditsEarned,
		}
		if rec.Activity != nil {
			entry.Title = rec.Activity.Title
			entry.Specialty = rec.Activity.Specialty
			entry.CreditType = string(rec.Activity.CreditType)
		}
		t.Entries = append(t.Entries, entry)
		t.TotalCredits += rec.CreditsEarned
		if entry.Specialty != "" {
			t.BySpecialty[entry.Specialty] += rec.CreditsEarned
		}
		if entry.CreditType != "" {
			t.ByCreditType[entry.CreditType] += rec.CreditsEarned
		}
	}

	return t, nil
}

// CategoryStatus reports one sub-category minimum, e.g. ethics hours.
type CategoryStatus struct {
	CreditType string  `json:"creditType"`
	Required   float64 `json:"required"`
	Earned     float64 `json:"earned"`
	Satisfied  bool    `json:"satisfied"`
}

// RequirementStatus compares earned credits against a specialty's mandate.
type RequirementStatus struct {
	Specialty  string           `json:"specialty"`
	Required   float64          `json:"required"`
	Earned     float64          `json:"earned"`
	Satisfied  bool             `json:"satisfied"`
	Deficit    float64          `json:"deficit"`
	CycleYears int              `json:"cycleYears"`
	Categories []CategoryStatus `json:"categories,omitempty"`
}

// CheckRequirements sums the user's credits earned in the given specialty
// and compares them against its requirement definition. A specialty with
// no definition is an error, never a silent zero.
func (s *TranscriptService) CheckRequirements(userID uint, specialty string) (*RequirementStatus, error) {
	req, err := s.RequirementRepo.FindBySpecialty(specialty)
	if err != nil {
		return nil, err
	}

	transcript, err := s.GetTranscript(userID)
	if err != nil {
		return nil, err
	}

	earned := 0.0
	byType := make(map[string]float64)
	for _, entry := range transcript.Entries {
		if !strings.EqualFold(entry.Specialty, req.Specialty) {
			continue
		}
		earned += entry.CreditsEarned
		byType[entry.CreditType] += entry.CreditsEarned
	}

	status := &RequirementStatus{
		Specialty:  req.Specialty,
		Required:   req.RequiredHours,
		Earned:     earned,
		Satisfied:  earned >= req.RequiredHours,
		Deficit:    maxFloat(0, req.RequiredHours-earned),
		CycleYears: req.CycleYears,
	}

	for _, cat := range req.CategoryMinimums {
		catEarned := byType[string(cat.CreditType)]
		catStatus := CategoryStatus{
			CreditType: string(cat.CreditType),
			Required:   cat.MinimumHours,
			Earned:     catEarned,
			Satisfied:  catEarned >= cat.MinimumHours,
		}
		status.Categories = append(status.Categories, catStatus)
		if !catStatus.Satisfied {
			status.Satisfied = false
		}
	}

	return status, nil
}

// ExportFormat values accepted by ExportTranscript.
const (
	FormatPDF = "PDF"
	FormatCSV = "CSV"
	FormatXML = "XML"
)

// ExportTranscript renders the transcript in the requested format, pushes
// the document through the storage provider, and returns its durable URL.
// stateBoard is a formatting hint carried into the document header for
// state-specific submissions; the transcript content is the same.
func (s *TranscriptService) ExportTranscript(ctx context.Context, userID uint, format, stateBoard string) (string, error) {
	var render func(*Transcript, string) ([]byte, string, error)
	switch strings.ToUpper(format) {
	case FormatPDF:
		render = renderPDF
	case FormatCSV:
		render = renderCSV
	case FormatXML:
		render = renderXML
	default:
		return "", util.ErrUnsupportedFormat
	}

	transcript, err := s.GetTranscript(userID)
	if err != nil {
		return "", err
	}

	payload, contentType, err := render(transcript, stateBoard)
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(format)
	filename := fmt.Sprintf("transcripts/user-%d-%d.%s", userID, time.Now().Unix(), ext)
	url, err := s.Storage.Upload(ctx, filename, bytes.NewReader(payload), int64(len(payload)), contentType)
	if err != nil {
		return "", err
	}

	monitoring.TranscriptExports.WithLabelValues(strings.ToUpper(format)).Inc()
	return url, nil
}

// ListRequirements exposes all known specialty requirement definitions.
func (s *TranscriptService) ListRequirements() ([]model.SpecialtyRequirement, error) {
	return s.RequirementRepo.List()
}

// SaveRequirement creates or updates a specialty's requirement definition,
// admin-only through the router.
func (s *TranscriptService) SaveRequirement(req *model.SpecialtyRequirement) error {
	existing, err := s.RequirementRepo.FindBySpecialty(req.Specialty)
	if err != nil {
		if errors.Is(err, util.ErrUnknownSpecialty) {
			return s.RequirementRepo.Create(req)
		}
		return err
	}
	req.ID = existing.ID
	return s.RequirementRepo.Update(req)
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
