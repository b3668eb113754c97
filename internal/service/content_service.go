package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"medipublish_backend/internal/config"
	"medipublish_backend/internal/model"
	"medipublish_backend/internal/repository"
	"medipublish_backend/internal/util"
	"medipublish_backend/pkg/logger"

	"go.uber.org/zap"
)

type ContentService struct {
	ContentRepo      *repository.ContentRepository
	SubscriptionRepo *repository.SubscriptionRepository
	StorageService   *StorageService
	Analytics        *AnalyticsService
	Cfg              *config.Config
}

func NewContentService(contentRepo *repository.ContentRepository, subscriptionRepo *repository.SubscriptionRepository, storageService *StorageService, analytics *AnalyticsService, cfg *config.Config) *ContentService {
	return &ContentService{
		ContentRepo:      contentRepo,
		SubscriptionRepo: subscriptionRepo,
		StorageService:   storageService,
		Analytics:        analytics,
		Cfg:              cfg,
	}
}

func (s *ContentService) CreateDraft(creatorID uint, content *model.Content) error {
	content.CreatorID = creatorID
	content.Status = model.ContentDraft
	content.PublishedAt = nil
	return s.ContentRepo.Create(content)
}

func (s *ContentService) UpdateContent(creatorID uint, isAdmin bool, id uint, updates *model.Content) (*model.Content, error) {
	content, err := s.ContentRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if content.CreatorID != creatorID && !isAdmin {
		return nil, util.ErrPermissionDenied
	}

	content.Title = updates.Title
	content.Body = updates.Body
	content.AccessType = updates.AccessType
	content.Price = updates.Price
	content.Specialty = updates.Specialty
	content.UpdatedAt = time.Now()

	if err := s.ContentRepo.Update(content); err != nil {
		return nil, err
	}
	return content, nil
}

func (s *ContentService) DeleteContent(creatorID uint, isAdmin bool, id uint) error {
	content, err := s.ContentRepo.FindByID(id)
	if err != nil {
		return err
	}
	if content.CreatorID != creatorID && !isAdmin {
		return util.ErrPermissionDenied
	}
	return s.ContentRepo.Delete(id)
}

// SubmitForReview moves a draft into the editorial review queue.
func (s *ContentService) SubmitForReview(creatorID uint, id uint) (*model.Content, error) {
	content, err := s.ContentRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if content.CreatorID != creatorID {
		return nil, util.ErrPermissionDenied
	}
	if content.Status != model.ContentDraft {
		return nil, fmt.Errorf("content is %s, only drafts can be submitted", content.Status)
	}

	content.Status = model.ContentInReview
	content.UpdatedAt = time.Now()
	if err := s.ContentRepo.Update(content); err != nil {
		return nil, err
	}
	return content, nil
}

// Publish is the admin decision on a reviewed piece. Rejection sends it
// back to draft for rework.
func (s *ContentService) Publish(id uint, approve bool) (*model.Content, error) {
	content, err := s.ContentRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if approve {
		now := time.Now()
		content.Status = model.ContentLive
		content.PublishedAt = &now
	} else {
		content.Status = model.ContentDraft
		content.PublishedAt = nil
	}
	content.UpdatedAt = time.Now()

	if err := s.ContentRepo.Update(content); err != nil {
		return nil, err
	}

	logger.Log.Info("content review decided",
		zap.Uint("content_id", content.ID),
		zap.String("status", string(content.Status)))

	return content, nil
}

func (s *ContentService) ListPublished(contentType, specialty string, page, limit int) ([]model.Content, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.ContentRepo.ListPublished(contentType, specialty, page, limit)
}

func (s *ContentService) ListByCreator(creatorID uint, page, limit int) ([]model.Content, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.ContentRepo.ListByCreator(creatorID, page, limit)
}

// GetContent returns a published piece for a reader, enforcing the access
// tier and recording the view. Creators and admins can always read their
// own unpublished work through ListByCreator instead.
func (s *ContentService) GetContent(id uint, user *model.User) (*model.Content, error) {
	content, err := s.ContentRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	isOwner := user != nil && (user.ID == content.CreatorID || user.Role == model.Admin)
	if content.Status != model.ContentLive && !isOwner {
		return nil, util.ErrContentNotFound
	}

	if !isOwner {
		if err := s.checkAccess(content, user); err != nil {
			return nil, err
		}
	}

	_ = s.ContentRepo.IncrementViewCount(content.ID)
	if user != nil {
		s.Analytics.Track(user.ID, model.EventContentView, &content.ID, string(content.Type))
	}

	return content, nil
}

func (s *ContentService) checkAccess(content *model.Content, user *model.User) error {
	switch content.AccessType {
	case model.AccessFree:
		return nil
	case model.AccessPremium, model.AccessCME:
		if user == nil {
			return util.ErrSubscriptionMissing
		}
		if _, err := s.SubscriptionRepo.FindActiveByUser(user.ID); err != nil {
			return util.ErrSubscriptionMissing
		}
		return nil
	case model.AccessPurchase:
		// One-off purchases are fulfilled through checkout; until a
		// receipt exists the body stays behind the paywall.
		if user == nil {
			return util.ErrSubscriptionMissing
		}
		if _, err := s.SubscriptionRepo.FindActiveByUser(user.ID); err != nil {
			return util.ErrSubscriptionMissing
		}
		return nil
	default:
		return nil
	}
}

// UploadVideo stores a creator's video, probing duration and cutting a
// thumbnail before attaching both to a new draft.
func (s *ContentService) UploadVideo(ctx context.Context, creatorID uint, file *multipart.FileHeader, title, specialty string, accessType model.AccessType) (*model.Content, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	valid := false
	for _, e := range util.AllowedVideoExtensions {
		if ext == e {
			valid = true
			break
		}
	}
	if !valid {
		return nil, util.ErrInvalidVideoExt
	}

	tempDir := filepath.Join(s.Cfg.Storage.LocalPath, "temp")
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, err
	}

	videoPath := filepath.Join(tempDir, fmt.Sprintf("upload_%d%s", time.Now().UnixNano(), ext))
	defer os.Remove(videoPath)

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if _, err := util.ValidateMimeType(src, []string{util.MimeVideo, util.MimeOctetStream}); err != nil {
		return nil, fmt.Errorf("rejected upload: %v", err)
	}
	if seeker, ok := src.(io.Seeker); ok {
		seeker.Seek(0, io.SeekStart)
	}

	dst, err := os.Create(videoPath)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return nil, err
	}
	dst.Close()

	videoFilename := "videos/" + time.Now().Format("20060102150405") + "_" + util.GenerateRandomString(6) + ext
	videoURL, err := s.StorageService.UploadFile(ctx, videoFilename, videoPath, file.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	thumbnailFilename := "thumbnails/" + time.Now().Format("20060102150405") + "_" + util.GenerateRandomString(6) + ".jpg"
	thumbnailPath := filepath.Join(tempDir, filepath.Base(thumbnailFilename))
	defer os.Remove(thumbnailPath)

	var thumbnailURL string
	if err := util.GenerateThumbnail(videoPath, thumbnailPath, "3"); err != nil {
		logger.Log.Error("thumbnail generation failed", zap.Error(err))
		thumbnailURL = s.StorageService.GetURL("thumbnails/default-video-thumbnail.jpg")
	} else {
		thumbnailURL, err = s.StorageService.UploadFile(ctx, thumbnailFilename, thumbnailPath, util.MimeJPEG)
		if err != nil {
			thumbnailURL = s.StorageService.GetURL("thumbnails/default-video-thumbnail.jpg")
		}
	}

	var duration int
	if info, err := util.GetVideoInfo(videoPath); err == nil {
		duration = int(info.Duration)
	}

	if title == "" {
		title = strings.TrimSuffix(file.Filename, ext)
	}

	content := &model.Content{
		Title:      title,
		Type:       model.ContentVideo,
		AccessType: accessType,
		Specialty:  specialty,
		Status:     model.ContentDraft,
		CreatorID:  creatorID,
		VideoURL:   videoURL,
		Thumbnail:  thumbnailURL,
		Duration:   duration,
	}

	if err := s.ContentRepo.Create(content); err != nil {
		return nil, err
	}
	return content, nil
}
