package service

import (
	"errors"

	"medipublish_backend/internal/model"
	"medipublish_backend/internal/repository"
	"medipublish_backend/internal/util"

	"gorm.io/gorm"
)

// CommunityService runs the clinician discussion board. Posting and
// commenting require a verified medical license; reading does not.
type CommunityService struct {
	CommunityRepo *repository.CommunityRepository
	UserRepo      *repository.UserRepository
}

func NewCommunityService(communityRepo *repository.CommunityRepository, userRepo *repository.UserRepository) *CommunityService {
	return &CommunityService{
		CommunityRepo: communityRepo,
		UserRepo:      userRepo,
	}
}

func (s *CommunityService) requireVerified(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	if !user.LicenseIsVerified() && user.Role != model.Admin {
		return nil, util.ErrLicenseNotVerified
	}
	return user, nil
}

func (s *CommunityService) CreatePost(userID uint, post *model.Post) error {
	if _, err := s.requireVerified(userID); err != nil {
		return err
	}
	post.AuthorID = userID
	post.Upvotes = 0
	return s.CommunityRepo.CreatePost(post)
}

func (s *CommunityService) GetPost(id uint) (*model.Post, error) {
	post, err := s.CommunityRepo.FindPostByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("post not found")
		}
		return nil, err
	}
	return post, nil
}

func (s *CommunityService) ListPosts(specialty string, page, limit int) ([]model.Post, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.CommunityRepo.ListPosts(specialty, page, limit)
}

func (s *CommunityService) DeletePost(userID uint, isAdmin bool, id uint) error {
	post, err := s.GetPost(id)
	if err != nil {
		return err
	}
	if post.AuthorID != userID && !isAdmin {
		return util.ErrPermissionDenied
	}
	return s.CommunityRepo.DeletePost(id)
}

func (s *CommunityService) AddComment(userID uint, postID uint, body string) (*model.Comment, error) {
	if _, err := s.requireVerified(userID); err != nil {
		return nil, err
	}
	if _, err := s.GetPost(postID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		PostID:   postID,
		AuthorID: userID,
		Body:     body,
	}
	if err := s.CommunityRepo.CreateComment(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommunityService) DeleteComment(userID uint, isAdmin bool, id uint) error {
	comment, err := s.CommunityRepo.FindCommentByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("comment not found")
		}
		return err
	}
	if comment.AuthorID != userID && !isAdmin {
		return util.ErrPermissionDenied
	}
	return s.CommunityRepo.DeleteComment(id)
}

func (s *CommunityService) UpvotePost(userID uint, postID uint) error {
	if _, err := s.requireVerified(userID); err != nil {
		return err
	}
	if _, err := s.GetPost(postID); err != nil {
		return err
	}
	return s.CommunityRepo.Upvote(postID)
}
