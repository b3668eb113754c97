package repository

import (
	"medipublish_backend/internal/model"

	"gorm.io/gorm"
)

type CommunityRepository struct {
	DB *gorm.DB
}

func NewCommunityRepository(db *gorm.DB) *CommunityRepository {
	return &CommunityRepository{DB: db}
}

func (r *CommunityRepository) CreatePost(p *model.Post) error {
	return r.DB.Create(p).Error
}

func (r *CommunityRepository) FindPostByID(id uint) (*model.Post, error) {
	var p model.Post
	err := r.DB.Preload("Author").Preload("Comments.Author").First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *CommunityRepository) ListPosts(specialty string, page, limit int) ([]model.Post, int64, error) {
	var posts []model.Post
	var total int64

	query := r.DB.Model(&model.Post{})
	if specialty != "" {
		query = query.Where("specialty = ?", specialty)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Preload("Author").Order("created_at desc").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, total, err
}

func (r *CommunityRepository) DeletePost(id uint) error {
	return r.DB.Delete(&model.Post{}, id).Error
}

func (r *CommunityRepository) CreateComment(c *model.Comment) error {
	return r.DB.Create(c).Error
}

func (r *CommunityRepository) DeleteComment(id uint) error {
	return r.DB.Delete(&model.Comment{}, id).Error
}

func (r *CommunityRepository) FindCommentByID(id uint) (*model.Comment, error) {
	var c model.Comment
	err := r.DB.First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommunityRepository) Upvote(postID uint) error {
	return r.DB.Model(&model.Post{}).Where("id = ?", postID).
		UpdateColumn("upvotes", gorm.Expr("upvotes + 1")).Error
}
