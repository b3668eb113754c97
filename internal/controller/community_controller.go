package controller

import (
	"medipublish_backend/internal/model"
	"medipublish_backend/internal/service"
	"medipublish_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CommunityController struct {
	CommunityService *service.CommunityService
}

func NewCommunityController(communityService *service.CommunityService) *CommunityController {
	return &CommunityController{CommunityService: communityService}
}

type PostRequest struct {
	Title     string `json:"title" binding:"required"`
	Body      string `json:"body" binding:"required"`
	Specialty string `json:"specialty"`
}

// CreatePost godoc
// @Summary Start a discussion
// @Description Posting requires a verified medical license
// @Tags community
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body PostRequest true "post"
// @Success 201 {object} util.Response{data=model.Post}
// @Failure 403 {object} util.Response "license not verified"
// @Router /api/community/posts [post]
func (c *CommunityController) CreatePost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req PostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	post := &model.Post{
		Title:     req.Title,
		Body:      req.Body,
		Specialty: req.Specialty,
	}
	if err := c.CommunityService.CreatePost(claims.UserID, post); err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, post)
}

// ListPosts godoc
// @Summary Browse discussions
// @Tags community
// @Produce json
// @Param specialty query string false "specialty filter"
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/community/posts [get]
func (c *CommunityController) ListPosts(ctx *gin.Context) {
	page, limit := pageParams(ctx)
	posts, total, err := c.CommunityService.ListPosts(ctx.Query("specialty"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: posts, Total: total, Page: page, Limit: limit})
}

// GetPost godoc
// @Summary Read a discussion with its comments
// @Tags community
// @Produce json
// @Param id path int true "post id"
// @Success 200 {object} util.Response{data=model.Post}
// @Failure 404 {object} util.Response
// @Router /api/community/posts/{id} [get]
func (c *CommunityController) GetPost(ctx *gin.Context) {
	post, err := c.CommunityService.GetPost(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, post)
}

// DeletePost godoc
// @Summary Delete own post
// @Tags community
// @Produce json
// @Security BearerAuth
// @Param id path int true "post id"
// @Success 200 {object} util.Response
// @Router /api/community/posts/{id} [delete]
func (c *CommunityController) DeletePost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.CommunityService.DeletePost(claims.UserID, claims.Role == model.Admin, util.MustParseUint(ctx.Param("id"))); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type CommentRequest struct {
	Body string `json:"body" binding:"required"`
}

// AddComment godoc
// @Summary Comment on a discussion
// @Tags community
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "post id"
// @Param body body CommentRequest true "comment"
// @Success 201 {object} util.Response{data=model.Comment}
// @Failure 403 {object} util.Response "license not verified"
// @Router /api/community/posts/{id}/comments [post]
func (c *CommunityController) AddComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	comment, err := c.CommunityService.AddComment(claims.UserID, util.MustParseUint(ctx.Param("id")), req.Body)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, comment)
}

// DeleteComment godoc
// @Summary Delete own comment
// @Tags community
// @Produce json
// @Security BearerAuth
// @Param id path int true "comment id"
// @Success 200 {object} util.Response
// @Router /api/community/comments/{id} [delete]
func (c *CommunityController) DeleteComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.CommunityService.DeleteComment(claims.UserID, claims.Role == model.Admin, util.MustParseUint(ctx.Param("id"))); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// UpvotePost godoc
// @Summary Upvote a discussion
// @Tags community
// @Produce json
// @Security BearerAuth
// @Param id path int true "post id"
// @Success 200 {object} util.Response
// @Router /api/community/posts/{id}/upvote [post]
func (c *CommunityController) UpvotePost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.CommunityService.UpvotePost(claims.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
