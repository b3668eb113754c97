package controller

import (
	"medipublish_backend/internal/model"
	"medipublish_backend/internal/service"
	"medipublish_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *service.ContentService
	AuthService    *service.AuthService
}

func NewContentController(contentService *service.ContentService, authService *service.AuthService) *ContentController {
	return &ContentController{
		ContentService: contentService,
		AuthService:    authService,
	}
}

// ListContent godoc
// @Summary Browse published content
// @Tags content
// @Produce json
// @Param type query string false "article | video | cme"
// @Param specialty query string false "specialty filter"
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/content [get]
func (c *ContentController) ListContent(ctx *gin.Context) {
	page, limit := pageParams(ctx)
	contents, total, err := c.ContentService.ListPublished(ctx.Query("type"), ctx.Query("specialty"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: contents, Total: total, Page: page, Limit: limit})
}

// GetContent godoc
// @Summary Read one piece of content
// @Description Paid tiers require an active subscription; free content is open
// @Tags content
// @Produce json
// @Param id path int true "content id"
// @Success 200 {object} util.Response{data=model.Content}
// @Failure 404 {object} util.Response
// @Router /api/content/{id} [get]
func (c *ContentController) GetContent(ctx *gin.Context) {
	// Anonymous readers get a nil user; access control decides from there.
	user := c.AuthService.GetCurrentUser(ctx)

	content, err := c.ContentService.GetContent(util.MustParseUint(ctx.Param("id")), user)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, content)
}

// ContentRequest is the authoring payload for an article or CME write-up.
// swagger:model ContentRequest
type ContentRequest struct {
	Title      string `json:"title" binding:"required"`
	Body       string `json:"body"`
	Type       string `json:"type" binding:"required,oneof=article video cme"`
	AccessType string `json:"accessType" binding:"omitempty,oneof=free premium purchase cme"`
	Price      int64  `json:"price" binding:"omitempty,min=0"`
	Specialty  string `json:"specialty"`
}

func (r *ContentRequest) toModel() *model.Content {
	accessType := model.AccessType(r.AccessType)
	if r.AccessType == "" {
		accessType = model.AccessFree
	}
	return &model.Content{
		Title:      r.Title,
		Body:       r.Body,
		Type:       model.ContentType(r.Type),
		AccessType: accessType,
		Price:      r.Price,
		Specialty:  r.Specialty,
	}
}

// CreateContent godoc
// @Summary Draft new content (creator)
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ContentRequest true "content"
// @Success 201 {object} util.Response{data=model.Content}
// @Router /api/creator/content [post]
func (c *ContentController) CreateContent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	content := req.toModel()
	if err := c.ContentService.CreateDraft(claims.UserID, content); err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, content)
}

// UpdateContent godoc
// @Summary Update own content (creator)
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "content id"
// @Param body body ContentRequest true "content"
// @Success 200 {object} util.Response{data=model.Content}
// @Router /api/creator/content/{id} [put]
func (c *ContentController) UpdateContent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	content, err := c.ContentService.UpdateContent(claims.UserID, claims.Role == model.Admin, util.MustParseUint(ctx.Param("id")), req.toModel())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, content)
}

// DeleteContent godoc
// @Summary Delete own content (creator)
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param id path int true "content id"
// @Success 200 {object} util.Response
// @Router /api/creator/content/{id} [delete]
func (c *ContentController) DeleteContent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.ContentService.DeleteContent(claims.UserID, claims.Role == model.Admin, util.MustParseUint(ctx.Param("id"))); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListOwnContent godoc
// @Summary Own content, all statuses (creator)
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/creator/content [get]
func (c *ContentController) ListOwnContent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, limit := pageParams(ctx)
	contents, total, err := c.ContentService.ListByCreator(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: contents, Total: total, Page: page, Limit: limit})
}

// SubmitForReview godoc
// @Summary Submit a draft for editorial review (creator)
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param id path int true "content id"
// @Success 200 {object} util.Response{data=model.Content}
// @Router /api/creator/content/{id}/submit [put]
func (c *ContentController) SubmitForReview(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	content, err := c.ContentService.SubmitForReview(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, content)
}

type PublishDecisionRequest struct {
	Approve bool `json:"approve"`
}

// PublishContent godoc
// @Summary Decide an editorial review (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "content id"
// @Param body body PublishDecisionRequest true "decision"
// @Success 200 {object} util.Response{data=model.Content}
// @Router /api/admin/content/{id}/publish [put]
func (c *ContentController) PublishContent(ctx *gin.Context) {
	var req PublishDecisionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	content, err := c.ContentService.Publish(util.MustParseUint(ctx.Param("id")), req.Approve)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, content)
}

// UploadVideo godoc
// @Summary Upload a video as a new draft (creator)
// @Description Stores the video, probes duration, and cuts a thumbnail
// @Tags content
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "video file"
// @Param title formData string false "title, defaults to the file name"
// @Param specialty formData string false "specialty"
// @Param accessType formData string false "free | premium | purchase | cme"
// @Success 201 {object} util.Response{data=model.Content}
// @Failure 400 {object} util.Response "unsupported extension or content"
// @Router /api/creator/content/video [post]
func (c *ContentController) UploadVideo(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	accessType := model.AccessType(ctx.DefaultPostForm("accessType", string(model.AccessFree)))
	content, err := c.ContentService.UploadVideo(
		ctx.Request.Context(),
		claims.UserID,
		file,
		ctx.PostForm("title"),
		ctx.PostForm("specialty"),
		accessType,
	)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, content)
}
