package controller

import (
	"encoding/json"
	"errors"
	"time"

	"medipublish_backend/internal/model"
	"medipublish_backend/internal/service"
	"medipublish_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ActivityController struct {
	ActivityService *service.ActivityService
	CatalogService  *service.CatalogService
}

func NewActivityController(activityService *service.ActivityService, catalogService *service.CatalogService) *ActivityController {
	return &ActivityController{
		ActivityService: activityService,
		CatalogService:  catalogService,
	}
}

// ListCatalog godoc
// @Summary Browse the CME catalog
// @Description Published activities, filterable by specialty and credit type
// @Tags cme
// @Produce json
// @Param specialty query string false "specialty filter"
// @Param creditType query string false "credit type filter"
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/cme/activities [get]
func (c *ActivityController) ListCatalog(ctx *gin.Context) {
	page, limit := pageParams(ctx)
	activities, total, err := c.CatalogService.ListActivities(
		ctx.Request.Context(),
		ctx.Query("specialty"),
		ctx.Query("creditType"),
		page, limit,
	)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: activities, Total: total, Page: page, Limit: limit})
}

// GetActivity godoc
// @Summary Fetch an activity to take it
// @Description Returns the activity with its question bank; correct answers are withheld
// @Tags cme
// @Produce json
// @Security BearerAuth
// @Param id path int true "activity id"
// @Success 200 {object} util.Response{data=model.Activity}
// @Failure 404 {object} util.Response
// @Failure 410 {object} util.Response
// @Router /api/cme/activities/{id} [get]
func (c *ActivityController) GetActivity(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	activity, err := c.ActivityService.GetActivity(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, activity)
}

// ActivityRequest is the authoring payload for an activity.
// swagger:model ActivityRequest
type ActivityRequest struct {
	Title           string  `json:"title" binding:"required"`
	Description     string  `json:"description"`
	Specialty       string  `json:"specialty" binding:"required"`
	TargetAudience  string  `json:"targetAudience"`
	CreditHours     float64 `json:"creditHours" binding:"required,gt=0"`
	CreditType      string  `json:"creditType" binding:"omitempty,oneof=AMA_PRA_1 AAFP AANP ethics"`
	PassingScore    int     `json:"passingScore" binding:"omitempty,min=1,max=100"`
	AttemptsAllowed int     `json:"attemptsAllowed" binding:"omitempty,min=0"`
	ExpirationDate  *string `json:"expirationDate"` // RFC 3339
	ContentID       *uint   `json:"contentId"`
}

func (r *ActivityRequest) toModel() (*model.Activity, error) {
	activity := &model.Activity{
		Title:           r.Title,
		Description:     r.Description,
		Specialty:       r.Specialty,
		TargetAudience:  r.TargetAudience,
		CreditHours:     r.CreditHours,
		CreditType:      model.CreditType(r.CreditType),
		PassingScore:    r.PassingScore,
		AttemptsAllowed: r.AttemptsAllowed,
		ContentID:       r.ContentID,
	}
	if r.CreditType == "" {
		activity.CreditType = model.CreditAMA
	}
	if r.ExpirationDate != nil && *r.ExpirationDate != "" {
		exp, err := time.Parse(time.RFC3339, *r.ExpirationDate)
		if err != nil {
			return nil, err
		}
		activity.ExpirationDate = &exp
	}
	return activity, nil
}

// CreateActivity godoc
// @Summary Draft a new CME activity (creator)
// @Tags cme
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ActivityRequest true "activity"
// @Success 201 {object} util.Response{data=model.Activity}
// @Router /api/creator/activities [post]
func (c *ActivityController) CreateActivity(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	activity, err := req.toModel()
	if err != nil {
		util.BadRequest(ctx, "invalid expirationDate: "+err.Error())
		return
	}

	if err := c.ActivityService.CreateActivity(claims.UserID, activity); err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, activity)
}

// UpdateActivity godoc
// @Summary Update an activity (creator)
// @Tags cme
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "activity id"
// @Param body body ActivityRequest true "activity"
// @Success 200 {object} util.Response{data=model.Activity}
// @Router /api/creator/activities/{id} [put]
func (c *ActivityController) UpdateActivity(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	updates, err := req.toModel()
	if err != nil {
		util.BadRequest(ctx, "invalid expirationDate: "+err.Error())
		return
	}

	activity, err := c.ActivityService.UpdateActivity(claims.UserID, claims.Role == model.Admin, util.MustParseUint(ctx.Param("id")), updates)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, activity)
}

// GetActivityDraft godoc
// @Summary Fetch own activity regardless of status (creator)
// @Tags cme
// @Produce json
// @Security BearerAuth
// @Param id path int true "activity id"
// @Success 200 {object} util.Response{data=model.Activity}
// @Router /api/creator/activities/{id} [get]
func (c *ActivityController) GetActivityDraft(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	activity, err := c.ActivityService.GetActivityForAuthor(claims.UserID, claims.Role == model.Admin, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, activity)
}

// QuestionRequest is the authoring payload for one question.
// swagger:model QuestionRequest
type QuestionRequest struct {
	Content       string   `json:"content" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2"`
	CorrectAnswer int      `json:"correctAnswer" binding:"min=0"`
	Explanation   string   `json:"explanation"`
	Order         int      `json:"order"`
}

// AddQuestion godoc
// @Summary Add a question to an activity (creator)
// @Tags cme
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "activity id"
// @Param body body QuestionRequest true "question"
// @Success 201 {object} util.Response
// @Router /api/creator/activities/{id}/questions [post]
func (c *ActivityController) AddQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.CorrectAnswer >= len(req.Options) {
		util.BadRequest(ctx, "correctAnswer out of range")
		return
	}

	options, _ := json.Marshal(req.Options)
	question := &model.ActivityQuestion{
		Content:       req.Content,
		Options:       options,
		CorrectAnswer: req.CorrectAnswer,
		Explanation:   req.Explanation,
		Order:         req.Order,
	}

	if err := c.ActivityService.AddQuestion(claims.UserID, claims.Role == model.Admin, util.MustParseUint(ctx.Param("id")), question); err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"id": question.ID})
}

// UpdateQuestion godoc
// @Summary Update a question (creator)
// @Tags cme
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "question id"
// @Param body body QuestionRequest true "question"
// @Success 200 {object} util.Response
// @Router /api/creator/questions/{id} [put]
func (c *ActivityController) UpdateQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.CorrectAnswer >= len(req.Options) {
		util.BadRequest(ctx, "correctAnswer out of range")
		return
	}

	options, _ := json.Marshal(req.Options)
	updates := &model.ActivityQuestion{
		Content:       req.Content,
		Options:       options,
		CorrectAnswer: req.CorrectAnswer,
		Explanation:   req.Explanation,
		Order:         req.Order,
	}

	if err := c.ActivityService.UpdateQuestion(claims.UserID, claims.Role == model.Admin, util.MustParseUint(ctx.Param("id")), updates); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// DeleteQuestion godoc
// @Summary Delete a question (creator)
// @Tags cme
// @Produce json
// @Security BearerAuth
// @Param id path int true "question id"
// @Success 200 {object} util.Response
// @Router /api/creator/questions/{id} [delete]
func (c *ActivityController) DeleteQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.ActivityService.DeleteQuestion(claims.UserID, claims.Role == model.Admin, util.MustParseUint(ctx.Param("id"))); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// PublishActivity godoc
// @Summary Publish a reviewed activity (admin)
// @Description Rejected when the question bank is empty
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "activity id"
// @Success 200 {object} util.Response{data=model.Activity}
// @Router /api/admin/activities/{id}/publish [put]
func (c *ActivityController) PublishActivity(ctx *gin.Context) {
	activity, err := c.ActivityService.PublishActivity(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrNoQuestionBank) {
			util.BadRequest(ctx, err.Error())
			return
		}
		respondError(ctx, err)
		return
	}
	util.Success(ctx, activity)
}

// RetireActivity godoc
// @Summary Retire an activity from the catalog (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "activity id"
// @Success 200 {object} util.Response
// @Router /api/admin/activities/{id}/retire [put]
func (c *ActivityController) RetireActivity(ctx *gin.Context) {
	if err := c.ActivityService.RetireActivity(util.MustParseUint(ctx.Param("id"))); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
