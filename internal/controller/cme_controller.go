package controller

import (
	"medipublish_backend/internal/service"
	"medipublish_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CMEController struct {
	CompletionService *service.CompletionService
	ActivityService   *service.ActivityService
	AuthService       *service.AuthService
}

func NewCMEController(completionService *service.CompletionService, activityService *service.ActivityService, authService *service.AuthService) *CMEController {
	return &CMEController{
		CompletionService: completionService,
		ActivityService:   activityService,
		AuthService:       authService,
	}
}

// SubmitRequest carries the learner's answers, index-aligned with the
// activity's ordered question bank.
// swagger:model SubmitRequest
type SubmitRequest struct {
	Answers   []int `json:"answers" binding:"required"`
	TimeSpent int   `json:"timeSpent" binding:"omitempty,min=0"` // seconds
}

// SubmitAnswers godoc
// @Summary Submit post-test answers
// @Description Grades the submission; a passing score records a completion. Earning credit requires a verified medical license.
// @Tags cme
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "activity id"
// @Param body body SubmitRequest true "answers"
// @Success 200 {object} util.Response{data=service.SubmissionResult}
// @Failure 403 {object} util.Response "license not verified"
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response "attempts exhausted"
// @Failure 410 {object} util.Response "activity expired"
// @Router /api/cme/activities/{id}/submit [post]
func (c *CMEController) SubmitAnswers(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	if !user.LicenseIsVerified() {
		respondError(ctx, util.ErrLicenseNotVerified)
		return
	}

	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.CompletionService.SubmitAnswers(user.ID, util.MustParseUint(ctx.Param("id")), req.Answers, req.TimeSpent)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// GetAttemptStatus godoc
// @Summary Attempt usage for an activity
// @Tags cme
// @Produce json
// @Security BearerAuth
// @Param id path int true "activity id"
// @Success 200 {object} util.Response{data=service.AttemptStatus}
// @Failure 404 {object} util.Response
// @Router /api/cme/activities/{id}/attempts [get]
func (c *CMEController) GetAttemptStatus(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	status, err := c.ActivityService.GetAttemptStatus(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, status)
}
