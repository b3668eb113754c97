package controller

import (
	"medipublish_backend/internal/model"
	"medipublish_backend/internal/service"
	"medipublish_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TranscriptController struct {
	TranscriptService *service.TranscriptService
}

func NewTranscriptController(transcriptService *service.TranscriptService) *TranscriptController {
	return &TranscriptController{TranscriptService: transcriptService}
}

// GetTranscript godoc
// @Summary Own CME transcript
// @Description Rollup of all completions with credit totals by specialty and credit type
// @Tags transcript
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.Transcript}
// @Router /api/transcript [get]
func (c *TranscriptController) GetTranscript(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	transcript, err := c.TranscriptService.GetTranscript(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, transcript)
}

// CheckRequirements godoc
// @Summary Progress against a specialty's CME mandate
// @Tags transcript
// @Produce json
// @Security BearerAuth
// @Param specialty query string true "specialty name"
// @Success 200 {object} util.Response{data=service.RequirementStatus}
// @Failure 404 {object} util.Response "unknown specialty"
// @Router /api/transcript/requirements [get]
func (c *TranscriptController) CheckRequirements(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	specialty := ctx.Query("specialty")
	if specialty == "" {
		util.BadRequest(ctx, "specialty is required")
		return
	}

	status, err := c.TranscriptService.CheckRequirements(claims.UserID, specialty)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, status)
}

type ExportRequest struct {
	Format     string `json:"format" binding:"required"`
	StateBoard string `json:"stateBoard"`
}

// ExportTranscript godoc
// @Summary Export the transcript as a document
// @Description Renders PDF, CSV, or XML and returns a durable URL
// @Tags transcript
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ExportRequest true "format and optional state board"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "unsupported format"
// @Router /api/transcript/export [post]
func (c *TranscriptController) ExportTranscript(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ExportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	url, err := c.TranscriptService.ExportTranscript(ctx.Request.Context(), claims.UserID, req.Format, req.StateBoard)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}

// ListRequirements godoc
// @Summary All specialty requirement definitions
// @Tags transcript
// @Produce json
// @Success 200 {object} util.Response{data=[]model.SpecialtyRequirement}
// @Router /api/requirements [get]
func (c *TranscriptController) ListRequirements(ctx *gin.Context) {
	reqs, err := c.TranscriptService.ListRequirements()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, reqs)
}

// SaveRequirement godoc
// @Summary Create or replace a specialty requirement (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.SpecialtyRequirement true "requirement definition"
// @Success 200 {object} util.Response{data=model.SpecialtyRequirement}
// @Router /api/admin/requirements [put]
func (c *TranscriptController) SaveRequirement(ctx *gin.Context) {
	var req model.SpecialtyRequirement
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Specialty == "" || req.RequiredHours <= 0 {
		util.BadRequest(ctx, "specialty and requiredHours are required")
		return
	}

	if err := c.TranscriptService.SaveRequirement(&req); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, req)
}
