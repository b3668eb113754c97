package controller

import (
	"strconv"

	"medipublish_backend/internal/service"
	"medipublish_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// GetOverview godoc
// @Summary Platform analytics overview (admin)
// @Description Event counts, top content, active subscribers over a trailing window
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param days query int false "trailing window in days, default 30"
// @Success 200 {object} util.Response{data=service.Overview}
// @Router /api/admin/analytics [get]
func (c *AnalyticsController) GetOverview(ctx *gin.Context) {
	days, _ := strconv.Atoi(ctx.DefaultQuery("days", "30"))
	if days < 1 || days > 365 {
		days = 30
	}

	overview, err := c.AnalyticsService.GetOverview(days)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}
