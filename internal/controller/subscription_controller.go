package controller

import (
	"io"
	"net/http"

	"medipublish_backend/internal/service"
	"medipublish_backend/internal/util"
	"medipublish_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SubscriptionController struct {
	SubscriptionService *service.SubscriptionService
}

func NewSubscriptionController(subscriptionService *service.SubscriptionService) *SubscriptionController {
	return &SubscriptionController{SubscriptionService: subscriptionService}
}

// ListPlans godoc
// @Summary Available subscription plans
// @Tags subscription
// @Produce json
// @Success 200 {object} util.Response{data=[]model.SubscriptionPlan}
// @Router /api/plans [get]
func (c *SubscriptionController) ListPlans(ctx *gin.Context) {
	plans, err := c.SubscriptionService.ListPlans()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, plans)
}

// GetCurrent godoc
// @Summary Own active subscription
// @Tags subscription
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.Subscription}
// @Failure 404 {object} util.Response "no active subscription"
// @Router /api/subscription [get]
func (c *SubscriptionController) GetCurrent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sub, err := c.SubscriptionService.GetCurrent(claims.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, sub)
}

type SubscribeRequest struct {
	PlanCode string `json:"planCode" binding:"required"`
}

// Subscribe godoc
// @Summary Start a subscription
// @Description Opens a Stripe subscription; activation arrives via webhook once payment settles
// @Tags subscription
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SubscribeRequest true "plan"
// @Success 201 {object} util.Response{data=model.Subscription}
// @Failure 404 {object} util.Response "unknown plan"
// @Failure 409 {object} util.Response "already subscribed"
// @Router /api/subscription [post]
func (c *SubscriptionController) Subscribe(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubscribeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sub, err := c.SubscriptionService.Subscribe(claims.UserID, req.PlanCode)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, sub)
}

// Cancel godoc
// @Summary Cancel own subscription
// @Tags subscription
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "no active subscription"
// @Router /api/subscription [delete]
func (c *SubscriptionController) Cancel(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.SubscriptionService.Cancel(claims.UserID); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// StripeWebhook godoc
// @Summary Stripe event sink
// @Description Signature-verified; unrecognized event types are acknowledged
// @Tags subscription
// @Accept json
// @Produce json
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "bad signature or payload"
// @Router /api/webhooks/stripe [post]
func (c *SubscriptionController) StripeWebhook(ctx *gin.Context) {
	payload, err := io.ReadAll(http.MaxBytesReader(ctx.Writer, ctx.Request.Body, 65536))
	if err != nil {
		util.BadRequest(ctx, "unreadable payload")
		return
	}

	if err := c.SubscriptionService.HandleWebhook(payload, ctx.GetHeader("Stripe-Signature")); err != nil {
		logger.Log.Warn("stripe webhook rejected", zap.Error(err))
		util.BadRequest(ctx, "webhook rejected")
		return
	}
	util.Success(ctx, nil)
}
