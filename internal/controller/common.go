package controller

import (
	"errors"
	"net/http"
	"strconv"

	"medipublish_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondError maps domain sentinel errors onto HTTP statuses. Anything
// unrecognized is logged and reported as a 500.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrActivityNotFound),
		errors.Is(err, util.ErrContentNotFound),
		errors.Is(err, util.ErrPlanNotFound),
		errors.Is(err, util.ErrUnknownSpecialty),
		errors.Is(err, util.ErrSubscriptionMissing),
		errors.Is(err, util.ErrActivityNotLive):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, util.ErrActivityExpired):
		util.Error(ctx, http.StatusGone, err.Error())
	case errors.Is(err, util.ErrAttemptsExhausted),
		errors.Is(err, util.ErrAlreadySubscribed),
		errors.Is(err, util.ErrEmailRegistered):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrLicenseNotVerified):
		util.Error(ctx, http.StatusForbidden, err.Error())
	case errors.Is(err, util.ErrUnsupportedFormat),
		errors.Is(err, util.ErrInvalidVideoExt):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrUnauthorized):
		util.Unauthorized(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

func pageParams(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	return page, limit
}
