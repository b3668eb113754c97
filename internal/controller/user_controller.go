package controller

import (
	"medipublish_backend/internal/model"
	"medipublish_backend/internal/service"
	"medipublish_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

type UpdateProfileRequest struct {
	Name          string `json:"name" binding:"required"`
	Specialty     string `json:"specialty"`
	Avatar        string `json:"avatar"`
	LicenseNumber string `json:"licenseNumber"`
	LicenseState  string `json:"licenseState" binding:"omitempty,len=2"`
	NPINumber     string `json:"npiNumber" binding:"omitempty,len=10"`
}

// UpdateProfile godoc
// @Summary Update own profile
// @Description Changing license fields resets verification to pending
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateProfileRequest true "profile fields"
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/users/me [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(claims.UserID, &model.User{
		Name:          req.Name,
		Specialty:     req.Specialty,
		Avatar:        req.Avatar,
		LicenseNumber: req.LicenseNumber,
		LicenseState:  req.LicenseState,
		NPINumber:     req.NPINumber,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ChangePassword godoc
// @Summary Change own password
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ChangePasswordRequest true "passwords"
// @Success 200 {object} util.Response
// @Router /api/users/me/password [put]
func (c *UserController) ChangePassword(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.ChangePassword(claims.UserID, req.OldPassword, req.NewPassword); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, nil)
}

// ListUsers godoc
// @Summary List users (admin)
// @Description Filterable by license status for the verification queue
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Param licenseStatus query string false "pending | verified | rejected"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	page, limit := pageParams(ctx)
	users, total, err := c.UserService.ListUsers(page, limit, ctx.Query("licenseStatus"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: users, Total: total, Page: page, Limit: limit})
}

type ReviewLicenseRequest struct {
	Approve bool `json:"approve"`
}

// ReviewLicense godoc
// @Summary Decide a pending license review (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "user id"
// @Param body body ReviewLicenseRequest true "decision"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response
// @Router /api/admin/users/{id}/license [put]
func (c *UserController) ReviewLicense(ctx *gin.Context) {
	var req ReviewLicenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.ReviewLicense(util.MustParseUint(ctx.Param("id")), req.Approve)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

type DisableUserRequest struct {
	Disabled bool `json:"disabled"`
}

// DisableUser godoc
// @Summary Disable or re-enable an account (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "user id"
// @Param body body DisableUserRequest true "flag"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{id}/disable [put]
func (c *UserController) DisableUser(ctx *gin.Context) {
	var req DisableUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.DisableUser(util.MustParseUint(ctx.Param("id")), req.Disabled); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
