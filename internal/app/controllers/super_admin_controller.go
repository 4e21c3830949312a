package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tpcell/portal/internal/app/models/dto"
	"github.com/tpcell/portal/internal/app/services"
	"github.com/tpcell/portal/internal/middleware"
	"github.com/tpcell/portal/internal/pkg/helpers"
)

// SuperAdminController manages administrators and system settings
type SuperAdminController struct {
	superAdminService *services.SuperAdminService
}

// NewSuperAdminController creates a new SuperAdminController
func NewSuperAdminController(superAdminService *services.SuperAdminService) *SuperAdminController {
	return &SuperAdminController{superAdminService: superAdminService}
}

// ListAdmins lists administrators
// @Summary List administrators
// @Tags super-admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]dto.UserResponse}}
// @Failure 403 {object} dto.ErrorResponse "Not a super administrator"
// @Router /super-admin/admins [get]
func (c *SuperAdminController) ListAdmins(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	admins, total, err := c.superAdminService.ListAdmins(ctx.Request.Context(), offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondPage(ctx, admins, total, page, size)
}

// CreateAdmin creates an administrator
// @Summary Create administrator
// @Tags super-admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAdminRequest true "Administrator"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /super-admin/admins [post]
func (c *SuperAdminController) CreateAdmin(ctx *gin.Context) {
	var req dto.CreateAdminRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	admin, err := c.superAdminService.CreateAdmin(ctx.Request.Context(), middleware.GetActor(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, admin, "Administrator created")
}

// UpdateAdmin edits an administrator
// @Summary Update administrator
// @Tags super-admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body dto.UpdateAdminRequest true "Administrator"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse}
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /super-admin/admins/{id} [put]
func (c *SuperAdminController) UpdateAdmin(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateAdminRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	admin, err := c.superAdminService.UpdateAdmin(ctx.Request.Context(), middleware.GetActor(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, admin, "Administrator updated")
}

// DeleteAdmin soft deletes an administrator
// @Summary Delete administrator
// @Description Sets deleted_at, clears is_active and writes the activity log in one transaction
// @Tags super-admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse "Deleted"
// @Failure 400 {object} dto.ErrorResponse "Cannot delete yourself"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /super-admin/admins/{id} [delete]
func (c *SuperAdminController) DeleteAdmin(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.superAdminService.DeleteAdmin(ctx.Request.Context(), middleware.GetActor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil, "Administrator deleted")
}

// GetSettings returns the system settings
// @Summary Get settings
// @Description The SMTP password is never returned
// @Tags super-admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SettingsResponse}
// @Router /super-admin/settings [get]
func (c *SuperAdminController) GetSettings(ctx *gin.Context) {
	settings, err := c.superAdminService.GetSettings(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, settings, "")
}

// UpdateSettings edits the system settings
// @Summary Update settings
// @Tags super-admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateSettingsRequest true "Settings"
// @Success 200 {object} dto.APIResponse{data=dto.SettingsResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Router /super-admin/settings [put]
func (c *SuperAdminController) UpdateSettings(ctx *gin.Context) {
	var req dto.UpdateSettingsRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	settings, err := c.superAdminService.UpdateSettings(ctx.Request.Context(), middleware.GetActor(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, settings, "Settings updated")
}

// SendTestEmail sends a message with the stored settings
// @Summary Send test email
// @Tags super-admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.TestEmailRequest true "Recipient"
// @Success 200 {object} dto.APIResponse "Sent"
// @Failure 400 {object} dto.ErrorResponse "Email is not configured or delivery failed"
// @Router /super-admin/settings/test-email [post]
func (c *SuperAdminController) SendTestEmail(ctx *gin.Context) {
	var req dto.TestEmailRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.superAdminService.SendTestEmail(ctx.Request.Context(), req.To); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil, "Test email sent")
}
