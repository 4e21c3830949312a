package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tpcell/portal/internal/app/models"
	"github.com/tpcell/portal/internal/app/models/dto"
	"github.com/tpcell/portal/internal/app/services"
	"github.com/tpcell/portal/internal/middleware"
)

// UploadController accepts file uploads from signed in users
type UploadController struct {
	uploadService *services.UploadService
}

// NewUploadController creates a new UploadController
func NewUploadController(uploadService *services.UploadService) *UploadController {
	return &UploadController{uploadService: uploadService}
}

// Upload stores a file and returns its public URL
// @Summary Upload file
// @Description Accepts PDF, JPEG, PNG or WEBP. The type is detected from content, not the extension.
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File"
// @Param folder formData string false "Sub folder, e.g. resumes"
// @Success 201 {object} dto.APIResponse{data=dto.UploadResponse}
// @Failure 400 {object} dto.ErrorResponse "Missing file or unsupported type"
// @Failure 413 {object} dto.ErrorResponse "File too large"
// @Router /upload [post]
func (c *UploadController) Upload(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A file is required in the 'file' field"),
		))
		return
	}

	role := models.RoleType(ctx.GetString(middleware.ContextRoleType))
	resp, err := c.uploadService.Upload(ctx.Request.Context(), userID(ctx), role, header, ctx.PostForm("folder"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, resp, "File uploaded")
}
