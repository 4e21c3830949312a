package controllers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tpcell/portal/internal/app/models/dto"
	"github.com/tpcell/portal/internal/app/services"
	"github.com/tpcell/portal/internal/middleware"
	"github.com/tpcell/portal/internal/pkg/export"
)

// CompanyController serves the recruiter portal
type CompanyController struct {
	companyService     *services.CompanyService
	applicationService *services.ApplicationService
}

// NewCompanyController creates a new CompanyController
func NewCompanyController(companyService *services.CompanyService, applicationService *services.ApplicationService) *CompanyController {
	return &CompanyController{
		companyService:     companyService,
		applicationService: applicationService,
	}
}

// GetProfile returns the company with its details
// @Summary Get company profile
// @Tags company
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.Company}
// @Failure 403 {object} dto.ErrorResponse "Not a company"
// @Router /company/profile [get]
func (c *CompanyController) GetProfile(ctx *gin.Context) {
	company, err := c.companyService.GetProfile(ctx.Request.Context(), userID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, company, "")
}

// UpdateProfile edits the company and its HR contacts
// @Summary Update company profile
// @Tags company
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateCompanyProfileRequest true "Profile"
// @Success 200 {object} dto.APIResponse{data=models.Company}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Router /company/profile [put]
func (c *CompanyController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateCompanyProfileRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	company, err := c.companyService.UpdateProfile(ctx.Request.Context(), userID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, company, "Profile updated")
}

// CreateJAF submits a job announcement form for review
// @Summary Create JAF
// @Description The company must be verified. eligibleBatches, eligibleBranches, eligibleDegrees and selectionProcess must be non-empty; a JNF needs ctc and an INF needs stipend.
// @Tags company
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.JAFRequest true "Job announcement form"
// @Success 201 {object} dto.APIResponse{data=models.JAF}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 403 {object} dto.ErrorResponse "Company not verified"
// @Router /company/jaf [post]
func (c *CompanyController) CreateJAF(ctx *gin.Context) {
	var req dto.JAFRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	jaf, err := c.companyService.CreateJAF(ctx.Request.Context(), userID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, jaf, "Job announcement submitted for review")
}

// ListJAFs lists the company's forms
// @Summary List own JAFs
// @Tags company
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param status query string false "PENDING_REVIEW, APPROVED or REJECTED"
// @Param jobStatus query string false "OPEN, CLOSED or CANCELLED"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]models.JAF}}
// @Router /company/jaf [get]
func (c *CompanyController) ListJAFs(ctx *gin.Context) {
	filter, page, size := jafFilter(ctx)

	jafs, total, err := c.companyService.ListJAFs(ctx.Request.Context(), userID(ctx), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondPage(ctx, jafs, total, page, size)
}

// GetJAF returns one of the company's forms
// @Summary Get own JAF
// @Tags company
// @Produce json
// @Security BearerAuth
// @Param id path int true "JAF ID"
// @Success 200 {object} dto.APIResponse{data=models.JAF}
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /company/jaf/{id} [get]
func (c *CompanyController) GetJAF(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	jaf, err := c.companyService.GetJAF(ctx.Request.Context(), userID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, jaf, "")
}

// UpdateJAF edits a form still pending review
// @Summary Update JAF
// @Tags company
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "JAF ID"
// @Param request body dto.JAFRequest true "Job announcement form"
// @Success 200 {object} dto.APIResponse{data=models.JAF}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 409 {object} dto.ErrorResponse "Already reviewed"
// @Router /company/jaf/{id} [put]
func (c *CompanyController) UpdateJAF(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.JAFRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	jaf, err := c.companyService.UpdateJAF(ctx.Request.Context(), userID(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, jaf, "Job announcement updated")
}

// UpdateJobStatus closes or cancels recruitment
// @Summary Change job status
// @Tags company
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "JAF ID"
// @Param request body dto.JobStatusRequest true "New job status"
// @Success 200 {object} dto.APIResponse{data=models.JAF}
// @Failure 409 {object} dto.ErrorResponse "Invalid transition"
// @Router /company/jaf/{id}/job-status [patch]
func (c *CompanyController) UpdateJobStatus(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.JobStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	jaf, err := c.companyService.UpdateJobStatus(ctx.Request.Context(), userID(ctx), id, req.JobStatus)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, jaf, "Job status updated")
}

// ListApplicants lists the applications to one of the company's forms
// @Summary List applicants
// @Tags company
// @Produce json
// @Security BearerAuth
// @Param id path int true "JAF ID"
// @Success 200 {object} dto.APIResponse{data=[]models.ApplicationView}
// @Router /company/jaf/{id}/applications [get]
func (c *CompanyController) ListApplicants(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	apps, err := c.companyService.ListApplicants(ctx.Request.Context(), userID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, apps, "")
}

// ExportApplicants downloads the applicants as a spreadsheet
// @Summary Export applicants
// @Tags company
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param id path int true "JAF ID"
// @Success 200 {file} file
// @Router /company/jaf/{id}/applications/export [get]
func (c *CompanyController) ExportApplicants(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	var buf bytes.Buffer
	filename, err := c.companyService.ExportApplicants(ctx.Request.Context(), userID(ctx), id, &buf)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	attachment(ctx, filename)
	ctx.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

// UpdateApplicationStatus moves an applicant to another round
// @Summary Update application status
// @Description Forward moves only; REJECTED is allowed from any non-final status
// @Tags company
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.ApplicationStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.ApplicationView}
// @Failure 403 {object} dto.ErrorResponse "Not the owning company"
// @Failure 409 {object} dto.ErrorResponse "Invalid transition"
// @Router /company/applications/{id}/status [patch]
func (c *CompanyController) UpdateApplicationStatus(ctx *gin.Context) {
	updateApplicationStatus(ctx, c.applicationService)
}

func updateApplicationStatus(ctx *gin.Context, svc *services.ApplicationService) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.ApplicationStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	view, err := svc.UpdateStatus(ctx.Request.Context(), middleware.GetActor(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, view, "Application status updated")
}
