package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tpcell/portal/internal/app/models"
	"github.com/tpcell/portal/internal/app/models/dto"
	"github.com/tpcell/portal/internal/app/services"
	"github.com/tpcell/portal/internal/middleware"
	"github.com/tpcell/portal/internal/pkg/export"
	"github.com/tpcell/portal/internal/pkg/helpers"
)

// AdminController serves the placement cell console
type AdminController struct {
	adminService        *services.AdminService
	verificationService *services.VerificationService
	studentService      *services.StudentService
	companyService      *services.CompanyService
	applicationService  *services.ApplicationService
}

// NewAdminController creates a new AdminController
func NewAdminController(
	adminService *services.AdminService,
	verificationService *services.VerificationService,
	studentService *services.StudentService,
	companyService *services.CompanyService,
	applicationService *services.ApplicationService,
) *AdminController {
	return &AdminController{
		adminService:        adminService,
		verificationService: verificationService,
		studentService:      studentService,
		companyService:      companyService,
		applicationService:  applicationService,
	}
}

func studentFilter(ctx *gin.Context) (models.StudentFilter, int, int) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	return models.StudentFilter{
		Status: verificationStatusQuery(ctx),
		Branch: strings.TrimSpace(ctx.Query("branch")),
		Degree: strings.TrimSpace(ctx.Query("degree")),
		Batch:  queryInt(ctx, "batch"),
		Search: strings.TrimSpace(ctx.Query("search")),
		Offset: offset,
		Limit:  limit,
	}, page, size
}

// ListStudents lists students for review
// @Summary List students
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param status query string false "PENDING, VERIFIED or REJECTED"
// @Param branch query string false "Branch"
// @Param degree query string false "Degree"
// @Param batch query int false "Graduation year"
// @Param search query string false "Name, email or roll number"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]dto.StudentListItem}}
// @Failure 403 {object} dto.ErrorResponse "Not an administrator"
// @Router /admin/students [get]
func (c *AdminController) ListStudents(ctx *gin.Context) {
	filter, page, size := studentFilter(ctx)

	items, total, err := c.adminService.ListStudents(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondPage(ctx, items, total, page, size)
}

// GetStudent returns the complete record of a student
// @Summary Get student
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentProfileResponse}
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /admin/students/{id} [get]
func (c *AdminController) GetStudent(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	profile, err := c.studentService.GetProfileByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, profile, "")
}

// ExportStudents downloads the filtered students as a spreadsheet
// @Summary Export students
// @Tags admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param status query string false "PENDING, VERIFIED or REJECTED"
// @Param branch query string false "Branch"
// @Param batch query int false "Graduation year"
// @Success 200 {file} file
// @Router /admin/students/export [get]
func (c *AdminController) ExportStudents(ctx *gin.Context) {
	filter, _, _ := studentFilter(ctx)
	filter.Offset, filter.Limit = 0, 0

	var buf bytes.Buffer
	if err := c.adminService.ExportStudents(ctx.Request.Context(), filter, &buf); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	attachment(ctx, fmt.Sprintf("students-%s.xlsx", time.Now().Format("20060102")))
	ctx.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

// VerifyStudent marks a student verified
// @Summary Verify student
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.VerifyRequest true "Student"
// @Success 200 {object} dto.APIResponse "Student verified"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 409 {object} dto.ErrorResponse "Already verified"
// @Router /admin/verify-student [post]
func (c *AdminController) VerifyStudent(ctx *gin.Context) {
	var req dto.VerifyRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.verificationService.VerifyStudent(ctx.Request.Context(), middleware.GetActor(ctx), req.ID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil, "Student verified")
}

// RejectStudent rejects a student
// @Summary Reject student
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RejectRequest true "Student and remarks"
// @Success 200 {object} dto.APIResponse "Student rejected"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 409 {object} dto.ErrorResponse "Invalid transition"
// @Router /admin/reject-student [post]
func (c *AdminController) RejectStudent(ctx *gin.Context) {
	var req dto.RejectRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.verificationService.RejectStudent(ctx.Request.Context(), middleware.GetActor(ctx), req.ID, req.Remarks); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil, "Student rejected")
}

// BulkStudents verifies or rejects many students in one transaction
// @Summary Bulk verify or reject students
// @Description Items that are missing or cannot change are reported in failed; the rest commit together
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkVerificationRequest true "Students and action"
// @Success 200 {object} dto.APIResponse{data=dto.BulkResult}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Router /admin/students/bulk-verification [post]
func (c *AdminController) BulkStudents(ctx *gin.Context) {
	var req dto.BulkVerificationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	res := c.verificationService.BulkStudents(ctx.Request.Context(), middleware.GetActor(ctx), &req)
	respond(ctx, http.StatusOK, res, "")
}

// ListCompanies lists companies for review
// @Summary List companies
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param status query string false "PENDING, VERIFIED or REJECTED"
// @Param search query string false "Name or email"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]models.Company}}
// @Router /admin/companies [get]
func (c *AdminController) ListCompanies(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	companies, total, err := c.adminService.ListCompanies(ctx.Request.Context(), models.CompanyFilter{
		Status: verificationStatusQuery(ctx),
		Search: strings.TrimSpace(ctx.Query("search")),
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondPage(ctx, companies, total, page, size)
}

// GetCompany returns a company with its details
// @Summary Get company
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Company ID"
// @Success 200 {object} dto.APIResponse{data=models.Company}
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /admin/companies/{id} [get]
func (c *AdminController) GetCompany(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	company, err := c.companyService.GetCompany(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, company, "")
}

// VerifyCompany marks a company verified
// @Summary Verify company
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.VerifyRequest true "Company"
// @Success 200 {object} dto.APIResponse "Company verified"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 409 {object} dto.ErrorResponse "Already verified"
// @Router /admin/verify-company [post]
func (c *AdminController) VerifyCompany(ctx *gin.Context) {
	var req dto.VerifyRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.verificationService.VerifyCompany(ctx.Request.Context(), middleware.GetActor(ctx), req.ID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil, "Company verified")
}

// RejectCompany rejects a company
// @Summary Reject company
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RejectRequest true "Company and remarks"
// @Success 200 {object} dto.APIResponse "Company rejected"
// @Failure 409 {object} dto.ErrorResponse "Invalid transition"
// @Router /admin/reject-company [post]
func (c *AdminController) RejectCompany(ctx *gin.Context) {
	var req dto.RejectRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.verificationService.RejectCompany(ctx.Request.Context(), middleware.GetActor(ctx), req.ID, req.Remarks); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil, "Company rejected")
}

// BulkCompanies verifies or rejects many companies in one transaction
// @Summary Bulk verify or reject companies
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkVerificationRequest true "Companies and action"
// @Success 200 {object} dto.APIResponse{data=dto.BulkResult}
// @Router /admin/companies/bulk-verification [post]
func (c *AdminController) BulkCompanies(ctx *gin.Context) {
	var req dto.BulkVerificationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	res := c.verificationService.BulkCompanies(ctx.Request.Context(), middleware.GetActor(ctx), &req)
	respond(ctx, http.StatusOK, res, "")
}

// ListJAFs lists job announcement forms
// @Summary List JAFs
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param status query string false "PENDING_REVIEW, APPROVED or REJECTED"
// @Param jobStatus query string false "OPEN, CLOSED or CANCELLED"
// @Param companyId query int false "Company ID"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]models.JAF}}
// @Router /admin/jafs [get]
func (c *AdminController) ListJAFs(ctx *gin.Context) {
	filter, page, size := jafFilter(ctx)
	filter.CompanyID = queryInt64Ptr(ctx, "companyId")

	jafs, total, err := c.adminService.ListJAFs(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondPage(ctx, jafs, total, page, size)
}

// GetJAF returns any form
// @Summary Get JAF
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "JAF ID"
// @Success 200 {object} dto.APIResponse{data=models.JAF}
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /admin/jafs/{id} [get]
func (c *AdminController) GetJAF(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	jaf, err := c.adminService.GetJAF(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, jaf, "")
}

func (c *AdminController) reviewJAF(ctx *gin.Context, approve bool) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.JAFReviewRequest
	if ctx.Request.ContentLength > 0 && !middleware.BindJSON(ctx, &req) {
		return
	}

	actor := middleware.GetActor(ctx)
	var err error
	msg := "Job announcement approved"
	if approve {
		err = c.verificationService.ApproveJAF(ctx.Request.Context(), actor, id, req.Remarks)
	} else {
		err = c.verificationService.RejectJAF(ctx.Request.Context(), actor, id, req.Remarks)
		msg = "Job announcement rejected"
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil, msg)
}

// ApproveJAF publishes a form to students
// @Summary Approve JAF
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "JAF ID"
// @Param request body dto.JAFReviewRequest false "Remarks"
// @Success 200 {object} dto.APIResponse "Approved"
// @Failure 409 {object} dto.ErrorResponse "Already reviewed"
// @Router /admin/jafs/{id}/approve [post]
func (c *AdminController) ApproveJAF(ctx *gin.Context) {
	c.reviewJAF(ctx, true)
}

// RejectJAF rejects a form
// @Summary Reject JAF
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "JAF ID"
// @Param request body dto.JAFReviewRequest false "Remarks"
// @Success 200 {object} dto.APIResponse "Rejected"
// @Failure 409 {object} dto.ErrorResponse "Already reviewed"
// @Router /admin/jafs/{id}/reject [post]
func (c *AdminController) RejectJAF(ctx *gin.Context) {
	c.reviewJAF(ctx, false)
}

// BulkJAFs approves or rejects many forms in one transaction
// @Summary Bulk review JAFs
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkJAFReviewRequest true "Forms and action"
// @Success 200 {object} dto.APIResponse{data=dto.BulkResult}
// @Router /admin/jafs/bulk-review [post]
func (c *AdminController) BulkJAFs(ctx *gin.Context) {
	var req dto.BulkJAFReviewRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	res := c.verificationService.BulkJAFs(ctx.Request.Context(), middleware.GetActor(ctx), &req)
	respond(ctx, http.StatusOK, res, "")
}

// ListJAFApplications lists the applications to any form
// @Summary List applications of a JAF
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "JAF ID"
// @Success 200 {object} dto.APIResponse{data=[]models.ApplicationView}
// @Router /admin/jafs/{id}/applications [get]
func (c *AdminController) ListJAFApplications(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	apps, err := c.applicationService.ListForJAF(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, apps, "")
}

// UpdateApplicationStatus moves any application to another round
// @Summary Update application status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.ApplicationStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.ApplicationView}
// @Failure 409 {object} dto.ErrorResponse "Invalid transition"
// @Router /admin/applications/{id}/status [patch]
func (c *AdminController) UpdateApplicationStatus(ctx *gin.Context) {
	updateApplicationStatus(ctx, c.applicationService)
}

// DeactivateUser soft deletes a student or company account
// @Summary Deactivate user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse "Deactivated"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /admin/users/{id} [delete]
func (c *AdminController) DeactivateUser(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.adminService.DeactivateUser(ctx.Request.Context(), middleware.GetActor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil, "User deactivated")
}

// ListActivityLogs pages through the audit trail
// @Summary Activity log
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param action query string false "Action, e.g. STUDENT VERIFICATION"
// @Param actorId query int false "Actor user ID"
// @Param entityType query string false "STUDENT, COMPANY, JAF, APPLICATION, USER or SETTINGS"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]models.ActivityLog}}
// @Router /admin/activity-logs [get]
func (c *AdminController) ListActivityLogs(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	filter := models.ActivityLogFilter{
		Action:      strings.ToUpper(strings.TrimSpace(ctx.Query("action"))),
		ActorUserID: queryInt64Ptr(ctx, "actorId"),
		Offset:      offset,
		Limit:       limit,
	}
	if et := models.EntityType(strings.ToUpper(ctx.Query("entityType"))); et != "" {
		filter.EntityType = &et
	}

	logs, total, err := c.adminService.ListActivityLogs(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondPage(ctx, logs, total, page, size)
}

// Dashboard returns placement statistics
// @Summary Dashboard
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.DashboardStats}
// @Router /admin/dashboard [get]
func (c *AdminController) Dashboard(ctx *gin.Context) {
	stats, err := c.adminService.Dashboard(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, stats, "")
}
