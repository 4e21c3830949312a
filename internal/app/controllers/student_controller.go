package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tpcell/portal/internal/app/models/dto"
	"github.com/tpcell/portal/internal/app/services"
	"github.com/tpcell/portal/internal/middleware"
)

// StudentController serves the student portal
type StudentController struct {
	studentService *services.StudentService
	jobService     *services.JobService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, jobService *services.JobService) *StudentController {
	return &StudentController{
		studentService: studentService,
		jobService:     jobService,
	}
}

func userID(ctx *gin.Context) int64 {
	return ctx.GetInt64(middleware.ContextUserID)
}

// GetProfile returns the complete student record
// @Summary Get student profile
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentProfileResponse}
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Not a student"
// @Router /student/profile [get]
func (c *StudentController) GetProfile(ctx *gin.Context) {
	profile, err := c.studentService.GetProfile(ctx.Request.Context(), userID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, profile, "")
}

// UpdateProfile edits the basic profile
// @Summary Update student profile
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateStudentProfileRequest true "Profile"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Router /student/profile [put]
func (c *StudentController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateStudentProfileRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.UpdateProfile(ctx.Request.Context(), userID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, student, "Profile updated")
}

// GetAcademics returns the academic record
// @Summary Get academics
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.StudentAcademics}
// @Router /student/academics [get]
func (c *StudentController) GetAcademics(ctx *gin.Context) {
	academics, err := c.studentService.GetAcademics(ctx.Request.Context(), userID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, academics, "")
}

// UpdateAcademics replaces the academic record
// @Summary Update academics
// @Description Percentages must lie in [0,100], CGPA in [0,10], active backlogs may not exceed total backlogs
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AcademicsRequest true "Academics"
// @Success 200 {object} dto.APIResponse{data=models.StudentAcademics}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Router /student/academics [put]
func (c *StudentController) UpdateAcademics(ctx *gin.Context) {
	var req dto.AcademicsRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	academics, err := c.studentService.UpdateAcademics(ctx.Request.Context(), userID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, academics, "Academics updated")
}

// GetPersonalDetails returns the personal record
// @Summary Get personal details
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.StudentPersonalDetails}
// @Router /student/personal-details [get]
func (c *StudentController) GetPersonalDetails(ctx *gin.Context) {
	details, err := c.studentService.GetPersonalDetails(ctx.Request.Context(), userID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, details, "")
}

// UpdatePersonalDetails replaces the personal record
// @Summary Update personal details
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PersonalDetailsRequest true "Personal details"
// @Success 200 {object} dto.APIResponse{data=models.StudentPersonalDetails}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Router /student/personal-details [put]
func (c *StudentController) UpdatePersonalDetails(ctx *gin.Context) {
	var req dto.PersonalDetailsRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	details, err := c.studentService.UpdatePersonalDetails(ctx.Request.Context(), userID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, details, "Personal details updated")
}

// ListExperience lists internships, jobs and projects
// @Summary List experience
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.StudentExperience}
// @Router /student/experience [get]
func (c *StudentController) ListExperience(ctx *gin.Context) {
	items, err := c.studentService.ListExperience(ctx.Request.Context(), userID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, items, "")
}

// AddExperience adds an experience entry
// @Summary Add experience
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ExperienceRequest true "Experience"
// @Success 201 {object} dto.APIResponse{data=models.StudentExperience}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Router /student/experience [post]
func (c *StudentController) AddExperience(ctx *gin.Context) {
	var req dto.ExperienceRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	item, err := c.studentService.AddExperience(ctx.Request.Context(), userID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, item, "Experience added")
}

// UpdateExperience replaces an experience entry of the student
// @Summary Update experience
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Experience ID"
// @Param request body dto.ExperienceRequest true "Experience"
// @Success 200 {object} dto.APIResponse{data=models.StudentExperience}
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /student/experience/{id} [put]
func (c *StudentController) UpdateExperience(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.ExperienceRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	item, err := c.studentService.UpdateExperience(ctx.Request.Context(), userID(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, item, "Experience updated")
}

// DeleteExperience removes an experience entry of the student
// @Summary Delete experience
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param id path int true "Experience ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /student/experience/{id} [delete]
func (c *StudentController) DeleteExperience(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.studentService.DeleteExperience(ctx.Request.Context(), userID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil, "Experience deleted")
}

// ListDocuments lists the attached documents
// @Summary List documents
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.StudentDocument}
// @Router /student/documents [get]
func (c *StudentController) ListDocuments(ctx *gin.Context) {
	docs, err := c.studentService.ListDocuments(ctx.Request.Context(), userID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, docs, "")
}

// SaveDocument attaches an uploaded file, replacing a document of the same type
// @Summary Attach document
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.DocumentRequest true "Document"
// @Success 201 {object} dto.APIResponse{data=models.StudentDocument}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Router /student/documents [post]
func (c *StudentController) SaveDocument(ctx *gin.Context) {
	var req dto.DocumentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	doc, err := c.studentService.SaveDocument(ctx.Request.Context(), userID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, doc, "Document saved")
}

// DeleteDocument removes a document and its file
// @Summary Delete document
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param id path int true "Document ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /student/documents/{id} [delete]
func (c *StudentController) DeleteDocument(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.studentService.DeleteDocument(ctx.Request.Context(), userID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, nil, "Document deleted")
}

// DocumentRequirements returns the degree specific checklist
// @Summary Document checklist
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.DocumentRequirement}
// @Router /student/documents/requirements [get]
func (c *StudentController) DocumentRequirements(ctx *gin.Context) {
	reqs, err := c.studentService.DocumentRequirements(ctx.Request.Context(), userID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, reqs, "")
}

// ListJobs lists open jobs with the student's eligibility
// @Summary List jobs
// @Description Only approved, open JAFs of verified companies whose deadline has not passed are listed
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param formType query string false "JNF or INF"
// @Param search query string false "Title or company"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse{items=[]dto.JobResponse}}
// @Router /student/jobs [get]
func (c *StudentController) ListJobs(ctx *gin.Context) {
	filter, page, size := jafFilter(ctx)
	filter.Status, filter.JobStatus = nil, nil

	jobs, total, err := c.jobService.ListJobs(ctx.Request.Context(), userID(ctx), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondPage(ctx, jobs, total, page, size)
}

// GetJob returns one visible job
// @Summary Get job
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param id path int true "JAF ID"
// @Success 200 {object} dto.APIResponse{data=dto.JobResponse}
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /student/jobs/{id} [get]
func (c *StudentController) GetJob(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	job, err := c.jobService.GetJob(ctx.Request.Context(), userID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, job, "")
}

// Apply submits an application
// @Summary Apply for a job
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param id path int true "JAF ID"
// @Success 201 {object} dto.APIResponse{data=models.Application}
// @Failure 403 {object} dto.ErrorResponse "Not verified or not eligible"
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Failure 409 {object} dto.ErrorResponse "Already applied"
// @Router /student/jobs/{id}/apply [post]
func (c *StudentController) Apply(ctx *gin.Context) {
	id, ok := middleware.ParseIDParam(ctx, "id")
	if !ok {
		return
	}

	app, err := c.jobService.Apply(ctx.Request.Context(), userID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, app, "Application submitted")
}

// MyApplications lists the student's applications
// @Summary My applications
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.ApplicationView}
// @Router /student/applications [get]
func (c *StudentController) MyApplications(ctx *gin.Context) {
	apps, err := c.jobService.MyApplications(ctx.Request.Context(), userID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, apps, "")
}
