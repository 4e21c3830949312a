package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tpcell/portal/internal/app/controllers"
	"github.com/tpcell/portal/internal/app/models"
	"github.com/tpcell/portal/internal/app/models/dto"
	"github.com/tpcell/portal/internal/middleware"
	"github.com/tpcell/portal/internal/pkg/websocket"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Auth       *controllers.AuthController
	Student    *controllers.StudentController
	Company    *controllers.CompanyController
	Admin      *controllers.AdminController
	SuperAdmin *controllers.SuperAdminController
	Upload     *controllers.UploadController
	Websocket  *websocket.Handler
}

// RateLimit configures the budget applied to the public and upload routes.
// A nil Limiter disables limiting.
type RateLimit struct {
	Limiter  middleware.Limiter
	Requests int
	Window   time.Duration
}

func (r RateLimit) handler(name string) gin.HandlerFunc {
	return middleware.RateLimit(r.Limiter, name, r.Requests, r.Window)
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware, limits RateLimit) {
	api := router.Group("/api")

	// --- Public Auth routes ---
	auth := api.Group("/auth")
	auth.Use(limits.handler("auth"))
	{
		auth.POST("/register/student", c.Auth.RegisterStudent)
		auth.POST("/register/company", c.Auth.RegisterCompany)
		auth.POST("/verify-otp", c.Auth.VerifyOTP)
		auth.POST("/resend-otp", c.Auth.ResendOTP)
		auth.POST("/login", c.Auth.Login)
		auth.POST("/refresh", c.Auth.RefreshToken)
	}

	api.POST("/contact", limits.handler("contact"), c.Auth.Contact)

	// --- Authenticated Routes Group ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	// Unverified users can still see who they are and sign out
	authenticated.POST("/auth/logout", c.Auth.Logout)
	authenticated.GET("/auth/me", c.Auth.Me)

	verified := authenticated.Group("")
	verified.Use(authMiddleware.EmailVerificationRequired())
	{
		verified.POST("/upload", limits.handler("upload"), c.Upload.Upload)
		verified.GET("/notifications/ws", c.Websocket.HandleConnection)

		student := verified.Group("/student")
		student.Use(authMiddleware.RoleRequired(models.RoleStudent))
		{
			student.GET("/profile", c.Student.GetProfile)
			student.PUT("/profile", c.Student.UpdateProfile)
			student.GET("/academics", c.Student.GetAcademics)
			student.PUT("/academics", c.Student.UpdateAcademics)
			student.GET("/personal-details", c.Student.GetPersonalDetails)
			student.PUT("/personal-details", c.Student.UpdatePersonalDetails)

			student.GET("/experience", c.Student.ListExperience)
			student.POST("/experience", c.Student.AddExperience)
			student.PUT("/experience/:id", c.Student.UpdateExperience)
			student.DELETE("/experience/:id", c.Student.DeleteExperience)

			student.GET("/documents", c.Student.ListDocuments)
			student.POST("/documents", c.Student.SaveDocument)
			student.GET("/documents/requirements", c.Student.DocumentRequirements)
			student.DELETE("/documents/:id", c.Student.DeleteDocument)

			student.GET("/jobs", c.Student.ListJobs)
			student.GET("/jobs/:id", c.Student.GetJob)
			student.POST("/jobs/:id/apply", c.Student.Apply)
			student.GET("/applications", c.Student.MyApplications)
		}

		company := verified.Group("/company")
		company.Use(authMiddleware.RoleRequired(models.RoleCompany))
		{
			company.GET("/profile", c.Company.GetProfile)
			company.PUT("/profile", c.Company.UpdateProfile)

			company.POST("/jaf", c.Company.CreateJAF)
			company.GET("/jaf", c.Company.ListJAFs)
			company.GET("/jaf/:id", c.Company.GetJAF)
			company.PUT("/jaf/:id", c.Company.UpdateJAF)
			company.PATCH("/jaf/:id/job-status", c.Company.UpdateJobStatus)
			company.GET("/jaf/:id/applications", c.Company.ListApplicants)
			company.GET("/jaf/:id/applications/export", c.Company.ExportApplicants)

			company.PATCH("/applications/:id/status", c.Company.UpdateApplicationStatus)
		}

		admin := verified.Group("/admin")
		admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			admin.GET("/students", c.Admin.ListStudents)
			admin.GET("/students/export", c.Admin.ExportStudents)
			admin.GET("/students/:id", c.Admin.GetStudent)
			admin.POST("/verify-student", c.Admin.VerifyStudent)
			admin.POST("/reject-student", c.Admin.RejectStudent)
			admin.POST("/students/bulk-verification", c.Admin.BulkStudents)

			admin.GET("/companies", c.Admin.ListCompanies)
			admin.GET("/companies/:id", c.Admin.GetCompany)
			admin.POST("/verify-company", c.Admin.VerifyCompany)
			admin.POST("/reject-company", c.Admin.RejectCompany)
			admin.POST("/companies/bulk-verification", c.Admin.BulkCompanies)

			admin.GET("/jafs", c.Admin.ListJAFs)
			admin.POST("/jafs/bulk-review", c.Admin.BulkJAFs)
			admin.GET("/jafs/:id", c.Admin.GetJAF)
			admin.POST("/jafs/:id/approve", c.Admin.ApproveJAF)
			admin.POST("/jafs/:id/reject", c.Admin.RejectJAF)
			admin.GET("/jafs/:id/applications", c.Admin.ListJAFApplications)

			admin.PATCH("/applications/:id/status", c.Admin.UpdateApplicationStatus)
			admin.DELETE("/users/:id", c.Admin.DeactivateUser)
			admin.GET("/activity-logs", c.Admin.ListActivityLogs)
			admin.GET("/dashboard", c.Admin.Dashboard)
		}

		superAdmin := verified.Group("/super-admin")
		superAdmin.Use(authMiddleware.RoleRequired(models.RoleSuperAdmin))
		{
			superAdmin.GET("/admins", c.SuperAdmin.ListAdmins)
			superAdmin.POST("/admins", c.SuperAdmin.CreateAdmin)
			superAdmin.PUT("/admins/:id", c.SuperAdmin.UpdateAdmin)
			superAdmin.DELETE("/admins/:id", c.SuperAdmin.DeleteAdmin)

			superAdmin.GET("/settings", c.SuperAdmin.GetSettings)
			superAdmin.PUT("/settings", c.SuperAdmin.UpdateSettings)
			superAdmin.POST("/settings/test-email", c.SuperAdmin.SendTestEmail)
		}
	}

	// Health check endpoint (public)
	api.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}, ""))
	})
}
