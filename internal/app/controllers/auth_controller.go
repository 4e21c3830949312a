// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/tpcell/portal/internal/app/models/dto"
	"github.com/tpcell/portal/internal/app/services"
	"github.com/tpcell/portal/internal/middleware"
)

// CookieConfig controls the session cookie written at login
type CookieConfig struct {
	Domain string
	Secure bool
}

// AuthController handles authentication related operations
type AuthController struct {
	authService *services.AuthService
	cookie      CookieConfig
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, cookie CookieConfig, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		cookie:      cookie,
		logger:      logger,
	}
}

func (c *AuthController) setSessionCookie(ctx *gin.Context, token string, maxAge int) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.SessionCookie, token, maxAge, "/", c.cookie.Domain, c.cookie.Secure, true)
}

// RegisterStudent handles student self registration
// @Summary Register a student
// @Description Creates a student account pending email and admin verification. A verification code is emailed.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterStudentRequest true "Student registration"
// @Success 201 {object} dto.APIResponse{data=dto.RegistrationResponse} "Registration successful"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 409 {object} dto.ErrorResponse "Email or roll number already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/register/student [post]
func (c *AuthController) RegisterStudent(ctx *gin.Context) {
	var req dto.RegisterStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.RegisterStudent(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, resp, resp.Message)
}

// RegisterCompany handles recruiter self registration
// @Summary Register a company
// @Description Creates a company account pending email and admin verification. A verification code is emailed.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterCompanyRequest true "Company registration"
// @Success 201 {object} dto.APIResponse{data=dto.RegistrationResponse} "Registration successful"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/register/company [post]
func (c *AuthController) RegisterCompany(ctx *gin.Context) {
	var req dto.RegisterCompanyRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.RegisterCompany(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, resp, resp.Message)
}

// VerifyOTP confirms an email address
// @Summary Verify email
// @Description Confirms the email address with the 6 digit code sent at registration
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.VerifyOTPRequest true "Email and code"
// @Success 200 {object} dto.APIResponse "Email verified"
// @Failure 400 {object} dto.ErrorResponse "Invalid or expired code"
// @Failure 409 {object} dto.ErrorResponse "Email already verified"
// @Router /auth/verify-otp [post]
func (c *AuthController) VerifyOTP(ctx *gin.Context) {
	var req dto.VerifyOTPRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.authService.VerifyOTP(ctx.Request.Context(), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, nil, "Email verified successfully")
}

// ResendOTP issues a fresh verification code
// @Summary Resend verification code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResendOTPRequest true "Email"
// @Success 200 {object} dto.APIResponse "Code sent if the account exists"
// @Failure 409 {object} dto.ErrorResponse "Email already verified"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Router /auth/resend-otp [post]
func (c *AuthController) ResendOTP(ctx *gin.Context) {
	var req dto.ResendOTPRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.authService.ResendOTP(ctx.Request.Context(), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, nil, "If the account exists, a new verification code has been sent")
}

// Login handles user login
// @Summary User login
// @Description Authenticates a user, returns a token pair and sets the HttpOnly session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 403 {object} dto.ErrorResponse "Account disabled"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, resp.Token.AccessToken, int(resp.Token.ExpiresIn))
	respond(ctx, http.StatusOK, resp, "Login successful")
}

// RefreshToken rotates the refresh token
// @Summary Refresh access token
// @Description Revokes the given refresh token and issues a new pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "Token refreshed"
// @Failure 401 {object} dto.ErrorResponse "Invalid refresh token"
// @Router /auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	token, err := c.authService.RefreshToken(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, token.AccessToken, int(token.ExpiresIn))
	respond(ctx, http.StatusOK, token, "")
}

// Logout revokes the session
// @Summary Logout
// @Description Revokes the given refresh token, or every token of the user when none is given, and clears the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.LogoutRequest false "Refresh token"
// @Success 200 {object} dto.APIResponse "Logged out"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.LogoutRequest
	if ctx.Request.ContentLength > 0 && !middleware.BindJSON(ctx, &req) {
		return
	}

	userID := ctx.GetInt64(middleware.ContextUserID)
	if err := c.authService.Logout(ctx.Request.Context(), userID, req.RefreshToken); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, "", -1)
	respond(ctx, http.StatusOK, nil, "Logged out")
}

// Me returns the session user
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.MeResponse}
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	me, err := c.authService.Me(ctx.Request.Context(), ctx.GetInt64(middleware.ContextUserID))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, me, "")
}

// Contact forwards a public contact form to the placement cell
// @Summary Contact the placement cell
// @Tags contact
// @Accept json
// @Produce json
// @Param request body dto.ContactRequest true "Message"
// @Success 200 {object} dto.APIResponse "Message sent"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Router /contact [post]
func (c *AuthController) Contact(ctx *gin.Context) {
	var req dto.ContactRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.authService.Contact(ctx.Request.Context(), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, nil, "Your message has been sent")
}
