package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tpcell/portal/internal/app/models/dto"
	"github.com/tpcell/portal/internal/pkg/apperrors"
	"github.com/tpcell/portal/internal/pkg/logger"
)

type errorRule struct {
	targets []error
	status  int
	code    dto.ErrorCode
	message string
}

// First match wins, so specific sentinels come before the generic ones they wrap.
var errorRules = []errorRule{
	{[]error{apperrors.ErrTokenExpired}, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{[]error{apperrors.ErrTokenInvalid, apperrors.ErrTokenRevoked}, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{[]error{apperrors.ErrTokenNotFound}, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found"},
	{[]error{apperrors.ErrInvalidCredentials}, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid email or password"},
	{[]error{apperrors.ErrUnauthorized}, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Authentication required"},

	{[]error{apperrors.ErrAccountDisabled}, http.StatusForbidden, dto.ErrorCodeAccountDisabled, "Account is disabled"},
	{[]error{apperrors.ErrEmailNotVerified}, http.StatusForbidden, dto.ErrorCodeEmailNotVerified, "Email address is not verified"},
	{[]error{apperrors.ErrPermissionDenied, apperrors.ErrNotVerifiedByAdmin, apperrors.ErrNotEligible}, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},

	{[]error{
		apperrors.ErrResourceNotFound, apperrors.ErrUserNotFound, apperrors.ErrStudentNotFound,
		apperrors.ErrCompanyNotFound, apperrors.ErrJAFNotFound, apperrors.ErrApplicationNotFound,
	}, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},

	{[]error{apperrors.ErrInvalidTransition}, http.StatusConflict, dto.ErrorCodeInvalidTransition, "Invalid status transition"},
	{[]error{
		apperrors.ErrResourceAlreadyExists, apperrors.ErrEmailAlreadyExists, apperrors.ErrRollNumberExists,
		apperrors.ErrAlreadyApplied,
	}, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
	{[]error{apperrors.ErrConflict, apperrors.ErrEmailAlreadyVerified, apperrors.ErrApplicationsClosed}, http.StatusConflict, dto.ErrorCodeConflict, "Conflict"},

	{[]error{apperrors.ErrFileTooLarge}, http.StatusRequestEntityTooLarge, dto.ErrorCodeFileRejected, "File too large"},
	{[]error{apperrors.ErrUnsupportedFileType}, http.StatusUnsupportedMediaType, dto.ErrorCodeFileRejected, "Unsupported file type"},
	{[]error{apperrors.ErrInvalidOTP, apperrors.ErrOTPAttemptsExceeded}, http.StatusBadRequest, dto.ErrorCodeInvalidOTP, "Invalid verification code"},
	{[]error{apperrors.ErrValidationFailed}, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{[]error{apperrors.ErrBadRequest, apperrors.ErrEmailDeliveryDisabled}, http.StatusBadRequest, dto.ErrorCodeBadRequest, "Bad request"},

	{[]error{apperrors.ErrRateLimited}, http.StatusTooManyRequests, dto.ErrorCodeRateLimited, "Too many requests"},
}

// ResolveError maps err to its HTTP status and error payload
func ResolveError(err error) (int, *dto.ErrorDetail) {
	for _, rule := range errorRules {
		for _, target := range rule.targets {
			if errors.Is(err, target) {
				detail := dto.NewErrorDetail(rule.code, messageFor(err, target, rule.message))
				if details := apperrors.DetailsOf(err); len(details) > 0 {
					detail = detail.WithDetails(details)
				}
				return rule.status, detail
			}
		}
	}
	return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
}

// Sentinel texts are user safe; arbitrary wrapped errors are not.
func messageFor(err, sentinel error, fallback string) string {
	if msg := apperrors.MessageOf(err, ""); msg != "" {
		return msg
	}
	if sentinel != nil {
		return capitalize(sentinel.Error())
	}
	return fallback
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}

// HandleAPIError writes the error response for err. Unknown errors are
// logged and reported as 500 without internal detail.
func HandleAPIError(c *gin.Context, err error) {
	status, detail := ResolveError(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int64("userID", c.GetInt64(ContextUserID)).
			Msg("Unhandled API error")
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

// HandleValidationError writes a 400 for a failed request binding
func HandleValidationError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
}

// Recovery turns panics into the standard 500 payload
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error().
			Interface("panic", recovered).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	})
}

// NoRoute answers unknown routes with the standard 404 payload
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Route not found")))
	}
}
