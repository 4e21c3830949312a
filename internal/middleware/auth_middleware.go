package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tpcell/portal/internal/app/models"
	"github.com/tpcell/portal/internal/app/models/dto"
	"github.com/tpcell/portal/internal/pkg/apperrors"
	"github.com/tpcell/portal/internal/pkg/auth"
	"github.com/tpcell/portal/internal/pkg/logger"
)

// Context keys set by JWTAuth
const (
	ContextUserID   = "userID"
	ContextEmail    = "email"
	ContextRoleType = "roleType"
	ContextSession  = "session"
)

// SessionCookie carries the access token for browser clients
const SessionCookie = "session"

// SessionLookup loads the current state of an authenticated user
type SessionLookup interface {
	GetSessionUser(ctx context.Context, userID int64) (*models.SessionUser, error)
}

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
	sessions   SessionLookup
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, sessions SessionLookup) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		sessions:   sessions,
	}
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, details string) {
	errorDetail := dto.NewErrorDetail(code, "Authentication required").WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

// tokenFromRequest reads the access token from the Authorization header,
// the session cookie or the token query parameter, in that order.
func tokenFromRequest(c *gin.Context) (string, error) {
	if header := c.GetHeader("Authorization"); header != "" {
		return auth.ExtractBearerToken(header)
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie, nil
	}
	if token := c.Query("token"); token != "" {
		return token, nil
	}
	return "", nil
}

// JWTAuth validates the access token and reloads the user on every
// request, so deactivation and role changes take effect immediately.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := tokenFromRequest(c)
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Invalid token format")
			return
		}
		if tokenString == "" {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authorization header missing")
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Token has expired")
				return
			}
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token")
			return
		}

		session, err := m.sessions.GetSessionUser(c.Request.Context(), claims.UserID)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrUserNotFound, apperrors.ErrResourceNotFound) {
				abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Session is no longer valid")
				return
			}
			logger.Error().Err(err).Int64("userID", claims.UserID).Msg("Failed to load session user")
			HandleAPIError(c, err)
			return
		}

		if !session.IsActive {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeAccountDisabled, "Account is disabled")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}
		if session.RoleType != claims.Role() {
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Session is no longer valid")
			return
		}

		c.Set(ContextUserID, session.ID)
		c.Set(ContextEmail, session.Email)
		c.Set(ContextRoleType, string(session.RoleType))
		c.Set(ContextSession, session)

		c.Next()
	}
}

// EmailVerificationRequired rejects users who have not confirmed their email
func (m *AuthMiddleware) EmailVerificationRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := GetSession(c)
		if !ok {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "User information not found")
			return
		}

		if !session.IsEmailVerified {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeEmailNotVerified, "Email not verified").
				WithDetails("Please verify your email address before accessing this resource")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}

// RoleRequired allows only the listed roles. SUPER_ADMIN is accepted
// wherever ADMIN is.
func (m *AuthMiddleware) RoleRequired(roles ...models.RoleType) gin.HandlerFunc {
	allowed := make(map[models.RoleType]bool, len(roles)+1)
	for _, r := range roles {
		allowed[r] = true
		if r == models.RoleAdmin {
			allowed[models.RoleSuperAdmin] = true
		}
	}

	return func(c *gin.Context) {
		role, exists := c.Get(ContextRoleType)
		if !exists {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "User role not found")
			return
		}

		roleStr, ok := role.(string)
		if !ok || !allowed[models.RoleType(roleStr)] {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
				WithDetails("You don't have sufficient permissions for this operation")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}

// GetSession returns the session user set by JWTAuth
func GetSession(c *gin.Context) (*models.SessionUser, bool) {
	v, ok := c.Get(ContextSession)
	if !ok {
		return nil, false
	}
	session, ok := v.(*models.SessionUser)
	return session, ok && session != nil
}

// GetActor describes the caller for activity logging
func GetActor(c *gin.Context) models.Actor {
	return models.Actor{
		UserID:    c.GetInt64(ContextUserID),
		Role:      models.RoleType(c.GetString(ContextRoleType)),
		IPAddress: c.ClientIP(),
	}
}
