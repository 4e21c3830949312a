package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tpcell/portal/internal/app/models"
	"github.com/tpcell/portal/internal/app/models/dto"
	"github.com/tpcell/portal/internal/pkg/apperrors"
	"github.com/tpcell/portal/internal/pkg/auth"
)

type fakeSessions map[int64]*models.SessionUser

func (f fakeSessions) GetSessionUser(_ context.Context, userID int64) (*models.SessionUser, error) {
	if s, ok := f[userID]; ok {
		return s, nil
	}
	return nil, apperrors.ErrUserNotFound
}

var testJWT = auth.NewJWTService(auth.JWTConfig{
	SecretKey:       "middleware-test",
	AccessTokenExp:  time.Minute,
	RefreshTokenExp: time.Hour,
	TokenIssuer:     "tpcell-test",
})

var sessions = fakeSessions{
	1: {ID: 1, Email: "student@college.edu", RoleType: models.RoleStudent, IsActive: true, IsEmailVerified: true},
	2: {ID: 2, Email: "admin@college.edu", RoleType: models.RoleAdmin, IsActive: true, IsEmailVerified: true},
	3: {ID: 3, Email: "root@college.edu", RoleType: models.RoleSuperAdmin, IsActive: true, IsEmailVerified: true},
	4: {ID: 4, Email: "gone@college.edu", RoleType: models.RoleStudent, IsActive: false, IsEmailVerified: true},
}

func tokenFor(t *testing.T, id int64, role models.RoleType) string {
	t.Helper()
	access, _, _, _, err := testJWT.GenerateTokenPair(&models.User{ID: id, Email: "x@college.edu", RoleType: role})
	require.NoError(t, err)
	return access
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(testJWT, sessions)

	r := gin.New()
	r.GET("/api/admin/dashboard", m.JWTAuth(), m.RoleRequired(models.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"actor": GetActor(c).UserID})
	})
	r.GET("/api/super-admin/admins", m.JWTAuth(), m.RoleRequired(models.RoleSuperAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestJWTAuth_RoleMatrix(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name   string
		path   string
		token  string
		cookie bool
		status int
	}{
		{"no session", "/api/admin/dashboard", "", false, http.StatusUnauthorized},
		{"garbage token", "/api/admin/dashboard", "not-a-jwt", false, http.StatusUnauthorized},
		{"student on admin route", "/api/admin/dashboard", tokenFor(t, 1, models.RoleStudent), false, http.StatusForbidden},
		{"admin on admin route", "/api/admin/dashboard", tokenFor(t, 2, models.RoleAdmin), false, http.StatusOK},
		{"super admin on admin route", "/api/admin/dashboard", tokenFor(t, 3, models.RoleSuperAdmin), false, http.StatusOK},
		{"admin on super admin route", "/api/super-admin/admins", tokenFor(t, 2, models.RoleAdmin), false, http.StatusForbidden},
		{"session cookie", "/api/admin/dashboard", tokenFor(t, 2, models.RoleAdmin), true, http.StatusOK},
		{"deactivated user", "/api/admin/dashboard", tokenFor(t, 4, models.RoleStudent), false, http.StatusForbidden},
		{"unknown user", "/api/admin/dashboard", tokenFor(t, 99, models.RoleAdmin), false, http.StatusUnauthorized},
		{"role changed since login", "/api/admin/dashboard", tokenFor(t, 1, models.RoleAdmin), false, http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.token != "" {
				if tc.cookie {
					req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tc.token})
				} else {
					req.Header.Set("Authorization", "Bearer "+tc.token)
				}
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
			if tc.status != http.StatusOK {
				assert.False(t, decodeError(t, w).Success)
			}
		})
	}
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	expired := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "middleware-test",
		AccessTokenExp:  -time.Minute,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "tpcell-test",
	})
	access, _, _, _, err := expired.GenerateTokenPair(&models.User{ID: 2, Email: "a@b.c", RoleType: models.RoleAdmin})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrorCodeExpiredToken, decodeError(t, w).Error.Code)
}

func TestResolveError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   dto.ErrorCode
	}{
		{apperrors.ErrStudentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{apperrors.ErrAlreadyApplied, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{apperrors.NewCustomError(apperrors.ErrInvalidTransition, "cannot move"), http.StatusConflict, dto.ErrorCodeInvalidTransition},
		{apperrors.ErrNotVerifiedByAdmin, http.StatusForbidden, dto.ErrorCodeForbidden},
		{apperrors.NewValidationError("bad date", nil), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{apperrors.ErrRateLimited, http.StatusTooManyRequests, dto.ErrorCodeRateLimited},
		{errors.New("pq: connection refused"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}
	for _, tc := range tests {
		status, detail := ResolveError(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.code, detail.Code, tc.err.Error())
	}

	_, detail := ResolveError(errors.New("secret dsn leaked"))
	assert.Equal(t, "Internal server error", detail.Message)

	_, detail = ResolveError(apperrors.NewCustomError(apperrors.ErrNotEligible, "You are not eligible").
		WithDetails(map[string]interface{}{"reasons": []string{"batch 2024 is not eligible"}}))
	assert.Equal(t, "You are not eligible", detail.Message)
	assert.NotNil(t, detail.Details)
}

func TestRateLimit_MemoryLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/auth/login", RateLimit(NewMemoryLimiter(), "auth", 2, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "203.0.113.9:5555"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
		if w.Code == http.StatusTooManyRequests {
			assert.Equal(t, "60", w.Header().Get("Retry-After"))
		}
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = "198.51.100.1:5555"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "other clients have their own budget")
}

func TestMemoryLimiter_Cleanup(t *testing.T) {
	l := NewMemoryLimiter()
	assert.True(t, l.Allow(context.Background(), "k", 1, time.Hour))
	assert.False(t, l.Allow(context.Background(), "k", 1, time.Hour))

	l.Cleanup(-time.Minute)
	assert.True(t, l.Allow(context.Background(), "k", 1, time.Hour))
}

func TestParseIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/jaf/:id", func(c *gin.Context) {
		id, ok := ParseIDParam(c, "id")
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/jaf/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/jaf/12", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
