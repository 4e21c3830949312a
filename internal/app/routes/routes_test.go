package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tpcell/portal/internal/app/models"
	"github.com/tpcell/portal/internal/middleware"
	"github.com/tpcell/portal/internal/pkg/apperrors"
	"github.com/tpcell/portal/internal/pkg/auth"
)

type sessions map[int64]*models.SessionUser

func (s sessions) GetSessionUser(_ context.Context, id int64) (*models.SessionUser, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

var jwtService = auth.NewJWTService(auth.JWTConfig{
	SecretKey:       "routes-test",
	AccessTokenExp:  time.Minute,
	RefreshTokenExp: time.Hour,
	TokenIssuer:     "tpcell-test",
})

var users = sessions{
	1: {ID: 1, Email: "student@college.edu", RoleType: models.RoleStudent, IsActive: true, IsEmailVerified: true},
	2: {ID: 2, Email: "hr@acme.com", RoleType: models.RoleCompany, IsActive: true, IsEmailVerified: false},
	3: {ID: 3, Email: "tpo@college.edu", RoleType: models.RoleAdmin, IsActive: true, IsEmailVerified: true},
}

func token(t *testing.T, id int64) string {
	t.Helper()
	u := users[id]
	access, _, _, _, err := jwtService.GenerateTokenPair(&models.User{ID: id, Email: u.Email, RoleType: u.RoleType})
	require.NoError(t, err)
	_, err = jwtService.ValidateAndExtractClaims(access)
	require.NoError(t, err)
	return access
}

// Handlers are never reached in these tests, so the controllers stay nil.
func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupRouter(r, Controllers{}, middleware.NewAuthMiddleware(jwtService, users), RateLimit{})
	return r
}

func call(r *gin.Engine, method, path, bearer string) int {
	req := httptest.NewRequest(method, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func concrete(path string) string {
	return strings.ReplaceAll(path, ":id", "1")
}

func TestHealth(t *testing.T) {
	assert.Equal(t, http.StatusOK, call(newRouter(), http.MethodGet, "/api/health", ""))
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	r := newRouter()
	for _, route := range r.Routes() {
		if !strings.HasPrefix(route.Path, "/api/student") && !strings.HasPrefix(route.Path, "/api/company") &&
			!strings.HasPrefix(route.Path, "/api/admin") && !strings.HasPrefix(route.Path, "/api/super-admin") {
			continue
		}
		assert.Equal(t, http.StatusUnauthorized, call(r, route.Method, concrete(route.Path), ""), route.Method+" "+route.Path)
	}
}

func TestAdminRoutesRejectStudents(t *testing.T) {
	r := newRouter()
	student := token(t, 1)

	var checked int
	for _, route := range r.Routes() {
		if !strings.HasPrefix(route.Path, "/api/admin") && !strings.HasPrefix(route.Path, "/api/super-admin") &&
			!strings.HasPrefix(route.Path, "/api/company") {
			continue
		}
		checked++
		assert.Equal(t, http.StatusForbidden, call(r, route.Method, concrete(route.Path), student), route.Method+" "+route.Path)
	}
	assert.Greater(t, checked, 30)
}

func TestStudentRoutesRejectAdmins(t *testing.T) {
	r := newRouter()
	admin := token(t, 3)
	assert.Equal(t, http.StatusForbidden, call(r, http.MethodGet, "/api/student/profile", admin))
	assert.Equal(t, http.StatusForbidden, call(r, http.MethodPost, "/api/admin/verify-student", token(t, 1)))
}

func TestSuperAdminRoutesRejectAdmins(t *testing.T) {
	r := newRouter()
	assert.Equal(t, http.StatusForbidden, call(r, http.MethodGet, "/api/super-admin/settings", token(t, 3)))
	assert.Equal(t, http.StatusForbidden, call(r, http.MethodDelete, "/api/super-admin/admins/1", token(t, 3)))
}

func TestUnverifiedEmailIsBlocked(t *testing.T) {
	r := newRouter()
	assert.Equal(t, http.StatusForbidden, call(r, http.MethodGet, "/api/company/profile", token(t, 2)))
}
