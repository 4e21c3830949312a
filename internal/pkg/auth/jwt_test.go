package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tpcell/portal/internal/app/models"
)

func newTestService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  exp,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "tpcell-test",
	})
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestService(time.Minute)
	user := &models.User{ID: 7, Email: "admin@college.edu", RoleType: models.RoleAdmin}

	access, refresh, expiresIn, refreshIn, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, 60, expiresIn)
	assert.Equal(t, 3600, refreshIn)

	claims, err := svc.ValidateAndExtractClaims(access)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role())
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestService(-time.Minute)
	access, _, _, _, err := svc.GenerateTokenPair(&models.User{ID: 1, Email: "a@b.c", RoleType: models.RoleStudent})
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	access, _, _, _, err := newTestService(time.Minute).GenerateTokenPair(&models.User{ID: 1, Email: "a@b.c", RoleType: models.RoleStudent})
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Minute})
	_, err = other.ValidateToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	tok, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	tok, err = ExtractBearerToken("\"abc.def.ghi\"")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	_, err = ExtractBearerToken("Basic dXNlcjpwYXNz")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestGenerateOTP(t *testing.T) {
	code, hash, err := GenerateOTP()
	require.NoError(t, err)
	assert.Len(t, code, 6)
	assert.True(t, CheckPassword(hash, code))
	assert.False(t, CheckPassword(hash, "not-it"))
}
