package jwt

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "0001-0001", auth.RoleManager)
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	parsed, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	role, ok := parsed.Get("role")
	require.True(t, ok)
	assert.Equal(t, "manager", role)
	assert.Equal(t, "user-1", parsed.Subject())
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := NewJWTService("issuer-secret", time.Hour)
	verifier := NewJWTService("other-secret", time.Hour)

	token, _, err := issuer.GenerateAccessToken("user-1", "0001-0001", auth.RoleAdmin)
	require.NoError(t, err)

	_, err = jwtauth.VerifyToken(verifier.JWTAuth(), token)
	assert.Error(t, err)
}

func TestVerify_Expired(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Hour)

	token, _, err := svc.GenerateAccessToken("user-1", "0001-0001", auth.RoleEmployee)
	require.NoError(t, err)

	_, err = jwtauth.VerifyToken(svc.JWTAuth(), token)
	assert.Error(t, err)
}
