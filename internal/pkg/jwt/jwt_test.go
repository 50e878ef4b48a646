package jwt

import (
	"strconv"
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-tracker/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTService_InvalidExpiration(t *testing.T) {
	_, err := NewJWTService("secret", "soon")
	assert.Error(t, err)
}

func TestGenerateAccessToken_Claims(t *testing.T) {
	svc, err := NewJWTService("test-secret", "1h")
	require.NoError(t, err)

	before := time.Now()
	tokenString, expiresAt, err := svc.GenerateAccessToken(42, user.RoleManager)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	assert.InDelta(t, before.Add(time.Hour).Unix(), expiresAt, 2)

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	assert.Equal(t, strconv.Itoa(42), token.Subject())
	assert.NotEmpty(t, token.JwtID())

	role, ok := token.Get("role")
	require.True(t, ok)
	assert.Equal(t, "Manager", role)

	tokenType, ok := token.Get("type")
	require.True(t, ok)
	assert.Equal(t, TokenTypeAccess, tokenType)
}

func TestGenerateAccessToken_UniqueJTI(t *testing.T) {
	svc, err := NewJWTService("test-secret", "1h")
	require.NoError(t, err)

	first, _, err := svc.GenerateAccessToken(1, user.RoleEmployee)
	require.NoError(t, err)
	second, _, err := svc.GenerateAccessToken(1, user.RoleEmployee)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDecode_RejectsForeignSignature(t *testing.T) {
	signer, err := NewJWTService("secret-a", "1h")
	require.NoError(t, err)
	verifier, err := NewJWTService("secret-b", "1h")
	require.NoError(t, err)

	tokenString, _, err := signer.GenerateAccessToken(7, user.RoleAdmin)
	require.NoError(t, err)

	_, err = verifier.JWTAuth().Decode(tokenString)
	assert.Error(t, err)
}

func TestDecode_RejectsExpiredToken(t *testing.T) {
	svc, err := NewJWTService("test-secret", "1h")
	require.NoError(t, err)
	impl := svc.(*JWTService)
	impl.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	tokenString, _, err := impl.GenerateAccessToken(7, user.RoleEmployee)
	require.NoError(t, err)

	_, err = svc.JWTAuth().Decode(tokenString)
	assert.Error(t, err)
}
