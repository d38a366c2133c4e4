package utils_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/peerfx/peerfx_backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	secret := "test-secret-key-that-is-long-enough"
	userID := uuid.NewString()

	tokenString, err := utils.GenerateJWT(userID, secret, time.Hour, "peerfx-backend")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := utils.ParseAndValidateJWT(tokenString, secret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.Subject)
	assert.Equal(t, "peerfx-backend", claims.Issuer)
}

func TestParseJWT_WrongSecret(t *testing.T) {
	tokenString, err := utils.GenerateJWT(uuid.NewString(), "right-secret", time.Hour, "peerfx-backend")
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(tokenString, "wrong-secret")
	assert.Error(t, err)
}

func TestParseJWT_Expired(t *testing.T) {
	tokenString, err := utils.GenerateJWT(uuid.NewString(), "secret", -time.Minute, "peerfx-backend")
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(tokenString, "secret")
	assert.Error(t, err)
}

func TestRefreshTokenHashing(t *testing.T) {
	raw, err := utils.GenerateSecureRandomString(32)
	require.NoError(t, err)
	assert.Len(t, raw, 64) // hex-encoded

	hash := utils.HashRefreshToken(raw)
	assert.NotEqual(t, raw, hash)
	assert.True(t, utils.CompareRefreshTokenHash(raw, hash))
	assert.False(t, utils.CompareRefreshTokenHash("tampered", hash))
}

func TestGenerateSecureRandomString_Unique(t *testing.T) {
	a, err := utils.GenerateSecureRandomString(32)
	require.NoError(t, err)
	b, err := utils.GenerateSecureRandomString(32)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestGenerateSecureRandomString_InvalidLength(t *testing.T) {
	_, err := utils.GenerateSecureRandomString(0)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := utils.HashPassword("a-strong-password")
	require.NoError(t, err)
	assert.NotEqual(t, "a-strong-password", hash)
	assert.True(t, utils.CheckPasswordHash("a-strong-password", hash))
	assert.False(t, utils.CheckPasswordHash("wrong", hash))
}
