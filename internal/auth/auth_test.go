package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("user1@123")
	require.NoError(t, err)
	assert.NotEqual(t, "user1@123", hash)

	assert.True(t, CheckPassword(hash, "user1@123"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateAccessToken(7, "user7", "member", testSecret)
	require.NoError(t, err)

	claims, err := ValidateToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "user7", claims.Username)
	assert.Equal(t, "member", claims.Role)
	assert.Equal(t, "access", claims.TokenType)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(7, "user7", "member", testSecret)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.Error(t, err)
}

func TestEmptySecret(t *testing.T) {
	_, err := GenerateAccessToken(1, "u", "member", "")
	assert.ErrorIs(t, err, ErrEmptyJWTSecret)

	_, err = ValidateToken("whatever", "")
	assert.ErrorIs(t, err, ErrEmptyJWTSecret)
}

func TestRefreshAccessToken(t *testing.T) {
	access, refresh, err := GenerateTokens(3, "user3", "admin", testSecret)
	require.NoError(t, err)

	// A refresh token must not be usable where an access token is expected
	// and vice versa.
	newAccess, claims, err := RefreshAccessToken(refresh, testSecret)
	require.NoError(t, err)
	assert.Equal(t, 3, claims.UserID)

	accessClaims, err := ValidateToken(newAccess, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "access", accessClaims.TokenType)

	_, _, err = RefreshAccessToken(access, testSecret)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}
