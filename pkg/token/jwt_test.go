package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	manager := NewJWTManager("test-secret", 1, 7)

	tokenString, err := manager.GenerateToken(42, "coach_li", "therapist")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := manager.VerifyToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "coach_li", claims.Username)
	assert.Equal(t, "therapist", claims.Role)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	manager := NewJWTManager("secret-a", 1, 7)
	other := NewJWTManager("secret-b", 1, 7)

	tokenString, err := manager.GenerateToken(1, "u", "athlete")
	require.NoError(t, err)

	_, err = other.VerifyToken(tokenString)
	assert.Error(t, err)
}

func TestVerifyTokenMalformed(t *testing.T) {
	manager := NewJWTManager("test-secret", 1, 7)

	_, err := manager.VerifyToken("not.a.token")
	assert.Error(t, err)
}

func TestGenerateExpiredToken(t *testing.T) {
	// 有效期为 0 小时的 token 立即过期
	manager := NewJWTManager("test-secret", 0, 7)

	tokenString, err := manager.GenerateToken(1, "u", "athlete")
	require.NoError(t, err)

	_, err = manager.VerifyToken(tokenString)
	assert.Error(t, err)
}
