package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
)

func TestManager_GenerateAndParse(t *testing.T) {
	m := NewManager("test-secret", time.Hour, 24*time.Hour)

	pair, err := m.GenerateToken(7, "reader@example.com", []string{"ROLE_USER"})
	require.NoError(t, err)
	assert.Equal(t, int64(3600), pair.ExpiresIn)

	claims, err := m.ParseToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "reader@example.com", claims.Email)
	assert.Equal(t, []string{"ROLE_USER"}, claims.Roles)

	refresh, err := m.ParseToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Empty(t, refresh.Roles, "Refresh Token不携带角色")
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, TokenTypeRefresh, refresh.TokenType)
}

func TestManager_ParseToken_Errors(t *testing.T) {
	t.Run("过期Token", func(t *testing.T) {
		m := NewManager("test-secret", -time.Minute, time.Hour)
		pair, err := m.GenerateToken(1, "a@b.com", nil)
		require.NoError(t, err)

		_, err = m.ParseToken(pair.AccessToken)
		assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})

	t.Run("签名密钥不一致", func(t *testing.T) {
		signer := NewManager("secret-a", time.Hour, time.Hour)
		verifier := NewManager("secret-b", time.Hour, time.Hour)
		pair, err := signer.GenerateToken(1, "a@b.com", nil)
		require.NoError(t, err)

		_, err = verifier.ParseToken(pair.AccessToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("格式错误", func(t *testing.T) {
		m := NewManager("test-secret", time.Hour, time.Hour)
		_, err := m.ParseToken("not-a-jwt")
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}

func TestManager_RefreshAccessToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour, 24*time.Hour)
	pair, err := m.GenerateToken(3, "admin@example.com", []string{"ROLE_ADMIN"})
	require.NoError(t, err)

	token, err := m.RefreshAccessToken(pair.RefreshToken, "admin@example.com", []string{"ROLE_ADMIN"})
	require.NoError(t, err)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(3), claims.UserID)
	assert.Equal(t, []string{"ROLE_ADMIN"}, claims.Roles)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)

	t.Run("Access Token不能用于刷新", func(t *testing.T) {
		_, err := m.RefreshAccessToken(pair.AccessToken, "admin@example.com", nil)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}

func TestManager_TypedParse(t *testing.T) {
	m := NewManager("test-secret", time.Hour, 24*time.Hour)
	pair, err := m.GenerateToken(5, "a@b.com", []string{"ROLE_USER"})
	require.NoError(t, err)

	t.Run("Access Token", func(t *testing.T) {
		claims, err := m.ParseAccessToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, uint(5), claims.UserID)

		_, err = m.ParseRefreshToken(pair.AccessToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("Refresh Token不能作为Access Token使用", func(t *testing.T) {
		_, err := m.ParseAccessToken(pair.RefreshToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

		claims, err := m.ParseRefreshToken(pair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, TokenTypeRefresh, claims.TokenType)
	})
}
