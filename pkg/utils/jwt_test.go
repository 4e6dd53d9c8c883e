package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", "z-doc")

	pair, err := m.GenerateTokenPair("u-1", "alice", time.Minute, time.Hour)
	require.NoError(t, err)

	claims, err := m.ParseToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, TokenTypeAccess, claims.Type)

	claims, err = m.ParseToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.Type)
}

func TestJWTManager_Expired(t *testing.T) {
	m := NewJWTManager("secret", "z-doc")

	token, err := m.GenerateToken("u-1", "alice", TokenTypeAccess, -time.Minute)
	require.NoError(t, err)

	_, err = m.ParseToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	token, err := NewJWTManager("a", "z-doc").GenerateToken("u-1", "alice", TokenTypeAccess, time.Minute)
	require.NoError(t, err)

	_, err = NewJWTManager("b", "z-doc").ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
