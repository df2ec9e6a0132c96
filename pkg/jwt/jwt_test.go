package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAndVerifyAccessToken(t *testing.T) {
	m := NewManager("test-secret", 15*time.Minute, 24*time.Hour)

	token, err := m.GenerateAccessToken("42", "alice", true)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := m.VerifyToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "42", claims.UserID)
	assert.Equal(t, "alice", claims.Nickname)
	assert.True(t, claims.IsSeller)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	m := NewManager("secret-a", 15*time.Minute, 24*time.Hour)
	other := NewManager("secret-b", 15*time.Minute, 24*time.Hour)

	token, err := m.GenerateAccessToken("42", "alice", false)
	assert.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_Expired(t *testing.T) {
	m := NewManager("test-secret", -1*time.Minute, 24*time.Hour)

	token, err := m.GenerateAccessToken("42", "alice", false)
	assert.NoError(t, err)

	_, err = m.VerifyToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestRefreshToken_CarriesOnlyUserID(t *testing.T) {
	m := NewManager("test-secret", 15*time.Minute, 24*time.Hour)

	token, err := m.GenerateRefreshToken("7")
	assert.NoError(t, err)

	claims, err := m.VerifyToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "7", claims.UserID)
	assert.Empty(t, claims.Nickname)
}
