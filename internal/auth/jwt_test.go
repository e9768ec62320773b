package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager() *Manager {
	cfg := DefaultConfig()
	cfg.SecretKey = "test-secret"
	return NewManager(cfg)
}

func TestIssuePairRoundTrip(t *testing.T) {
	m := testManager()

	pair, err := m.IssuePair(42, "alice", "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)
	assert.NotEqual(t, pair.Access, pair.Refresh)

	claims, err := m.ValidateAccess(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "access", claims.TokenType)

	claims, err = m.ValidateRefresh(pair.Refresh)
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims.TokenType)
}

func TestTokenTypeIsEnforced(t *testing.T) {
	m := testManager()
	pair, err := m.IssuePair(1, "bob", "bob@example.com")
	require.NoError(t, err)

	_, err = m.ValidateAccess(pair.Refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ValidateRefresh(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestWrongSecretRejected(t *testing.T) {
	m := testManager()
	pair, err := m.IssuePair(1, "bob", "bob@example.com")
	require.NoError(t, err)

	other := NewManager(Config{
		SecretKey:       "a-different-secret",
		AccessLifetime:  time.Minute,
		RefreshLifetime: time.Hour,
		Issuer:          "taskboard",
	})
	_, err = other.ValidateAccess(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredTokenRejected(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SecretKey = "test-secret"
	cfg.AccessLifetime = -time.Minute
	m := NewManager(cfg)

	pair, err := m.IssuePair(1, "bob", "bob@example.com")
	require.NoError(t, err)

	_, err = m.ValidateAccess(pair.Access)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestGarbageTokenRejected(t *testing.T) {
	m := testManager()
	_, err := m.ValidateAccess("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshAccess(t *testing.T) {
	m := testManager()
	pair, err := m.IssuePair(7, "carol", "carol@example.com")
	require.NoError(t, err)

	access, err := m.RefreshAccess(pair.Refresh)
	require.NoError(t, err)

	claims, err := m.ValidateAccess(access)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "carol", claims.Username)

	_, err = m.RefreshAccess(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
