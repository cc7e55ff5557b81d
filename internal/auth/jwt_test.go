package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", 30*time.Minute)

	token, err := svc.IssueAccessToken(42)
	require.NoError(t, err)

	userID, err := svc.Verify(token, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", 30*time.Minute)

	token, err := svc.IssueRefreshToken(7)
	require.NoError(t, err)

	userID, err := svc.Verify(token, TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)
}

func TestVerifyRejectsWrongTokenType(t *testing.T) {
	svc := NewTokenService("test-secret", 30*time.Minute)

	refresh, err := svc.IssueRefreshToken(42)
	require.NoError(t, err)

	_, err = svc.Verify(refresh, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := NewTokenService("test-secret", -1*time.Minute)

	token, err := svc.IssueAccessToken(42)
	require.NoError(t, err)

	_, err = svc.Verify(token, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a", 30*time.Minute).IssueAccessToken(42)
	require.NoError(t, err)

	_, err = NewTokenService("secret-b", 30*time.Minute).Verify(token, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := NewTokenService("test-secret", 30*time.Minute)

	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Verify(input, TokenTypeAccess)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
