package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("password1")
	require.NoError(t, err)
	assert.NotEqual(t, "password1", hash)

	assert.True(t, VerifyPassword("password1", hash))
	assert.False(t, VerifyPassword("password2", hash))
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	assert.False(t, VerifyPassword("password1", "not-a-bcrypt-hash"))
	assert.False(t, VerifyPassword("password1", ""))
}
