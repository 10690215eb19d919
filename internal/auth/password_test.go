package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	ok, err := VerifyPassword(hash, "correct horse")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "battery staple")
	require.NoError(t, err)
	assert.False(t, ok, "a mismatch is not an error")
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	ok, err := VerifyPassword("not-a-bcrypt-hash", "anything")
	assert.Error(t, err)
	assert.False(t, ok)
}
