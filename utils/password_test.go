package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "secret1", hash)

	assert.True(t, CheckPassword(hash, "secret1"))
}

func TestCheckPasswordMismatch(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword(hash, ""))
	assert.False(t, CheckPassword("not-a-hash", "secret1"))
}
