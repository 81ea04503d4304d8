package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashSecret(t *testing.T) {
	hash, err := HashSecret("super-secret")
	require.NoError(t, err)
	assert.NotEqual(t, "super-secret", hash)

	assert.True(t, VerifySecretHash(hash, "super-secret"))
	assert.False(t, VerifySecretHash(hash, "wrong-secret"))
}

func TestVerifySecretHash_InvalidHash(t *testing.T) {
	assert.False(t, VerifySecretHash("not-a-bcrypt-hash", "super-secret"))
}

func TestSecureCompare(t *testing.T) {
	assert.True(t, SecureCompare("token", "token"))
	assert.False(t, SecureCompare("token", "other"))
	assert.False(t, SecureCompare("token", ""))
	assert.False(t, SecureCompare("", "token"))
}
