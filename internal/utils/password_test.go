package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("hunter2!", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "hunter2!", hash)

	assert.True(t, VerifyPassword(hash, "hunter2!"))
	assert.False(t, VerifyPassword(hash, "hunter3!"))
	assert.False(t, VerifyPassword("", "hunter2!"))
}

func TestPasswordHashesAreSalted(t *testing.T) {
	a, err := HashPassword("same-password", bcrypt.MinCost)
	require.NoError(t, err)
	b, err := HashPassword("same-password", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
