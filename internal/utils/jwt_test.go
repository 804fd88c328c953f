package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "unit-test-secret"

func TestAuthTokenRoundTrip(t *testing.T) {
	token, err := NewAuthToken(secret, 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	uid, err := ParseAuthToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), uid)
}

func TestParseAuthTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewAuthToken(secret, 42)
	require.NoError(t, err)

	_, err = ParseAuthToken("another-secret", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAuthTokenRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := ParseAuthToken(secret, raw)
		assert.ErrorIs(t, err, ErrInvalidToken, "raw=%q", raw)
	}
}

func TestParseAuthTokenRejectsTampering(t *testing.T) {
	token, err := NewAuthToken(secret, 42)
	require.NoError(t, err)

	b := []byte(token)
	b[len(b)-1] ^= 1
	_, err = ParseAuthToken(secret, string(b))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAuthTokenRejectsNoneAlgorithm(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone,
		jwt.MapClaims{"user": map[string]any{"id": 42}})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseAuthToken(secret, raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAuthTokenRejectsMissingIdentity(t *testing.T) {
	// Well-signed token without the user claim.
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "42"}).
		SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = ParseAuthToken(secret, raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
