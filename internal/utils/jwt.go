package utils

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid auth token")

// tokenUser is the identity payload embedded in an auth token.
type tokenUser struct {
	ID uint64 `json:"id"`
}

// authClaims is the full claim set: the user identity under the "user"
// key plus the registered claims. No expiry is set when signing, so a
// token stays valid for as long as the signing secret does; an exp
// claim is still honored on parse if one is ever present.
type authClaims struct {
	User tokenUser `json:"user"`
	jwt.RegisteredClaims
}

// NewAuthToken signs an HS256 token carrying the user's id.
func NewAuthToken(secret string, userID uint64) (string, error) {
	claims := authClaims{User: tokenUser{ID: userID}}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseAuthToken verifies the token's signature against the secret and
// returns the embedded user id. Any failure, from a malformed blob to
// a wrong signing method, collapses into ErrInvalidToken: callers must
// not surface which check failed.
func ParseAuthToken(secret, raw string) (uint64, error) {
	var claims authClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid || claims.User.ID == 0 {
		return 0, ErrInvalidToken
	}
	return claims.User.ID, nil
}
