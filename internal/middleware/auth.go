package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/notes-api/internal/utils"
)

// TokenHeader is the request header carrying the auth token.
const TokenHeader = "auth-token"

// authFailedMsg is returned verbatim for a missing, malformed or badly
// signed token. No distinction is surfaced to the caller.
const authFailedMsg = "Please authenticate using a valid token"

// Auth gates protected routes. It verifies the auth-token header
// against the signing secret and stores the decoded user id in the
// context under "user_id". The handler chain is short-circuited on any
// failure; no store lookup happens here, the token is trusted on
// signature alone.
func Auth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(TokenHeader)
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": authFailedMsg})
			}
			uid, err := utils.ParseAuthToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": authFailedMsg})
			}
			c.Set("user_id", uid)
			return next(c)
		}
	}
}
