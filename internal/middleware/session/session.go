package session

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avidela/product-catalog/internal/tokens"
)

// CookieName is where the signed session token travels.
const CookieName = "token"

type Guard struct {
	JWTSecret []byte
}

func NewGuard(secret []byte) *Guard {
	return &Guard{JWTSecret: secret}
}

// RequireSession verifies the session cookie before the handler runs. A
// missing secret is a server misconfiguration and must never look like a
// client fault; every token problem maps to one generic 401.
func (g *Guard) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(CookieName)
		if err != nil || cookie.Value == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
		}

		claims, err := tokens.ClaimsFromToken(cookie.Value, g.JWTSecret)
		if err != nil {
			if errors.Is(err, tokens.ErrNoSecret) {
				return echo.NewHTTPError(http.StatusInternalServerError, "server configuration incomplete")
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}

		c.Set("user_id", claims.Subject)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		return next(c)
	}
}
