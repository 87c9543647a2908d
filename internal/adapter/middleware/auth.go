package middleware

import (
	"errors"
	"net/http"
	"strings"

	"library-backend/internal/adapter/token"

	"github.com/labstack/echo/v4"
)

const (
	ctxUserID = "auth.user_id"
	ctxRole   = "auth.role"
)

// TokenParser verifies a bearer token.
type TokenParser interface {
	Parse(raw string) (*token.Claims, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// caller's id and role on the context.
func RequireAuth(p TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(h, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			claims, err := p.Parse(raw)
			if errors.Is(err, token.ErrExpired) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "token expired"})
			}
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}
			c.Set(ctxUserID, claims.UserID)
			c.Set(ctxRole, claims.Role)
			return next(c)
		}
	}
}

// RequireRole must run after RequireAuth.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := Role(c)
			for _, r := range roles {
				if r == role {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}

// UserID returns the authenticated caller, or false on a public route.
func UserID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(ctxUserID).(uint64)
	return id, ok
}

func Role(c echo.Context) string {
	r, _ := c.Get(ctxRole).(string)
	return r
}

// SetPrincipal stores a caller on c, as RequireAuth does.
func SetPrincipal(c echo.Context, userID uint64, role string) {
	c.Set(ctxUserID, userID)
	c.Set(ctxRole, role)
}
