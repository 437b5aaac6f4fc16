package middleware // reusable HTTP middleware shared by all route groups

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys populated by JWTAuth for downstream handlers. The email is
// the identity the order subsystem keys on; role and name are claims
// asserted at login and trusted as-is afterwards.
const (
	CtxEmail = "email"
	CtxRole  = "role"
	CtxName  = "name"
)

// JWTAuth validates a Bearer access token and injects the subject email,
// role and display name into the request context. Protected routes wrap
// themselves with this so handlers can read an already-validated identity
// instead of re-reading ambient session state.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			email, _ := claims["sub"].(string)
			if email == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}
			role, _ := claims["role"].(string)
			name, _ := claims["name"].(string)
			c.Set(CtxEmail, email)
			c.Set(CtxRole, role)
			c.Set(CtxName, name)
			return next(c)
		}
	}
}

// Email returns the authenticated user's email from context, or "".
func Email(c echo.Context) string {
	s, _ := c.Get(CtxEmail).(string)
	return s
}

// Role returns the authenticated user's role from context, or "".
func Role(c echo.Context) string {
	s, _ := c.Get(CtxRole).(string)
	return s
}

// Name returns the authenticated user's display name from context, or "".
func Name(c echo.Context) string {
	s, _ := c.Get(CtxName).(string)
	return s
}
