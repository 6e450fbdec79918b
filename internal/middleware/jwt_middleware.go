package middleware

import (
	"net/http"
	"strings"

	"UserAuthAPI/internal/services"

	"github.com/labstack/echo/v4"
)

const claimsContextKey = "auth_claims"

// JWTMiddleware returns an Echo middleware that validates the bearer token
// and attaches the verified claims to the request context. The header is
// checked for presence and "Bearer <token>" shape before any splitting, so
// a missing or malformed header is a structured 401, never a fault.
func JWTMiddleware(tokens *services.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if auth == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing authorization header"})
			}
			parts := strings.Fields(auth)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid authorization header"})
			}
			claims, err := tokens.Verify(parts[1])
			if err != nil {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "invalid or expired token"})
			}
			// attach claims to context
			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

// GetClaims extracts the verified claims set by JWTMiddleware, or nil.
func GetClaims(c echo.Context) *services.Claims {
	v := c.Get(claimsContextKey)
	if v == nil {
		return nil
	}
	if cl, ok := v.(*services.Claims); ok {
		return cl
	}
	return nil
}
