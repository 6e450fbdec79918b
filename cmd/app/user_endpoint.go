package main

import (
	"net/http"

	"UserAuthAPI/internal/middleware"
	"UserAuthAPI/internal/services"

	"github.com/labstack/echo/v4"
)

// register user routes (all require JWT)
func registerUserRoutes(api *echo.Group, tokens *services.TokenService) {
	users := api.Group("/users")
	users.Use(middleware.JWTMiddleware(tokens))

	// GET /api/users/profile
	users.GET("/profile", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
		}
		// identity comes from the verified token, no store read
		return c.JSON(http.StatusOK, echo.Map{
			"message": "User profile fetched successfully",
			"user": echo.Map{
				"id":    claims.UserID,
				"email": claims.Email,
			},
		})
	})
}
