package main

import (
	"errors"
	"net/http"

	"UserAuthAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// signupHandler handles public registration
func signupHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req services.RegisterInput
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"message": "invalid request",
			})
		}

		user, err := authSvc.Register(c.Request().Context(), req)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrDuplicateUser):
				return c.JSON(http.StatusBadRequest, echo.Map{
					"message": "User already exists",
				})
			case errors.Is(err, services.ErrInvalidInput):
				return c.JSON(http.StatusBadRequest, echo.Map{
					"message": err.Error(),
				})
			default:
				c.Logger().Error(err)
				return c.JSON(http.StatusInternalServerError, echo.Map{
					"message": "Internal server error",
				})
			}
		}

		return c.JSON(http.StatusCreated, echo.Map{
			"message": "User created successfully",
			"user":    user,
		})
	}
}

func loginHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(loginRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"message": "invalid request",
			})
		}

		result, err := authSvc.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			// same status and message for unknown email and wrong password
			if errors.Is(err, services.ErrInvalidCredentials) {
				return c.JSON(http.StatusBadRequest, echo.Map{
					"success": false,
					"message": "Invalid credentials",
				})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"message": "Internal server error",
			})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": "Login successful",
			"token":   result.Token,
			"user":    result.User,
		})
	}
}

func registerAuthRoutes(g *echo.Group, authSvc *services.AuthService) {
	auth := g.Group("/auth")

	auth.POST("/signup", signupHandler(authSvc))
	auth.POST("/login", loginHandler(authSvc))
}
