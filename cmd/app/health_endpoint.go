package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func registerHealthRoutes(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
}
