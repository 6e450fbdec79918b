package main

import (
	"context"
	"log"

	"UserAuthAPI/internal/config"
	"UserAuthAPI/internal/db"
	"UserAuthAPI/internal/repository"
	"UserAuthAPI/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func main() {
	ctx := context.Background()

	// ======================
	// CONFIG
	// ======================
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// ======================
	// INFRA
	// ======================
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, cfg.DatabaseURL); err != nil {
		log.Fatal(err)
	}

	// ======================
	// REPOSITORIES
	// ======================
	userRepo := repository.NewUserRepository(pool)

	// ======================
	// SERVICES
	// ======================
	hasher := services.NewPasswordHasher(cfg.BcryptCost)
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
	authSvc := services.NewAuthService(userRepo, hasher, tokens)

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	api := e.Group("/api")

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerHealthRoutes(e)
	registerAuthRoutes(api, authSvc)
	registerUserRoutes(api, tokens)

	// ======================
	// SERVER
	// ======================
	log.Printf("Server is running: http://%s:%s", cfg.Host, cfg.Port)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
