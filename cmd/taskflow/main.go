package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/taskflow-dev/taskflow/db"
	"github.com/taskflow-dev/taskflow/internal/access"
	"github.com/taskflow-dev/taskflow/internal/auth"
	"github.com/taskflow-dev/taskflow/internal/config"
	"github.com/taskflow-dev/taskflow/internal/handlers"
	"github.com/taskflow-dev/taskflow/internal/middleware"
	"github.com/taskflow-dev/taskflow/internal/router"
	"github.com/taskflow-dev/taskflow/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	conn, err := db.Connect(cfg.DatabaseURL)

	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.Migrate(conn); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	st := store.New(conn)
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL)
	h := handlers.New(st, access.NewChecker(st), tokens)

	r := router.New(h, middleware.AuthMiddleware(tokens, st), cfg.AllowedOrigins)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
