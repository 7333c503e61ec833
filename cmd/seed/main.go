package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/oksasatya/recipe-app-api/config"
	"github.com/oksasatya/recipe-app-api/internal/application"
	pginfra "github.com/oksasatya/recipe-app-api/internal/infrastructure/postgres"
	"github.com/oksasatya/recipe-app-api/pkg/helpers"
)

// Provisions a superuser account (is_staff + is_superuser). Credentials
// come from SEED_EMAIL / SEED_PASSWORD.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	email := os.Getenv("SEED_EMAIL")
	password := os.Getenv("SEED_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("SEED_EMAIL and SEED_PASSWORD are required")
	}

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	svc := application.NewUserService(
		pginfra.NewUserRepository(pool),
		pginfra.NewTokenRepository(pool),
		nil, nil, "", nil, logger, nil, "", nil,
	)

	u, err := svc.CreateSuperuser(ctx, email, password)
	if err != nil {
		if err == application.ErrEmailTaken {
			log.Fatalf("superuser %s already exists", email)
		}
		log.Fatalf("failed to seed superuser: %v", err)
	}
	fmt.Printf("seeded superuser: id=%s email=%s\n", u.ID, u.Email)
}
