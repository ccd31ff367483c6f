package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/mywallet/config"
	"github.com/oksasatya/mywallet/internal/application"
	"github.com/oksasatya/mywallet/internal/domain/entity"
	pginfra "github.com/oksasatya/mywallet/internal/infrastructure/postgres"
	"github.com/oksasatya/mywallet/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	users := pginfra.NewUserRepository(pool)
	accounts := application.NewAccountService(users, pginfra.NewSessionRepository(pool), cfg.BcryptCost, logger)
	ledger := application.NewLedgerService(pginfra.NewMovementRepository(pool), nil, nil, logger)

	email := "demo@mywallet.dev"
	password := "123456"
	name := "Demo User"

	u, err := accounts.Register(ctx, application.RegisterInput{
		Name:            name,
		Email:           email,
		Password:        password,
		PasswordConfirm: password,
	})
	if errors.Is(err, application.ErrEmailTaken) {
		u, err = users.GetByEmail(ctx, email)
	}
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s name=%s password=%s\n", u.ID, email, name, password)

	existing, err := ledger.Statement(ctx, u)
	if err != nil {
		log.Fatalf("failed to load statement: %v", err)
	}
	if len(existing) > 0 {
		fmt.Printf("user already has %d movements, balance=%.2f\n", len(existing), entity.Balance(existing))
		return
	}

	salary, rent, coffee := "monthly salary", "apartment rent", "coffee beans"
	if _, err := ledger.Deposit(ctx, u, 3500, &salary); err != nil {
		log.Fatalf("failed to seed deposit: %v", err)
	}
	if _, err := ledger.Withdraw(ctx, u, 1200, &rent); err != nil {
		log.Fatalf("failed to seed withdrawal: %v", err)
	}
	if _, err := ledger.Withdraw(ctx, u, 42.5, &coffee); err != nil {
		log.Fatalf("failed to seed withdrawal: %v", err)
	}
	movs, err := ledger.Statement(ctx, u)
	if err != nil {
		log.Fatalf("failed to load statement: %v", err)
	}
	fmt.Printf("seeded %d movements, balance=%.2f\n", len(movs), entity.Balance(movs))
}
