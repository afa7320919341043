package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"prime31/internal/account"
	"prime31/internal/db"
	"prime31/internal/logger"
	"prime31/internal/repository"
	"prime31/internal/service"
)

func main() {
	username := flag.String("username", "testuser", "account username")
	password := flag.String("password", "testpass", "account password")
	flag.Parse()

	// expects DATABASE_URL env var
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, dsn)
	if err != nil {
		logger.Fatal("connect database", "error", err)
	}
	defer pool.Close()

	repo := repository.NewAccountRepository(pool)
	accounts := account.NewService(repo)

	err = accounts.Register(ctx, *username, *password)
	switch {
	case err == nil:
		logger.Info("account created", "user", *username)
	case errors.Is(err, account.ErrAlreadyExists):
		logger.Info("account already exists", "user", *username)
	default:
		logger.Fatal("create account failed", "error", err)
	}

	if err := accounts.Verify(ctx, *username, *password); err != nil {
		logger.Fatal("verify account failed", "user", *username, "error", err)
	}

	n, err := repo.Count(ctx)
	if err != nil {
		logger.Fatal("count accounts", "error", err)
	}
	logger.Info("accounts in store", "count", n)

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		service.InitJWT(secret)
		token, err := service.GenerateJWT(*username)
		if err != nil {
			logger.Fatal("failed to generate token", "error", err)
		}
		logger.Info("token issued", "token", token)
	}
}
