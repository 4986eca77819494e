// Command seed creates the initial admin account so a fresh deployment has
// a caller able to manage users.
package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"taskhub/internal/config"
	"taskhub/internal/db"
	"taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/repository"
	"taskhub/internal/service"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("database init")
	}
	if err := gormDB.AutoMigrate(&model.User{}, &model.Task{}); err != nil {
		logger.Fatal().Err(err).Msg("auto-migrate")
	}

	users := service.NewUserService(repository.NewUserRepository(gormDB), logger)

	input := model.UserCreate{
		Username: envOr("ADMIN_USERNAME", "admin"),
		Email:    envOr("ADMIN_EMAIL", "admin@example.com"),
		Password: envOr("ADMIN_PASSWORD", "admin123"),
		Role:     model.RoleAdmin,
	}

	admin, err := users.Create(context.Background(), input)
	if err != nil {
		if errors.IsValidation(err) {
			logger.Info().Str("username", input.Username).Msg("admin already present, nothing to do")
			return
		}
		logger.Fatal().Err(err).Msg("seed admin")
	}

	logger.Info().Str("user_id", admin.ID.String()).Str("username", admin.Username).Msg("seeded admin user")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
