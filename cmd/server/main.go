package main

import (
	"net/http"
	"os"

	_ "taskhub/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"taskhub/internal/auth"
	"taskhub/internal/cache"
	"taskhub/internal/config"
	"taskhub/internal/db"
	"taskhub/internal/handler"
	"taskhub/internal/model"
	"taskhub/internal/repository"
	"taskhub/internal/router"
	"taskhub/internal/service"
)

// @title Taskhub API
// @version 1.0
// @description Task-management API with role-based access control and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
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

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	// Services
	userService := service.NewUserService(userRepo, logger)
	taskService := service.NewTaskService(taskRepo, userRepo, logger)

	// Auth components
	jwtService := auth.NewJWTService(cfg)
	denylist := auth.NewRedisDenylist(cacheClient)
	gate := auth.NewGate(jwtService, denylist, userService)

	// Handlers
	authHandler := handler.NewAuthHandler(userService, gate, jwtService)
	userHandler := handler.NewUserHandler(userService, gate)
	taskHandler := handler.NewTaskHandler(taskService, gate)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, logger, jwtService, gate, authHandler, userHandler, taskHandler)

	addr := ":" + cfg.ServerPort
	logger.Info().Str("addr", addr).Msg("starting server")
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server start")
	}
}
