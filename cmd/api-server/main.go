package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"racedebrief/database"
	"racedebrief/internal/api/handler"
	"racedebrief/internal/api/repository"
	"racedebrief/internal/api/service"
	"racedebrief/internal/config"
)

func main() {
	// 1. Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))

	// 2. Connect to the database and seed the calendar if empty
	db, err := database.Connect(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}
	if err := database.Seed(db, logger); err != nil {
		log.Fatalf("could not seed database: %v", err)
	}

	// 3. Wire repositories and services
	userRepo := repository.NewUserRepository(db)
	raceRepo := repository.NewRaceRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)

	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	raceService := service.NewRaceService(raceRepo)
	reviewService := service.NewReviewService(reviewRepo, raceRepo)
	commentService := service.NewCommentService(commentRepo, reviewRepo)
	likeService := service.NewLikeService(likeRepo, reviewRepo)
	userService := service.NewUserService(userRepo)

	// 4. Setup Gin
	r := handler.NewRouter(cfg, authService, handler.Handlers{
		Auth:    handler.NewAuthHandler(authService, int64(cfg.AccessTokenTTL.Seconds())),
		Race:    handler.NewRaceHandler(raceService),
		Review:  handler.NewReviewHandler(reviewService),
		Comment: handler.NewCommentHandler(commentService),
		Like:    handler.NewLikeHandler(likeService),
		User:    handler.NewUserHandler(userService),
	})

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("Server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func logLevel(level string) slog.Level {
	switch level {
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
