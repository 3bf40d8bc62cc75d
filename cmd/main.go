package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/oflinehulk/showyours-core/brackets"
	"github.com/oflinehulk/showyours-core/config"
	"github.com/oflinehulk/showyours-core/db"
	"github.com/oflinehulk/showyours-core/handlers"
	"github.com/oflinehulk/showyours-core/random"
	"github.com/oflinehulk/showyours-core/repositories"
	api "github.com/oflinehulk/showyours-core/routes"
	"github.com/oflinehulk/showyours-core/scheduling"
	"github.com/oflinehulk/showyours-core/services"
	"github.com/oflinehulk/showyours-core/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Snapshot export is optional; without R2 credentials the engine still
	// runs, it just skips publishing artifacts.
	var uploader storage.FileUploader
	if cfg.R2Enabled() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Info("R2 snapshot export disabled")
	}

	wsHub := brackets.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket Hub started")

	rnd := random.NewCryptoProvider()

	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	groupRepo := repositories.NewPostgresGroupRepository(dbConn)
	availabilityRepo := repositories.NewPostgresAvailabilityRepository(dbConn)
	drawRepo := repositories.NewPostgresDrawRecordRepository(dbConn)
	logger.Info("Repositories initialized")

	grid := scheduling.DefaultGrid()
	if len(cfg.ScheduleGridTimes) > 0 {
		grid = scheduling.NewGrid(cfg.ScheduleGridTimes, grid.IntervalMinutes)
	}

	bracketService := services.NewBracketService(dbConn, teamRepo, matchRepo, wsHub, uploader)
	seedingService := services.NewSeedingService(dbConn, rnd, teamRepo, groupRepo, drawRepo, wsHub, uploader)
	standingsService := services.NewStandingsService(matchRepo, groupRepo)
	scheduleService := services.NewScheduleService(dbConn, matchRepo, availabilityRepo, grid)
	logger.Info("Services initialized")

	bracketHandler := handlers.NewBracketHandler(bracketService)
	seedingHandler := handlers.NewSeedingHandler(seedingService)
	standingsHandler := handlers.NewStandingsHandler(standingsService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService, cfg.DefaultGapMinutes)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		bracketHandler,
		seedingHandler,
		standingsHandler,
		scheduleHandler,
		webSocketHandler,
	)
	logger.Info("Routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}
