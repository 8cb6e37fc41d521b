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

	_ "github.com/lib/pq"

	"github.com/sump-exe/Sports-Game-Management/config"
	"github.com/sump-exe/Sports-Game-Management/db"
	"github.com/sump-exe/Sports-Game-Management/handlers"
	"github.com/sump-exe/Sports-Game-Management/live"
	"github.com/sump-exe/Sports-Game-Management/repositories"
	"github.com/sump-exe/Sports-Game-Management/routes"
	"github.com/sump-exe/Sports-Game-Management/season"
	"github.com/sump-exe/Sports-Game-Management/services"
	"github.com/sump-exe/Sports-Game-Management/storage"
)

const phaseWatchInterval = time.Minute

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
		}
	}()
	logger.Info("database connection established")

	var uploader storage.FileUploader
	if cfg.R2AccountID != "" {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2Config{
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
		logger.Warn("R2 storage not configured, logo uploads disabled")
	}

	hub := live.NewHub(logger)
	go hub.Run()

	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	venueRepo := repositories.NewPostgresVenueRepository(dbConn)
	gameRepo := repositories.NewPostgresGameRepository(dbConn)
	statRepo := repositories.NewPostgresStatRepository(dbConn)
	mvpRepo := repositories.NewPostgresMVPRepository(dbConn)

	authService := services.NewAuthService(cfg.AdminUsername, cfg.AdminPasswordHash, cfg.JWTSecretKey, logger)
	teamService := services.NewTeamService(teamRepo, playerRepo, uploader, logger)
	venueService := services.NewVenueService(venueRepo, gameRepo, uploader, logger)
	gameService := services.NewGameService(gameRepo, venueRepo, statRepo, logger)
	bookingService := services.NewBookingService(teamRepo, venueRepo, gameRepo, services.BookingPolicy{
		RequiredRosterSize: cfg.RequiredRosterSize,
		RejectPastDates:    cfg.BookingPastDateGuard,
		VenueConsistency:   cfg.BookingVenueConsistency,
	}, logger)
	scoringService := services.NewScoringService(gameRepo, playerRepo, teamRepo, statRepo, hub, logger)
	standingsService := services.NewStandingsService(teamRepo, gameRepo, cfg.RequiredRosterSize)
	eligibilityService := services.NewEligibilityService(standingsService, gameRepo)
	mvpService := services.NewMVPService(mvpRepo, playerRepo, logger)
	summaryService := services.NewSummaryService(standingsService, eligibilityService, mvpService)
	logger.Info("services initialized")

	go watchPhase(hub, logger)

	router := routes.SetupRoutes(routes.Handlers{
		Auth:        handlers.NewAuthHandler(authService),
		Teams:       handlers.NewTeamHandler(teamService),
		Venues:      handlers.NewVenueHandler(venueService),
		Games:       handlers.NewGameHandler(bookingService, gameService),
		Scoring:     handlers.NewScoringHandler(scoringService),
		Standings:   handlers.NewStandingsHandler(standingsService),
		Eligibility: handlers.NewEligibilityHandler(eligibilityService),
		MVPs:        handlers.NewMVPHandler(mvpService),
		Summary:     handlers.NewSummaryHandler(summaryService),
		WebSocket:   handlers.NewWebSocketHandler(hub, gameService, logger),
	}, cfg.JWTSecretKey)
	logger.Info("routes configured")

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
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}

// watchPhase announces season phase rollovers to the season room.
func watchPhase(hub *live.Hub, logger *slog.Logger) {
	ticker := time.NewTicker(phaseWatchInterval)
	defer ticker.Stop()

	current := season.ResolvePhase(season.Normalize(time.Now()))
	logger.Info("phase watcher started", slog.String("phase", string(current)))

	for range ticker.C {
		phase := season.ResolvePhase(season.Normalize(time.Now()))
		if phase == current {
			continue
		}
		logger.Info("season phase changed",
			slog.String("from", string(current)),
			slog.String("to", string(phase)))
		hub.BroadcastToRoom("season", live.Message{
			Type:    "phase_changed",
			Payload: map[string]string{"from": string(current), "to": string(phase)},
			RoomID:  "season",
		})
		current = phase
	}
}
