package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	database "github.com/matheusqueiroz92/trekmind/app/db"
	appLogger "github.com/matheusqueiroz92/trekmind/app/logger"
	appMiddleware "github.com/matheusqueiroz92/trekmind/app/middleware"
	"github.com/matheusqueiroz92/trekmind/app/observability/metrics"
	"github.com/matheusqueiroz92/trekmind/app/tracer"
	"github.com/matheusqueiroz92/trekmind/config"
	"github.com/matheusqueiroz92/trekmind/internal/api/auth"
	"github.com/matheusqueiroz92/trekmind/internal/api/chat"
	"github.com/matheusqueiroz92/trekmind/internal/api/place"
	"github.com/matheusqueiroz92/trekmind/internal/gateway/generativeai"
	"github.com/matheusqueiroz92/trekmind/internal/gateway/geocoding"
	"github.com/matheusqueiroz92/trekmind/internal/gateway/googleplaces"
	"github.com/matheusqueiroz92/trekmind/internal/gateway/wikipedia"
	"github.com/matheusqueiroz92/trekmind/internal/router"
)

func main() {
	// Use standard log until slog is configured, in case godotenv fails
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := setupLogger()
	slog.SetDefault(logger)

	tracer.InitTracingAndMetrics()
	metrics.InitAppMetrics()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Database Setup ---
	dbConfig, err := database.NewDatabaseConfig(&cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		os.Exit(1)
	}

	// Migrations run before the main pool starts taking traffic.
	err = database.RunMigrations(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to run database migrations", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if !database.WaitForDB(ctx, pool, logger) {
		logger.Error("Database not ready after waiting, exiting.")
		os.Exit(1)
	}

	// --- Gateways ---
	geocoder := geocoding.NewNominatimClient(
		cfg.Providers.Nominatim.BaseURL,
		cfg.Providers.Nominatim.UserAgent,
		logger,
	)
	wikiClient := wikipedia.NewClient(cfg.Providers.Wikipedia.DefaultLang, logger)
	placesClient := googleplaces.NewClient(cfg.Providers.GooglePlaces.APIKey, logger)
	llmClient, err := generativeai.NewClient(ctx, cfg.Providers.Gemini.APIKey, cfg.Providers.Gemini.Model, logger)
	if err != nil {
		logger.Error("Failed to initialize Gemini client", slog.Any("error", err))
		os.Exit(1)
	}

	// --- Dependency Injection ---
	jwtSecret := []byte(cfg.Auth.JWTSecret)

	authRepo := auth.NewPostgresRepository(pool, logger)
	authService := auth.NewServiceImpl(authRepo, jwtSecret, logger)
	authHandler := auth.NewHandler(authService, logger)

	placeRepo := place.NewRepositoryImpl(wikiClient, logger)
	placeService := place.NewServiceImpl(placeRepo, geocoder, wikiClient, placesClient, logger)
	placeHandler := place.NewHandler(placeService, logger)

	retrievalService := chat.NewRetrievalServiceImpl(placeService, wikiClient, logger)
	chatService := chat.NewServiceImpl(retrievalService, llmClient, logger)
	chatHandler := chat.NewHandler(chatService, logger)

	// --- Router Setup ---
	routerConfig := &router.Config{
		AuthHandler:            authHandler,
		PlaceHandler:           placeHandler,
		ChatHandler:            chatHandler,
		AuthenticateMiddleware: appMiddleware.Authenticate(jwtSecret),
	}
	apiRouter := router.SetupRouter(routerConfig)

	mux := chi.NewMux()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(appLogger.StructuredLogger(logger))
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(middleware.Timeout(60 * time.Second))
	mux.Use(middleware.Compress(5, "application/json"))
	mux.Mount("/", apiRouter)

	// --- HTTP Server Setup ---
	srv := &http.Server{
		Addr:         cfg.Server.HTTPPort,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	go func() {
		logger.Info("Starting HTTP server", slog.String("address", srv.Addr))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()

	logger.Info("Shutdown signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}

	logger.Info("Application shut down complete.")
}

// setupLogger configures and returns the application logger.
func setupLogger() *slog.Logger {
	var logger *slog.Logger
	env := os.Getenv("APP_ENV")

	if env == "development" || env == "" {
		tintOpts := &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}
		logger = slog.New(tint.NewHandler(os.Stdout, tintOpts))
		log.Println("Initialized development logger (tint)")
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}
		logger = slog.New(slog.NewJSONHandler(os.Stdout, jsonOpts))
		log.Println("Initialized production logger (JSON)")
	}
	return logger
}
