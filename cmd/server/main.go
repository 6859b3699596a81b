package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"park-course-service/internal/adapters/repositories"
	"park-course-service/internal/api"
	"park-course-service/internal/config"
	"park-course-service/internal/platform/db"
	"park-course-service/internal/platform/metrics"
	"park-course-service/internal/platform/obs"
	"park-course-service/internal/services"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := obs.NewLogger(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	database, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return err
	}
	defer database.Close()

	ctx := context.Background()
	dialect := repositories.DialectForDriver(cfg.DBDriver)

	// Initialize schema and seed the park map on startup for local runs.
	if err := initAndSeed(ctx, database, dialect, cfg.MapSeedPath); err != nil {
		return err
	}

	mapRepo := &repositories.MapRepository{DB: database, Dialect: dialect}
	provider, err := mapRepo.LoadMap(ctx)
	if err != nil {
		return err
	}

	collector := metrics.NewCollector(cfg.MetricsNamespace)
	session := services.NewSession(provider,
		services.WithLogger(logger.Named("course")),
		services.WithObserver(collector),
	)

	statsRepo := &repositories.StatisticsRepository{DB: database, Dialect: dialect}
	stats := services.NewStatisticsService(statsRepo, logger.Named("statistics"))

	router := api.NewRouter(api.RouterDeps{
		Session:           session,
		Statistics:        stats,
		Metrics:           collector,
		Logger:            logger.Named("http"),
		MaxMandatoryStops: cfg.MaxMandatoryStops,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("db_driver", cfg.DBDriver))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-stop:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func initAndSeed(ctx context.Context, database *sql.DB, dialect repositories.Dialect, seedPath string) error {
	if err := repositories.InitSchema(database); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(ctx, database, dialect, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
