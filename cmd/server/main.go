/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the staffing server. Handles configuration,
  dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (flags > env > .env > config.yaml > defaults)
  2. Build the zap logger
  3. Initialize SQLite store
  4. Create the operations service and API handler
  5. Configure HTTP router
  6. Start the snapshot scheduler
  7. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (overrides STAFFING_PORT)
  -db      SQLite database path (overrides STAFFING_DB_PATH)
           Use ":memory:" for in-memory database

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop the snapshot scheduler
  2. Stop accepting new connections
  3. Wait for active requests to complete (30s timeout)
  4. Close database connection
  5. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/staffing.db"

  # Run with in-memory database and a demo scenario
  ./server -db=":memory:"
  curl -X POST localhost:8080/api/scenarios/load -d '{"scenario_id":"small-crew"}'

SEE ALSO:
  - config/config.go: Configuration keys
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jbrannon972/MITAPP-sub000/api"
	"github.com/jbrannon972/MITAPP-sub000/config"
	"github.com/jbrannon972/MITAPP-sub000/logging"
	"github.com/jbrannon972/MITAPP-sub000/operations"
	"github.com/jbrannon972/MITAPP-sub000/schedule"
	"github.com/jbrannon972/MITAPP-sub000/staffing"
	"github.com/jbrannon972/MITAPP-sub000/store/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Flags
	port := flag.Int("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	flag.Parse()

	logger, err := logging.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.String("path", *dbPath), zap.Error(err))
	}
	defer store.Close()

	svc, err := operations.NewService(store, operations.Options{
		Weeks:      schedule.WeekNumbererFor(cfg.WeekNumbering),
		Forecaster: staffing.DefaultForecast{},
		DefaultConfig: staffing.NewConfig(
			cfg.DefaultDriveTimeHours,
			cfg.DefaultOvertimeHours,
			cfg.DefaultJobDurationHours,
		),
		CacheSize: cfg.CacheSize,
		Logger:    logger.Named("operations"),
	})
	if err != nil {
		logger.Fatal("failed to create service", zap.Error(err))
	}

	handler := api.NewHandler(svc, logger.Named("api"))
	router := api.NewRouter(handler, cfg.AllowedOrigins, logger.Named("http"))

	scheduler := api.NewSnapshotScheduler(svc, logger)
	scheduler.Interval = cfg.SnapshotInterval
	scheduler.Start()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server starting",
			zap.Int("port", *port),
			zap.String("db", *dbPath),
			zap.String("week_numbering", cfg.WeekNumbering),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("server stopped")
}
