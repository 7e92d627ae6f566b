/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the payroll engine server. Handles configuration,
  dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (.env / environment, flags override)
  2. Configure structured logging
  3. Open the SQLite store (or in-memory with -db="")
  4. Seed the starter dataset into empty stores
  5. Wire services, handler and router
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (overrides PORT)
  -db      SQLite database path (overrides DB_PATH)
           Use "" for the in-memory store

ENVIRONMENT:
  PORT, DB_PATH, LOG_LEVEL, STRICT_AUDIT, SEED. See config/config.go.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nomina/payroll-engine/api"
	"github.com/nomina/payroll-engine/attendance"
	"github.com/nomina/payroll-engine/config"
	"github.com/nomina/payroll-engine/fixtures"
	"github.com/nomina/payroll-engine/liquidation"
	"github.com/nomina/payroll-engine/logging"
	"github.com/nomina/payroll-engine/roster"
	"github.com/nomina/payroll-engine/store/memory"
	"github.com/nomina/payroll-engine/store/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// Flags override the environment.
	port := flag.Int("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path (empty for in-memory store)")
	flag.Parse()

	log := logging.Setup(logging.ParseLevel(cfg.LogLevel))

	// Initialize stores. A single composite store backs all three contracts.
	var (
		attStore    attendance.Store
		rosterStore roster.Store
		configStore liquidation.ConfigStore
	)
	if *dbPath == "" {
		mem := memory.New()
		attStore, rosterStore, configStore = mem, mem, mem
		log.Info("using in-memory store")
	} else {
		db, err := sqlite.New(*dbPath)
		if err != nil {
			log.Error("failed to initialize database", "path", *dbPath, "error", err)
			os.Exit(1)
		}
		defer db.Close()
		attStore, rosterStore, configStore = db, db, db
		log.Info("using sqlite store", "path", *dbPath)
	}

	if cfg.Seed {
		if err := fixtures.Seed(context.Background(), rosterStore, configStore); err != nil {
			log.Error("failed to seed starter data", "error", err)
			os.Exit(1)
		}
	}

	svc := attendance.NewService(attStore, cfg.StrictAudit)
	handler := api.NewHandler(svc, rosterStore, configStore)
	router := api.NewRouter(handler, log)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", "addr", fmt.Sprintf("http://localhost:%d", *port), "strict_audit", cfg.StrictAudit)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
