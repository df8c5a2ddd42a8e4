package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tineo1298-dev/my-trade-journal/internal/config"
	"github.com/tineo1298-dev/my-trade-journal/internal/database"
	"github.com/tineo1298-dev/my-trade-journal/internal/journal"
	"github.com/tineo1298-dev/my-trade-journal/internal/logger"
	"github.com/tineo1298-dev/my-trade-journal/internal/supabase"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Connect to the database
	db, err := database.NewDatabase(cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connection successful and schema migrated.")

	// Supabase collaborators
	images := supabase.NewStorageClient(&cfg.Supabase, log.Named("storage"))
	auth := supabase.NewAuthClient(&cfg.Supabase, log.Named("auth"))

	// Journal core
	store := journal.NewStore(db)
	svc := journal.NewService(store, images, log.Named("journal"), cfg.Journal.MaxLeverage)

	// Setup HTTP server
	apiHandler := NewAPIHandler(log, svc, auth)
	mux := http.NewServeMux()
	apiHandler.Register(mux)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{Addr: addr, Handler: mux}

	// Shut the server down on SIGINT/SIGTERM
	go func() {
		sigchan := make(chan os.Signal, 1)
		signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)
		<-sigchan
		log.Info("Shutdown signal received, gracefully shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	log.Info("Starting web server", zap.String("address", addr))
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal("Web server failed", zap.Error(err))
	}

	log.Info("Server has been shut down.")
}
