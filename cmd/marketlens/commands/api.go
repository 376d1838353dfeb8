package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivalero/marketlens/internal/api"
	"github.com/ivalero/marketlens/internal/api/handlers"
)

// apiCmd starts the HTTP server.
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the REST API server.

Endpoints:
  GET  /health                                       - Health check
  GET  /api/markets                                  - Market catalog
  GET  /api/markets/{market}/stocks                  - Latest fundamentals view
  GET  /api/markets/{market}/stocks/{ticker}/history - Daily price bars
  GET  /api/markets/{market}/stats                   - Store stats and freshness
  GET  /api/markets/{market}/alerts                  - Recent validation alerts
  GET  /api/markets/{market}/estimates               - Expected-return ranking
  POST /api/markets/{market}/refresh                 - Trigger a refresh cycle
  POST /api/markets/{market}/purge                   - Purge superseded snapshots
  GET  /api/refresh/ws                               - Refresh progress stream

Example:
  go run ./cmd/marketlens api
  go run ./cmd/marketlens api --port 8085`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if apiPort != "" {
		app.cfg.Port = apiPort
	}

	hub := handlers.NewProgressHub(app.log)
	marketHandler := handlers.NewMarketHandler(app.stores, app.controller, app.cache, hub, app.log)
	router := api.NewRouter(marketHandler, hub, app.log)
	server := api.New(app.cfg, app.log, router)

	go func() {
		if err := server.Start(); err != nil {
			app.log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("Server running on http://localhost:%s\n", app.cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
