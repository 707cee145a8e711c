package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/imunderthetree/Codeforces-Dashboard/internal/api"
	"github.com/imunderthetree/Codeforces-Dashboard/internal/api/handlers"
	"github.com/imunderthetree/Codeforces-Dashboard/internal/catalog"
	"github.com/imunderthetree/Codeforces-Dashboard/internal/codeforces"
	"github.com/imunderthetree/Codeforces-Dashboard/internal/dashboard"
	"github.com/imunderthetree/Codeforces-Dashboard/pkg/config"
	"github.com/imunderthetree/Codeforces-Dashboard/pkg/httputil"
	"github.com/imunderthetree/Codeforces-Dashboard/pkg/logger"
	"github.com/imunderthetree/Codeforces-Dashboard/pkg/redis"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard server",
	Long: `Starts the HTTP server for the dashboard.

This command:
- serves the embedded single-page dashboard at /
- serves the JSON API consumed by the page

Endpoints:
  GET  /health
  GET  /api/user/{handle}/dashboard
  GET  /api/user/{handle}/recommendations?tag=T&count=N
  GET  /api/problemset/status
  POST /api/problemset/refresh

Example:
  go run ./cmd/cfdash serve
  go run ./cmd/cfdash serve --port 8080`,
	RunE: runServe,
}

var servePort string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "server port (overrides PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if servePort != "" {
		cfg.Port = servePort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing dashboard server")

	// 3. Optional Redis for the catalog cache
	rdb, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer rdb.Close()

	// 4. HTTP client with the Codeforces politeness limit
	httpClient := httputil.New(cfg.Codeforces.RequestTimeout, log).
		WithRateLimit(cfg.Codeforces.RequestInterval)

	// 5. Codeforces API client
	cfClient := codeforces.NewClient(cfg.Codeforces.BaseURL, httpClient, log)

	// 6. Session catalog store
	store := catalog.NewStore(cfClient, redis.NewCache(rdb, "cfdash"), cfg.Codeforces.CatalogTTL, log)

	// 7. Dashboard service
	svcCfg := dashboard.DefaultConfig()
	svcCfg.SubmissionCount = cfg.Codeforces.SubmissionCount
	service := dashboard.NewService(cfClient, store, svcCfg, log)

	// 8. Handler, router, server
	dashboardHandler := handlers.NewDashboardHandler(service, store, log)
	router := api.NewRouter(dashboardHandler, log)
	server := api.New(cfg, log, router)

	// 9. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("Dashboard server started successfully")
	fmt.Printf("\nServer running on http://localhost:%s\n", cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
