// Package main provides the MCP server entry point for docsearch.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/joho/godotenv"

	"github.com/bull/docsearch-mcp/internal/config"
	"github.com/bull/docsearch-mcp/internal/logging"
	mcpserver "github.com/bull/docsearch-mcp/internal/mcp"
	"github.com/bull/docsearch-mcp/internal/search"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const warmupTimeout = 2 * time.Minute

func main() {
	// Load .env file if present (local development), ignore if missing (production)
	envErr := godotenv.Load()

	cfg, err := config.Load(getEnv("DOCSEARCH_CONFIG", config.DefaultPath))
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// stdout belongs to the stdio transport
	logger := logging.New(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format}, os.Stderr)
	slog.SetDefault(logger)
	if envErr != nil {
		logger.Debug("No .env file found, using environment variables")
	}

	// Create context that cancels on SIGTERM/SIGINT
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	opts := cfg.SearchOptions()
	opts.Logger = logger
	manager := search.NewManager(cfg.DocumentsDir, opts)

	server := mcpserver.NewServer(&mcpserver.Config{
		Manager: manager,
		Logger:  logger,
		Version: version,
	})
	mux := mcpserver.NewMux(server, nil)

	// Warm the index in the background so the transport comes up immediately.
	// Tool calls that arrive first build it on demand.
	go warmUp(ctx, manager, logger)

	addr := "0.0.0.0:" + cfg.Server.Port
	if cfg.Server.HTTP {
		// HTTP mode: serve MCP over HTTP for remote clients
		logger.Info("Starting HTTP server", "addr", addr, "mcp", "/mcp", "health", "/health")
		if err := serveHTTP(ctx, addr, mux); err != nil {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
		return
	}

	// Stdio mode: run MCP server over stdin/stdout for local clients
	// Also start HTTP health endpoint in background for local testing
	go func() {
		logger.Info("Starting health server", "addr", addr)
		if err := serveHTTP(ctx, addr, mux); err != nil {
			logger.Warn("Health server error", "error", err)
		}
	}()

	if err := server.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// warmUp builds the index, retrying with exponential backoff while the
// documents directory is not there yet (for example a volume still mounting).
func warmUp(ctx context.Context, manager *search.Manager, logger *slog.Logger) {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = warmupTimeout

	operation := func() error {
		_, err := manager.Engine(ctx)
		if err == nil {
			return nil
		}
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("Documents directory not available, retrying", "dir", manager.Dir(), "error", err)
			return err
		}
		return backoff.Permanent(err)
	}

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		logger.Error("Index warm-up failed", "dir", manager.Dir(), "error", err)
		return
	}
	if e, ok := manager.Current(); ok {
		logger.Info("Index ready", "documents", e.Stats().TotalDocuments)
	}
}

func serveHTTP(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
