package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"pdfvault/internal/config"
	"pdfvault/internal/http"
	"pdfvault/internal/vault"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Open the vault and both collection indexes
	ctx := context.Background()
	manager, report, err := vault.Open(ctx, cfg.VaultPath)
	if err != nil {
		log.Fatalf("Failed to open vault: %v", err)
	}
	defer func() {
		_ = manager.Close()
	}()
	if len(report.Created) > 0 {
		slog.Info("Vault bootstrapped", "created", report.Created)
	}
	slog.Info("Vault opened", "path", cfg.VaultPath)

	// Create router with dependencies
	deps := &http.Deps{
		Vault:        manager,
		Report:       report,
		DefaultLimit: cfg.SearchLimit,
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
