// Package main implements the worldclock API server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/codeGROOVE-dev/worldclock/pkg/catalog"
	"github.com/codeGROOVE-dev/worldclock/pkg/config"
	"github.com/codeGROOVE-dev/worldclock/pkg/geo"
	"github.com/codeGROOVE-dev/worldclock/pkg/httpcache"
	"github.com/codeGROOVE-dev/worldclock/pkg/state"
	"github.com/codeGROOVE-dev/worldclock/pkg/web"
)

var (
	verbose = flag.Bool("verbose", false, "Enable verbose logging")
	version = flag.Bool("version", false, "Show version")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Println("worldclock-server v1.0.0")
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	level := cfg.LogLevel
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(logger, cfg); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, cfg *config.Config) error {
	statePath := cfg.StateFile
	if statePath == "" {
		var err error
		if statePath, err = state.DefaultPath(); err != nil {
			return err
		}
	}
	store := state.Open(statePath, state.WithLogger(logger))

	fetcher := httpcache.New(cfg.CacheTTL, nil, logger)
	cat := catalog.New(fetcher,
		catalog.WithURL(cfg.CatalogURL),
		catalog.WithLogger(logger),
	)
	assist := geo.NewAssist(geo.NewClient(fetcher,
		geo.WithZoneAPIURL(cfg.ZoneAPIURL),
		geo.WithGeocodeURL(cfg.GeocodeURL),
		geo.WithLogger(logger),
	))

	srv := web.New(cfg.HTTPAddr, logger, store, cat, assist)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run(ctx) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		if err := srv.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}
}
