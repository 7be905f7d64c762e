// Package main - Entry point for the pottery cost HTTP API
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"pottery-cost/adapters/presets"
	"pottery-cost/adapters/storage"
	"pottery-cost/api"
	"pottery-cost/internal/config"
	"pottery-cost/internal/logging"
)

const version = "0.1.0"

func main() {
	cfgPath := flag.String("config", config.DefaultPath(), "Config file")
	addr := flag.String("addr", "", "Server address (overrides config)")
	noStore := flag.Bool("no-store", false, "Run without session storage")
	flag.Parse()

	if err := run(*cfgPath, *addr, *noStore); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath, addr string, noStore bool) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	config.Set(cfg)
	if err := logging.Initialize(cfg.Logging); err != nil {
		return err
	}
	defer logging.Sync()

	if addr == "" {
		addr = cfg.Server.Addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store storage.Store
	if !noStore {
		store, err = storage.Open(ctx, cfg.Storage.Driver, cfg.Storage.DSN)
		if err != nil {
			logging.Warn("session storage unavailable", zap.Error(err))
			store = nil
		} else {
			defer store.Close()
		}
	}

	loader := presets.NewLoader(presets.LoaderConfig{
		URL:     cfg.Presets.URL,
		TTL:     time.Duration(cfg.Presets.CacheTTLSeconds) * time.Second,
		Timeout: time.Duration(cfg.Presets.TimeoutSeconds) * time.Second,
		Logger:  logging.Named("presets"),
	})

	server := api.NewServer(api.Config{
		Version:           version,
		Currency:          cfg.Currency,
		RequestsPerSecond: cfg.Server.RequestsPerSecond,
		Burst:             cfg.Server.Burst,
		Logger:            logging.Named("api"),
	}, store, loader)

	logging.Info("pottery cost server listening",
		zap.String("addr", addr),
		zap.String("version", version),
		zap.Bool("storage", store != nil),
	)
	return server.ListenAndServe(ctx, addr)
}
