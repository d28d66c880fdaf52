package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"news_monitor/internal/config"
	"news_monitor/internal/fetcher"
	"news_monitor/internal/logger"
	"news_monitor/internal/metrics"
	"news_monitor/internal/middleware"
	"news_monitor/internal/server"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

var opts struct {
	Config   string `short:"c" long:"config" env:"CONFIG" default:"config.json" description:"path to the JSON config file"`
	Listen   string `long:"listen" env:"LISTEN" description:"HTTP listen address, overrides the config file"`
	Debug    bool   `long:"dbg" env:"DEBUG" description:"turn on debug mode"`
	TextLogs bool   `long:"text-logs" env:"TEXT_LOGS" description:"plain text logs instead of json"`
}

const shutdownTimeout = 5 * time.Second

func main() {
	// .env is optional
	_ = godotenv.Load()

	if _, err := flags.Parse(&opts); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	logger.Init(logger.Options{Debug: opts.Debug, Text: opts.TextLogs})
	defer logger.Log.Info("Application stopped")

	cfg, err := loadConfig(opts.Config)
	if err != nil {
		logger.Log.Fatalf("Config load error: %v", err)
	}

	m := metrics.New()
	f := fetcher.New(fetcher.Options{
		Feeds:     cfg.Feeds,
		MaxItems:  cfg.MaxItems,
		Timeout:   cfg.FetchTimeoutDuration(),
		UserAgent: cfg.UserAgent,
		Location:  cfg.Location(),
	})
	srv := server.NewServer(f, m, cfg.Location())

	var handler http.Handler = srv.Routes()
	handler = middleware.MetricsMiddleware(m)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.RequestIDMiddleware(handler)

	httpServer := &http.Server{
		Addr:              cfg.Listen,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ewg, ctx := errgroup.WithContext(ctx)
	ewg.Go(func() error {
		logger.Log.Infof("Starting HTTP server on %s", cfg.Listen)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	ewg.Go(func() error {
		<-ctx.Done()
		logger.Log.Info("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := ewg.Wait(); err != nil {
		logger.Log.Fatalf("Server error: %v", err)
	}
}

// loadConfig reads the config file, falling back to the defaults when it
// does not exist, and applies the command line overrides.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Log.Warnf("Config file %s not found, using defaults", path)
		def := config.Default()
		cfg, err = &def, nil
	}
	if err != nil {
		return nil, err
	}

	if opts.Listen != "" {
		cfg.Listen = opts.Listen
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
