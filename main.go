package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"activity-forecast/api"
	"activity-forecast/app"
	"activity-forecast/collector"
	"activity-forecast/datasource"
	"activity-forecast/logging"
	"activity-forecast/metrics"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	envErr := godotenv.Load()

	// Parse command line arguments
	port := flag.Int("port", 0, "Port to run the server on (overrides config)")
	configFile := flag.String("config", "config.json", "Path to configuration file")
	enableRateLimiting := flag.Bool("rate-limit", true, "Enable upstream rate limiting")
	flag.Parse()

	// Load configuration
	config, err := datasource.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		config.HTTP.Port = *port
	}

	logger, err := logging.New(os.Stderr, config.Logging.Level, config.Logging.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to configure logging: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		logger.Warn("error loading .env file", "error", envErr)
	}

	m := metrics.New()
	a, err := app.New(config, app.Options{RateLimit: *enableRateLimiting, Metrics: m}, logger)
	if err != nil {
		logger.Error("failed to build service", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Keep configured locations resolved in the background
	warmer := collector.NewLocationWarmer(a.Geocoder, config.WarmLocations, config.WarmInterval.Duration, logger)
	warmer.SetFetchTimeout(config.Upstream.Timeout.Duration)
	stopWarmer := warmer.Start(ctx)

	addr := net.JoinHostPort(config.HTTP.Host, strconv.Itoa(config.HTTP.Port))
	server := api.NewServer(a.Aggregator, m, logger, addr)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down", "reason", context.Cause(ctx))
	case err := <-serverErr:
		if err != nil {
			logger.Error("server stopped", "error", err)
		}
	}

	stopWarmer()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}

	hits, misses := a.Geocoder.CacheStats()
	logger.Info("shutdown complete", "cache_hits", hits, "cache_misses", misses)
}
