package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/zurachavv/skyradar/internal/airport"
	"github.com/zurachavv/skyradar/internal/loader"
	"github.com/zurachavv/skyradar/internal/provider"
	"github.com/zurachavv/skyradar/internal/server"
)

func main() {
	var (
		addr            = flag.String("addr", ":8080", "HTTP listen address")
		shutdownTimeout = flag.Duration("shutdown-timeout", 10*time.Second, "graceful shutdown deadline")
		debug           = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := godotenv.Load(); err != nil {
		log.Warn("no .env file loaded", "err", err)
	}

	token := os.Getenv("FR24_API_TOKEN")
	if token == "" {
		log.Warn("FR24_API_TOKEN not set, aircraft lookups will fail")
	}

	schedule := provider.NewFlightViewClient(log)
	tracking := provider.NewFlightRadarClient(token, log)
	live := provider.NewPlaneFinderClient(log)
	weather := provider.NewWeatherClient(log)
	airports := airport.NewClient(log)

	ld := loader.New(schedule, tracking, live, airports, log)
	srv := server.New(*addr, ld, weather, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), *shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", "err", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
