package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/Dhananjay-JSR/webhooky/internal/config"
	"github.com/Dhananjay-JSR/webhooky/internal/database"
	"github.com/Dhananjay-JSR/webhooky/internal/server"
	"github.com/Dhananjay-JSR/webhooky/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}

	logger := newLogger(cfg.Primary.Env)

	var nrApp *newrelic.Application
	if cfg.Observability.Enabled {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.Observability.ServiceName),
			newrelic.ConfigLicense(cfg.Observability.LicenseKey),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("new relic agent not started")
			nrApp = nil
		}
	}

	db := database.New(
		cfg.Database.DSN(),
		time.Duration(cfg.Database.ConnectTimeout)*time.Second,
		logger,
		nrApp,
	)
	defer db.Close()

	store := storage.New(db, logger)

	// Warm the connection. An unreachable store is logged, never fatal:
	// webhooks are acknowledged either way.
	if !store.Health(context.Background()) {
		logger.Warn().Msg("store unreachable at startup; captures will not persist until it returns")
	}

	srv := server.New(cfg, store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("port", cfg.Server.Port).Str("env", cfg.Primary.Env).Msg("webhooky listening")
	if err := srv.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("server exited")
		os.Exit(1)
	}
}

func newLogger(env string) zerolog.Logger {
	if env == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
