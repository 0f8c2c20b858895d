// Package database owns the process-wide Postgres pool. The pool is created
// lazily on first use and cached for the process lifetime; a failed connect
// attempt caches nothing, so the next caller retries from scratch.
package database

import (
	"context"
	"sync"
	"time"

	zerologadapter "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/multitracer"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// Database wraps a lazily-initialized pgx pool shared by all requests.
// Connect attempts are bounded by the configured timeout; they never hang.
type Database struct {
	dsn            string
	connectTimeout time.Duration
	logger         zerolog.Logger
	nrApp          *newrelic.Application

	mu   sync.Mutex
	pool *pgxpool.Pool
}

// New builds a Database. No connection is attempted until Acquire.
// nrApp may be nil when APM is disabled.
func New(dsn string, connectTimeout time.Duration, logger zerolog.Logger, nrApp *newrelic.Application) *Database {
	return &Database{
		dsn:            dsn,
		connectTimeout: connectTimeout,
		logger:         logger,
		nrApp:          nrApp,
	}
}

// Acquire returns the shared pool, connecting (and migrating the schema) on
// first use. Safe to call from concurrent requests; the mutex ensures at
// most one live pool exists.
func (d *Database) Acquire(ctx context.Context) (*pgxpool.Pool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pool != nil {
		return d.pool, nil
	}

	ctx, cancel := context.WithTimeout(ctx, d.connectTimeout)
	defer cancel()

	cfg, err := pgxpool.ParseConfig(d.dsn)
	if err != nil {
		return nil, err
	}
	cfg.ConnConfig.ConnectTimeout = d.connectTimeout
	cfg.ConnConfig.Tracer = d.tracer()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if err := d.migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	d.pool = pool
	d.logger.Info().Msg("database connected")
	return pool, nil
}

// Close tears down the cached pool, if any.
func (d *Database) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pool != nil {
		d.pool.Close()
		d.pool = nil
	}
}

func (d *Database) tracer() pgx.QueryTracer {
	tracers := []pgx.QueryTracer{
		&tracelog.TraceLog{
			Logger:   zerologadapter.NewLogger(d.logger),
			LogLevel: tracelog.LogLevelWarn,
		},
	}
	if d.nrApp != nil {
		tracers = append(tracers, nrpgx5.NewTracer())
	}
	return multitracer.New(tracers...)
}
