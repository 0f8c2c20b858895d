// Package storage is the fail-safe persistence façade. Every operation
// returns an ok flag plus a usable fallback value instead of an error;
// storage failures are logged here and never propagate to callers.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/Dhananjay-JSR/webhooky/internal/database"
	"github.com/Dhananjay-JSR/webhooky/internal/model"
)

// Store wraps the shared database with fail-soft operations.
type Store struct {
	db     *database.Database
	logger zerolog.Logger
}

// New returns a Store over db.
func New(db *database.Database, logger zerolog.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// CreateEndpoint inserts a new endpoint row. The returned Endpoint is always
// usable, built from the locally known id and clock; ok reports whether the
// write actually happened.
func (s *Store) CreateEndpoint(ctx context.Context, id, name string) (model.Endpoint, bool) {
	ep := model.Endpoint{ID: id, CreatedAt: time.Now().UTC(), Name: name}

	pool, err := s.db.Acquire(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Str("endpoint_id", id).Msg("create endpoint: store unreachable")
		return ep, false
	}
	var dbName *string
	if name != "" {
		dbName = &name
	}
	_, err = pool.Exec(ctx,
		`INSERT INTO endpoints (id, name, created_at) VALUES ($1, $2, $3)`,
		id, dbName, ep.CreatedAt)
	if err != nil {
		s.logger.Warn().Err(err).Str("endpoint_id", id).Msg("create endpoint failed")
		return ep, false
	}
	return ep, true
}

// GetEndpoint returns the stored endpoint, or nil if there is no row.
// ok is false only when the store could not answer.
func (s *Store) GetEndpoint(ctx context.Context, id string) (*model.Endpoint, bool) {
	pool, err := s.db.Acquire(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Str("endpoint_id", id).Msg("get endpoint: store unreachable")
		return nil, false
	}
	var ep model.Endpoint
	var name *string
	err = pool.QueryRow(ctx,
		`SELECT id, name, created_at FROM endpoints WHERE id = $1`, id).
		Scan(&ep.ID, &name, &ep.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, true
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("endpoint_id", id).Msg("get endpoint failed")
		return nil, false
	}
	if name != nil {
		ep.Name = *name
	}
	return &ep, true
}

// AppendLog persists one capture record. The result is diagnostic only: the
// ingestion response never depends on it.
func (s *Store) AppendLog(ctx context.Context, rec model.CaptureRecord) bool {
	pool, err := s.db.Acquire(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Str("endpoint_id", rec.EndpointID).Msg("append log: store unreachable")
		return false
	}

	headers, err := json.Marshal(rec.Headers)
	if err != nil {
		s.logger.Warn().Err(err).Msg("append log: encode headers")
		return false
	}
	query, err := json.Marshal(rec.Query)
	if err != nil {
		s.logger.Warn().Err(err).Msg("append log: encode query")
		return false
	}
	var body []byte
	if rec.Body != nil {
		// a body the normalizer produced always marshals; degrade to NULL if not
		if body, err = json.Marshal(rec.Body); err != nil {
			body = nil
		}
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO logs (endpoint_id, method, headers, query, body, content_type, size, ip, captured_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.EndpointID, rec.Method, headers, query, body, rec.ContentType, rec.Size, rec.IP, rec.Timestamp)
	if err != nil {
		s.logger.Warn().Err(err).Str("endpoint_id", rec.EndpointID).Msg("append log failed")
		return false
	}
	return true
}

// QueryLogs returns one page of records for endpointID, newest first (ties
// broken by insertion order), plus the total count. On failure records is
// empty, total is 0 and ok is false.
func (s *Store) QueryLogs(ctx context.Context, endpointID string, limit, skip int) ([]model.CaptureRecord, int, bool) {
	pool, err := s.db.Acquire(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Str("endpoint_id", endpointID).Msg("query logs: store unreachable")
		return []model.CaptureRecord{}, 0, false
	}

	rows, err := pool.Query(ctx,
		`SELECT endpoint_id, method, headers, query, body, content_type, size, ip, captured_at
		 FROM logs
		 WHERE endpoint_id = $1
		 ORDER BY captured_at DESC, id DESC
		 LIMIT $2 OFFSET $3`,
		endpointID, limit, skip)
	if err != nil {
		s.logger.Warn().Err(err).Str("endpoint_id", endpointID).Msg("query logs failed")
		return []model.CaptureRecord{}, 0, false
	}
	defer rows.Close()

	logs := make([]model.CaptureRecord, 0)
	for rows.Next() {
		rec, err := scanLog(rows)
		if err != nil {
			s.logger.Warn().Err(err).Str("endpoint_id", endpointID).Msg("query logs: scan")
			return []model.CaptureRecord{}, 0, false
		}
		logs = append(logs, rec)
	}
	if err := rows.Err(); err != nil {
		s.logger.Warn().Err(err).Str("endpoint_id", endpointID).Msg("query logs failed")
		return []model.CaptureRecord{}, 0, false
	}

	var total int
	err = pool.QueryRow(ctx,
		`SELECT count(*) FROM logs WHERE endpoint_id = $1`, endpointID).Scan(&total)
	if err != nil {
		s.logger.Warn().Err(err).Str("endpoint_id", endpointID).Msg("count logs failed")
		return []model.CaptureRecord{}, 0, false
	}
	return logs, total, true
}

// Health reports whether a live round-trip to the store currently succeeds.
func (s *Store) Health(ctx context.Context) bool {
	pool, err := s.db.Acquire(ctx)
	if err != nil {
		return false
	}
	return pool.Ping(ctx) == nil
}

func scanLog(rows pgx.Rows) (model.CaptureRecord, error) {
	var rec model.CaptureRecord
	var headers, query, body []byte
	if err := rows.Scan(&rec.EndpointID, &rec.Method, &headers, &query, &body,
		&rec.ContentType, &rec.Size, &rec.IP, &rec.Timestamp); err != nil {
		return rec, err
	}
	if err := json.Unmarshal(headers, &rec.Headers); err != nil {
		return rec, err
	}
	if err := json.Unmarshal(query, &rec.Query); err != nil {
		return rec, err
	}
	if body != nil {
		rec.Body = json.RawMessage(body)
	}
	return rec, nil
}
