// Package response defines the JSON wire shapes for every external
// interface. Field names are part of the contract and must not change.
package response

import (
	"time"

	"github.com/Dhananjay-JSR/webhooky/internal/model"
)

// HookAck is the unconditional ingestion acknowledgement.
type HookAck struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// LogPage is one page of captured records.
type LogPage struct {
	Success bool                  `json:"success"`
	Logs    []model.CaptureRecord `json:"logs"`
	Total   int                   `json:"total"`
	Limit   int                   `json:"limit"`
	Skip    int                   `json:"skip"`
}

// LogsUnavailable is the read-path degradation shape, served with 503.
type LogsUnavailable struct {
	Success bool                  `json:"success"`
	Error   string                `json:"error"`
	Logs    []model.CaptureRecord `json:"logs"`
	Total   int                   `json:"total"`
}

// EndpointFallback is returned when endpoint creation could not be
// persisted. The id is still valid for ingestion.
type EndpointFallback struct {
	ID        string    `json:"id"`
	Warning   string    `json:"warning"`
	CreatedAt time.Time `json:"createdAt"`
}

// VirtualEndpoint stands in for an endpoint the store does not know about.
type VirtualEndpoint struct {
	ID        string     `json:"id"`
	CreatedAt *time.Time `json:"createdAt"`
	IsVirtual bool       `json:"isVirtual"`
}

// Health reports service and store status. Always served with 200.
type Health struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// Error is the caller-misuse shape (400).
type Error struct {
	Error string `json:"error"`
}

// Timestamp formats t the way every response timestamp is rendered.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
