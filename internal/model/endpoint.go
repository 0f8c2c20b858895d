package model

import "time"

// Endpoint is a user-created webhook target. The ID is a short URL-safe
// token; senders may target an ID that was never durably recorded, so an
// Endpoint row is a convenience, not a precondition for ingestion.
type Endpoint struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Name      string    `json:"name,omitempty"`
}
