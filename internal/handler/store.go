package handler

import (
	"context"

	"github.com/Dhananjay-JSR/webhooky/internal/model"
)

// Store is the fail-safe persistence surface handlers depend on. Every
// operation reports failure through its ok flag and still returns a usable
// value; none of them ever error.
type Store interface {
	CreateEndpoint(ctx context.Context, id, name string) (model.Endpoint, bool)
	GetEndpoint(ctx context.Context, id string) (*model.Endpoint, bool)
	AppendLog(ctx context.Context, rec model.CaptureRecord) bool
	QueryLogs(ctx context.Context, endpointID string, limit, skip int) ([]model.CaptureRecord, int, bool)
	Health(ctx context.Context) bool
}
