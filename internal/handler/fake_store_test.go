package handler

import (
	"context"
	"time"

	"github.com/Dhananjay-JSR/webhooky/internal/model"
)

// fakeStore implements Store in memory. With down set, every operation
// degrades the way the real fail-safe store does.
type fakeStore struct {
	down      bool
	endpoints map[string]model.Endpoint
	logs      []model.CaptureRecord
	appended  chan model.CaptureRecord

	lastLimit int
	lastSkip  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		endpoints: make(map[string]model.Endpoint),
		appended:  make(chan model.CaptureRecord, 16),
	}
}

func (f *fakeStore) CreateEndpoint(_ context.Context, id, name string) (model.Endpoint, bool) {
	ep := model.Endpoint{ID: id, CreatedAt: time.Now().UTC(), Name: name}
	if f.down {
		return ep, false
	}
	f.endpoints[id] = ep
	return ep, true
}

func (f *fakeStore) GetEndpoint(_ context.Context, id string) (*model.Endpoint, bool) {
	if f.down {
		return nil, false
	}
	ep, found := f.endpoints[id]
	if !found {
		return nil, true
	}
	return &ep, true
}

func (f *fakeStore) AppendLog(_ context.Context, rec model.CaptureRecord) bool {
	f.appended <- rec
	if f.down {
		return false
	}
	f.logs = append(f.logs, rec)
	return true
}

func (f *fakeStore) QueryLogs(_ context.Context, endpointID string, limit, skip int) ([]model.CaptureRecord, int, bool) {
	f.lastLimit, f.lastSkip = limit, skip
	if f.down {
		return []model.CaptureRecord{}, 0, false
	}
	matched := make([]model.CaptureRecord, 0)
	for _, rec := range f.logs {
		if rec.EndpointID == endpointID {
			matched = append(matched, rec)
		}
	}
	total := len(matched)
	if skip > len(matched) {
		skip = len(matched)
	}
	matched = matched[skip:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, true
}

func (f *fakeStore) Health(_ context.Context) bool {
	return !f.down
}

// waitAppend blocks until the fire-and-forget persist lands.
func (f *fakeStore) waitAppend(timeout time.Duration) (model.CaptureRecord, bool) {
	select {
	case rec := <-f.appended:
		return rec, true
	case <-time.After(timeout):
		return model.CaptureRecord{}, false
	}
}
