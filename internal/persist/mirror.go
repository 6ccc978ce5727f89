// Package persist mirrors one store's full collection into a blob under a
// fixed logical key. Failures never reach the caller: an unreadable snapshot
// degrades to an empty collection and a failed write leaves the committed
// in-memory state as the source of truth.
package persist

import (
	"context"

	"github.com/angelmondragon/lavka-miniapp/pkg/blobstore"
	"github.com/angelmondragon/lavka-miniapp/pkg/logger"
)

// FailureRecorder counts degraded reads and writes per store.
type FailureRecorder interface {
	IncPersistFailure(store string)
}

// Params groups the collaborators shared by every persisted store.
type Params struct {
	Blobs   blobstore.Store
	Logger  *logger.Logger
	Metrics FailureRecorder
}

type Status int

const (
	// StatusMissing means nothing was ever written under the key.
	StatusMissing Status = iota
	StatusLoaded
	// StatusDiscarded means a snapshot existed but could not be read or decoded.
	StatusDiscarded
)

type Mirror struct {
	store   string
	key     string
	blobs   blobstore.Store
	logg    *logger.Logger
	metrics FailureRecorder
}

// NewMirror binds store (used for logs and metrics) to key. A nil Blobs
// backend keeps the store purely in memory.
func NewMirror(store, key string, params Params) *Mirror {
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Mirror{
		store:   store,
		key:     key,
		blobs:   params.Blobs,
		logg:    logg,
		metrics: params.Metrics,
	}
}

func (m *Mirror) Key() string {
	return m.key
}

// Load decodes the snapshot into dest. dest is left untouched unless the
// status is StatusLoaded.
func (m *Mirror) Load(ctx context.Context, dest any) Status {
	if m.blobs == nil {
		return StatusMissing
	}
	found, err := blobstore.LoadJSON(ctx, m.blobs, m.key, dest)
	if err != nil {
		m.degraded(ctx, "persist.load_discarded", err)
		return StatusDiscarded
	}
	if !found {
		return StatusMissing
	}
	return StatusLoaded
}

// Save replaces the snapshot with value.
func (m *Mirror) Save(ctx context.Context, value any) {
	if m.blobs == nil {
		return
	}
	if err := blobstore.SaveJSON(ctx, m.blobs, m.key, value); err != nil {
		m.degraded(ctx, "persist.save_failed", err)
	}
}

func (m *Mirror) degraded(ctx context.Context, msg string, err error) {
	ctx = m.logg.WithFields(ctx, map[string]any{"store": m.store, "blob_key": m.key})
	m.logg.WarnErr(ctx, msg, err)
	if m.metrics != nil {
		m.metrics.IncPersistFailure(m.store)
	}
}
