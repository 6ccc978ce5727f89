// Package blobstore is the key -> blob persistence port the shopper stores
// mirror their snapshots into. Each key holds one complete, self-describing
// JSON snapshot; there is no partial update or versioning.
package blobstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when nothing was ever stored under the key.
var ErrNotFound = errors.New("blob not found")

// Store reads and writes whole blobs.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// LoadJSON decodes the blob under key into dest. It reports false with a nil
// error when the key has never been written.
func LoadJSON(ctx context.Context, s Store, key string, dest any) (bool, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("read blob %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return true, fmt.Errorf("decode blob %s: %w", key, err)
	}
	return true, nil
}

// SaveJSON replaces the blob under key with the JSON encoding of value.
func SaveJSON(ctx context.Context, s Store, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode blob %s: %w", key, err)
	}
	if err := s.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("write blob %s: %w", key, err)
	}
	return nil
}

type prefixed struct {
	inner  Store
	prefix string
}

// Prefixed scopes every key of inner under prefix, so that several shoppers
// can share one backend while each store keeps its fixed logical name.
func Prefixed(inner Store, prefix string) Store {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return inner
	}
	return &prefixed{inner: inner, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) ([]byte, error) {
	return p.inner.Get(ctx, p.prefix+":"+key)
}

func (p *prefixed) Put(ctx context.Context, key string, value []byte) error {
	return p.inner.Put(ctx, p.prefix+":"+key, value)
}
