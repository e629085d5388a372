// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package kvstore provides the key-value stores that hold cache entries.
// Values are opaque bytes; callers decide the encoding. Stores do no
// coordination between writers: the last Set for a key wins.
package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdiddy/scholar-site/pkg/types"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is a minimal key-value store.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases resources held by the store.
	Close() error
}

// Open returns the store selected by cfg.Backend.
func Open(ctx context.Context, cfg types.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case types.StoreMemory:
		return NewMemory(), nil
	case types.StoreFile, "":
		return NewFile(cfg.Dir)
	case types.StoreSQLite:
		return NewSQLite(cfg.Dir)
	case types.StoreMongo:
		return NewMongo(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
