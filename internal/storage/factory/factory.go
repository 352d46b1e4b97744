// Package factory constructs ready-to-use storage backends from a
// configuration tag, performing whatever engine-specific bootstrap
// (file open, schema migration) the backend needs.
package factory

import (
	"context"
	"fmt"

	"uservault/internal/storage"
	"uservault/internal/storage/bolt"
	"uservault/internal/storage/memory"
	"uservault/internal/storage/sqlite"
)

// Options carries the per-engine settings a backend may need.
type Options struct {
	// SQLitePath is the relational database file, or sqlite.InMemoryDSN
	// for an ephemeral instance.
	SQLitePath string

	// BoltPath is the embedded store file.
	BoltPath string
}

// Open builds the backend selected by t. Callers own the returned handle
// and must Close it.
func Open(ctx context.Context, t storage.BackendType, opts Options) (storage.Storage, error) {
	switch t {
	case storage.BackendInMemory:
		return memory.New(), nil
	case storage.BackendEmbedded:
		return bolt.Open(opts.BoltPath)
	case storage.BackendRelational:
		return sqlite.Open(ctx, opts.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown backend type %q", t)
	}
}
