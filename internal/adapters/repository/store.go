// Package repository loads the career catalog from tabular sources and
// serves immutable snapshots to the scoring engine.
package repository

import (
	"context"

	"github.com/okian/compass/internal/domain/catalog"
)

// Store provides read access to the catalog. The catalog is loaded
// wholesale, never incrementally; Snapshot hands out one consistent,
// immutable view per engine call so a reload can never produce a partial
// catalog inside a single ranking.
type Store interface {
	// Snapshot returns the current catalog, or ErrUnavailable when no
	// catalog has been loaded successfully.
	Snapshot(ctx context.Context) (*catalog.Catalog, error)

	// Reload replaces the catalog with a fresh load of the backing
	// tables. On failure the previous snapshot, if any, stays in place.
	Reload(ctx context.Context) error

	// Available reports whether a catalog snapshot is currently loaded.
	Available() bool
}
