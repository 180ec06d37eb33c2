// Package cache stores derived pedigree artifacts between runs.
//
// # Overview
//
// Laying out and rendering a large cohort repeats the same work whenever a
// PED file is rendered again with the same seed. The pipeline keys each
// family layout by a hash of the family's records and each rendered artifact
// by a hash of its layout, so unchanged families are served from the cache.
//
// # Backends
//
//   - [FileCache]: entries as JSON files under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance, for batch jobs on several hosts
//   - [NullCache]: never stores anything (--no-cache)
//
// # Keys
//
// A [Keyer] builds cache keys; [NewScopedKeyer] prefixes them so several
// cohorts can share one backend without collisions.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the stored value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend.
	Close() error
}

// Default lifetimes of cached entries.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
