// Package cache provides a small key/value cache used to remember expensive
// lookups between CLI runs, such as the platform SDK location.
//
// Two implementations are provided:
//   - [FileCache] stores entries as JSON files under a directory
//   - [NullCache] stores nothing (caching disabled)
//
// Keys are built with a [Keyer] so that every producer uses the same
// namespacing and hashing.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with an optional TTL.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
