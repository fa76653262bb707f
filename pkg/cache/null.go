package cache

import (
	"context"
	"time"

	"github.com/matzehuels/resloader/pkg/observability"
)

// NullCache stores nothing. It backs --no-cache and stands in when the
// cache directory cannot be created, so SDK discovery runs every time.
// Lookups still report misses to the cache hooks.
type NullCache struct{}

// NewNullCache returns a cache that always misses.
func NewNullCache() Cache {
	return NullCache{}
}

func (NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	observability.Cache().OnCacheMiss(ctx, keyType(key))
	return nil, false, nil
}

func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NullCache) Delete(context.Context, string) error { return nil }

func (NullCache) Close() error { return nil }

var _ Cache = NullCache{}
