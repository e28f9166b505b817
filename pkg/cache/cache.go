// Package cache stores rendered chart artifacts.
//
// Rasterising a chart is far more expensive than writing its SVG, so the
// CLI and the HTTP server cache PNG and PDF output keyed by the SVG they
// were produced from (see [RenderKey]). Three backends are provided:
//   - [FileCache]: a directory of JSON entries, the CLI default
//   - [RedisCache]: a shared Redis instance, for multi-instance servers
//   - [NullCache]: never stores anything (--no-cache)
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long rendered artifacts are kept.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte-oriented key/value store with expiration.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A ttl of zero means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by backends that can drop every entry they hold.
// Clear reports how many entries were removed.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}
