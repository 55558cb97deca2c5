package fetch

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/MyCarrier-DevOps/go-flowconfig/internal/reference"
)

// Cached memoizes successful fetches of another Fetcher for a fixed TTL,
// keyed by the reference URI. Errors are never cached. Callers receive their
// own copy of the bytes.
type Cached struct {
	next   Fetcher
	ttl    time.Duration
	cache  *gocache.Cache
	logger *slog.Logger
}

// NewCached wraps next. logger may be nil.
func NewCached(next Fetcher, ttl time.Duration, logger *slog.Logger) *Cached {
	return &Cached{
		next:   next,
		ttl:    ttl,
		cache:  gocache.New(ttl, 2*ttl),
		logger: logger,
	}
}

func (c *Cached) Fetch(ctx context.Context, ref reference.ConfigRef) ([]byte, error) {
	key := ref.String()

	if value, found := c.cache.Get(key); found {
		if data, ok := value.([]byte); ok {
			c.debug(ctx, "cache hit", key)
			return bytes.Clone(data), nil
		}
	}
	c.debug(ctx, "cache miss", key)

	data, err := c.next.Fetch(ctx, ref)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, bytes.Clone(data), c.ttl)
	return data, nil
}

// Flush drops every cached document.
func (c *Cached) Flush() {
	c.cache.Flush()
}

func (c *Cached) debug(ctx context.Context, msg, key string) {
	if c.logger != nil {
		c.logger.DebugContext(ctx, msg, "ref", key)
	}
}
