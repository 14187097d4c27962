// Package redis provides a fold source over Redis lists.
package redis

import (
	"context"
	"fmt"

	backend "github.com/redis/go-redis/v9"

	"github.com/lguimbarda/min-fold/fold/core"
	"github.com/lguimbarda/min-fold/fold/numeric"
)

// DefaultPageSize is the number of list entries fetched per LRANGE.
const DefaultPageSize = 256

// Lister is the subset of the go-redis API the list source needs.
// *redis.Client and *redis.ClusterClient satisfy it.
type Lister interface {
	LRange(ctx context.Context, key string, start, stop int64) *backend.StringSliceCmd
}

type config struct {
	pageSize int64
}

// ListOption configures List.
type ListOption func(*config)

// WithPageSize sets how many entries each round trip fetches.
// Values below 1 keep the default.
func WithPageSize(n int) ListOption {
	return func(c *config) {
		if n > 0 {
			c.pageSize = int64(n)
		}
	}
}

// List creates a Source over the Redis list at key. Each pass pages
// through the list from the head with LRANGE and parses every entry with
// parse. Entries pushed during a pass may or may not be seen.
//
// The cursor passes the fold's context to every round trip, so a
// canceled fold stops at the next page boundary with the context error.
func List[T any](client Lister, key string, parse numeric.Parser[T], opts ...ListOption) core.Source[T] {
	cfg := config{pageSize: DefaultPageSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	return core.SourceFunc[T](func(context.Context) core.Cursor[T] {
		return &listCursor[T]{client: client, key: key, parse: parse, pageSize: cfg.pageSize}
	})
}

type listCursor[T any] struct {
	client   Lister
	key      string
	parse    numeric.Parser[T]
	pageSize int64

	page   []string
	pos    int
	offset int64 // list index of page[0]
	last   bool  // page is the final one
}

func (c *listCursor[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	for c.pos >= len(c.page) {
		if c.last {
			return zero, false, nil
		}
		if err := c.fetch(ctx); err != nil {
			return zero, false, err
		}
	}

	raw := c.page[c.pos]
	index := c.offset + int64(c.pos)
	c.pos++
	v, err := c.parse(raw)
	if err != nil {
		return zero, false, fmt.Errorf("redis: %s[%d]: %w", c.key, index, err)
	}
	return v, true, nil
}

func (c *listCursor[T]) fetch(ctx context.Context) error {
	start := c.offset + int64(len(c.page))
	page, err := c.client.LRange(ctx, c.key, start, start+c.pageSize-1).Result()
	if err != nil {
		c.last = true
		return fmt.Errorf("redis: lrange %s: %w", c.key, err)
	}
	c.offset = start
	c.page = page
	c.pos = 0
	c.last = int64(len(page)) < c.pageSize
	return nil
}

func (c *listCursor[T]) Close() error {
	c.page = nil
	c.last = true
	return nil
}
