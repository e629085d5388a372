// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache wraps a fetch operation with a time-to-live cache kept in a
// kvstore.Store. One generic TTL type serves both the publication list and
// the scholar metrics.
//
// Failures never surface to callers: when a fetch fails the last stored
// entry is served even if it has expired, and only when nothing was ever
// stored does Get return the empty value. The Source returned alongside the
// value tells the caller which of these happened.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/pdiddy/scholar-site/internal/kvstore"
	"github.com/pdiddy/scholar-site/pkg/types"
)

// DefaultTTL is the lifetime of an entry when none is configured.
const DefaultTTL = 24 * time.Hour

// Source reports where a value returned by the cache came from.
type Source string

const (
	// SourceCached means an unexpired entry was served without fetching.
	SourceCached Source = "cached"
	// SourceFresh means the value was fetched and stored just now.
	SourceFresh Source = "fresh"
	// SourceStale means the fetch failed and an expired entry was served.
	SourceStale Source = "stale"
	// SourceEmpty means the fetch failed and nothing was stored.
	SourceEmpty Source = "empty"
)

// Degraded reports whether the value is not the result of a successful
// fetch or a valid cache hit.
func (s Source) Degraded() bool {
	return s == SourceStale || s == SourceEmpty
}

// FetchFunc produces a fresh payload.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Entry is the persisted form of a cached payload. ExpiresAt is always
// LastUpdated plus the cache TTL.
type Entry[T any] struct {
	Payload     T         `json:"payload"`
	LastUpdated time.Time `json:"last_updated"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Options configures a TTL cache.
type Options[T any] struct {
	// Key is the store key of the entry.
	Key string

	// TTL is the entry lifetime (DefaultTTL when zero).
	TTL time.Duration

	// Fetch produces fresh payloads.
	Fetch FetchFunc[T]

	// Empty builds the value returned when nothing can be served. The zero
	// value of T is used when nil.
	Empty func() T

	// Now is the clock (time.Now when nil).
	Now func() time.Time

	// Log receives diagnostic lines (discarded when nil).
	Log io.Writer
}

// TTL is a time-to-live cache of T backed by a kvstore.Store.
type TTL[T any] struct {
	store kvstore.Store
	key   string
	ttl   time.Duration
	fetch FetchFunc[T]
	empty func() T
	now   func() time.Time
	log   io.Writer

	// group collapses concurrent fills of the same key into one fetch.
	group singleflight.Group
}

// New returns a TTL cache over store.
func New[T any](store kvstore.Store, opts Options[T]) *TTL[T] {
	c := &TTL[T]{
		store: store,
		key:   opts.Key,
		ttl:   opts.TTL,
		fetch: opts.Fetch,
		empty: opts.Empty,
		now:   opts.Now,
		log:   opts.Log,
	}
	if c.ttl <= 0 {
		c.ttl = DefaultTTL
	}
	if c.empty == nil {
		c.empty = func() T {
			var zero T
			return zero
		}
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.log == nil {
		c.log = io.Discard
	}
	return c
}

// Key returns the store key of the entry.
func (c *TTL[T]) Key() string { return c.key }

type fillResult[T any] struct {
	value  T
	source Source
}

// Get returns the cached payload while it is fresh. Otherwise it fetches,
// stores, and returns a new payload, falling back to the expired entry or
// the empty value when the fetch fails.
//
// Values are shared between concurrent callers of the same fill and must
// be treated as read-only.
func (c *TTL[T]) Get(ctx context.Context) (T, Source) {
	entry, ok := c.load(ctx)
	if ok && c.now().Before(entry.ExpiresAt) {
		fmt.Fprintf(c.log, "cache: using cached %s (expires %s)\n", c.key, entry.ExpiresAt.Format(time.RFC3339))
		return entry.Payload, SourceCached
	}
	var stale *Entry[T]
	if ok {
		stale = &entry
	}
	return c.fill(ctx, stale)
}

// Refresh discards the stored entry and fetches unconditionally. If the
// fetch fails, the discarded entry is put back and served as stale.
func (c *TTL[T]) Refresh(ctx context.Context) (T, Source) {
	var previous *Entry[T]
	if entry, ok := c.load(ctx); ok {
		previous = &entry
	}
	if err := c.Clear(ctx); err != nil {
		fmt.Fprintf(c.log, "warning: %v\n", err)
	}
	value, source := c.fill(ctx, previous)
	if source == SourceStale && previous != nil {
		if err := c.save(ctx, *previous); err != nil {
			fmt.Fprintf(c.log, "warning: restoring %s: %v\n", c.key, err)
		}
	}
	return value, source
}

// Cached returns the stored payload regardless of expiry, without fetching.
func (c *TTL[T]) Cached(ctx context.Context) (T, bool) {
	entry, ok := c.load(ctx)
	if !ok {
		return c.empty(), false
	}
	return entry.Payload, true
}

// Info reports the timestamps of the stored entry. When nothing readable is
// stored both timestamps are nil and IsExpired is true.
func (c *TTL[T]) Info(ctx context.Context) types.CacheInfo {
	entry, ok := c.load(ctx)
	if !ok {
		return types.CacheInfo{IsExpired: true}
	}
	lastUpdated := entry.LastUpdated
	expiresAt := entry.ExpiresAt
	return types.CacheInfo{
		LastUpdated: &lastUpdated,
		ExpiresAt:   &expiresAt,
		IsExpired:   !c.now().Before(expiresAt),
	}
}

// Clear removes the stored entry.
func (c *TTL[T]) Clear(ctx context.Context) error {
	if err := c.store.Remove(ctx, c.key); err != nil {
		return fmt.Errorf("clearing %s: %w", c.key, err)
	}
	return nil
}

func (c *TTL[T]) fill(ctx context.Context, stale *Entry[T]) (T, Source) {
	v, _, _ := c.group.Do(c.key, func() (any, error) {
		fmt.Fprintf(c.log, "cache: fetching fresh %s\n", c.key)
		value, err := c.fetch(ctx)
		if err != nil {
			return c.fallback(ctx, stale, err), nil
		}

		now := c.now()
		entry := Entry[T]{Payload: value, LastUpdated: now, ExpiresAt: now.Add(c.ttl)}
		if err := c.save(ctx, entry); err != nil {
			fmt.Fprintf(c.log, "warning: %v\n", err)
		}
		return fillResult[T]{value: value, source: SourceFresh}, nil
	})
	r := v.(fillResult[T])
	return r.value, r.source
}

func (c *TTL[T]) fallback(ctx context.Context, stale *Entry[T], fetchErr error) fillResult[T] {
	if stale == nil {
		// Another writer may have stored an entry since the first read.
		if entry, ok := c.load(ctx); ok {
			stale = &entry
		}
	}
	if stale != nil {
		fmt.Fprintf(c.log, "warning: fetching %s failed, serving stale data from %s: %v\n",
			c.key, stale.LastUpdated.Format(time.RFC3339), fetchErr)
		return fillResult[T]{value: stale.Payload, source: SourceStale}
	}
	fmt.Fprintf(c.log, "warning: fetching %s failed and nothing is cached: %v\n", c.key, fetchErr)
	return fillResult[T]{value: c.empty(), source: SourceEmpty}
}

// load reads and decodes the stored entry. Missing and unreadable entries
// both report false; unreadable ones are logged.
func (c *TTL[T]) load(ctx context.Context) (Entry[T], bool) {
	var entry Entry[T]
	data, err := c.store.Get(ctx, c.key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return entry, false
	}
	if err != nil {
		fmt.Fprintf(c.log, "warning: reading cached %s: %v\n", c.key, err)
		return entry, false
	}
	if err := json.Unmarshal(data, &entry); err != nil {
		fmt.Fprintf(c.log, "warning: discarding corrupted %s entry: %v\n", c.key, err)
		return Entry[T]{}, false
	}
	return entry, true
}

func (c *TTL[T]) save(ctx context.Context, entry Entry[T]) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding %s entry: %w", c.key, err)
	}
	if err := c.store.Set(ctx, c.key, data); err != nil {
		return fmt.Errorf("storing %s entry: %w", c.key, err)
	}
	return nil
}
