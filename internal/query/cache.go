// Copyright (c) 2026 Mealdeck Team
// Mealdeck - food delivery operations consoles
// This source code is licensed under the MIT license found in the LICENSE file.

package query

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
	"time"

	"github.com/mealdeck/mealdeck/internal/logging"
	"github.com/mealdeck/mealdeck/internal/model"
)

// Fetcher is the slice of the API client the cache needs. The consoles
// inject the real api.Client; tests inject fakes.
type Fetcher interface {
	ListOrders(ctx context.Context, search string) ([]model.Order, error)
	ListRestaurants(ctx context.Context, search string) ([]model.Restaurant, error)
	ListCouriers(ctx context.Context) ([]model.Courier, error)
	ListTickets(ctx context.Context) ([]model.Ticket, error)
}

// Result carries rows plus their provenance. Stale rows come from the
// snapshot store after a failed fetch.
type Result[T any] struct {
	Rows      []T
	Stale     bool
	FetchedAt time.Time
}

type memoryEntry struct {
	payload   []byte
	fetchedAt time.Time
}

// Cache is the read-through cache over the backend API. Fresh entries are
// served from memory within the TTL; misses hit the backend and persist the
// payload; fetch failures fall back to the last persisted snapshot.
type Cache struct {
	fetcher Fetcher
	store   *SnapshotStore // optional; nil disables persistence
	ttl     time.Duration

	mu      sync.Mutex
	entries map[string]memoryEntry

	// now is replaceable for tests.
	now func() time.Time
}

// NewCache builds a cache over the fetcher. store may be nil.
func NewCache(fetcher Fetcher, store *SnapshotStore, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Cache{
		fetcher: fetcher,
		store:   store,
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Invalidate drops every memory and snapshot entry whose key starts with
// prefix. Views call this after a mutation so the next read refetches.
func (c *Cache) Invalidate(ctx context.Context, prefix string) {
	c.mu.Lock()
	for k := range c.entries {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()
	if c.store != nil {
		if err := c.store.DeletePrefix(ctx, prefix); err != nil {
			logging.Warnf("cache: %v", err)
		}
	}
}

// Close releases the snapshot store, if any.
func (c *Cache) Close() error {
	if c.store == nil {
		return nil
	}
	return c.store.Close()
}

func (c *Cache) memoryGet(key string) (memoryEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return e, ok
}

func (c *Cache) memoryPut(key string, e memoryEntry) {
	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
}

// lookup is the shared read-through path. Methods stay on Cache; the type
// parameter has to live on a function.
func lookup[T any](ctx context.Context, c *Cache, key string, fetch func(context.Context) ([]T, error)) (Result[T], error) {
	if e, ok := c.memoryGet(key); ok && c.now().Sub(e.fetchedAt) < c.ttl {
		var rows []T
		if err := json.Unmarshal(e.payload, &rows); err == nil {
			return Result[T]{Rows: rows, FetchedAt: e.fetchedAt}, nil
		}
		// Undecodable memory entry; fall through to a refetch.
	}

	rows, fetchErr := fetch(ctx)
	if fetchErr == nil {
		at := c.now()
		payload, err := json.Marshal(rows)
		if err == nil {
			c.memoryPut(key, memoryEntry{payload: payload, fetchedAt: at})
			if c.store != nil {
				if err := c.store.Put(ctx, key, payload, at); err != nil {
					logging.Warnf("cache: %v", err)
				}
			}
		}
		return Result[T]{Rows: rows, FetchedAt: at}, nil
	}

	// Backend unreachable: serve the last persisted payload, marked stale.
	if c.store != nil {
		payload, at, err := c.store.Get(ctx, key)
		if err == nil {
			var cached []T
			if err := json.Unmarshal(payload, &cached); err == nil {
				logging.Debugf("cache: serving stale %q from %s after fetch error: %v", key, at, fetchErr)
				return Result[T]{Rows: cached, Stale: true, FetchedAt: at}, nil
			}
		}
	}
	return Result[T]{}, fetchErr
}

func searchKey(kind, search string) string {
	if search == "" {
		return kind
	}
	return kind + "?q=" + url.QueryEscape(search)
}

// Orders returns orders matching the server-side search query.
func (c *Cache) Orders(ctx context.Context, search string) (Result[model.Order], error) {
	return lookup(ctx, c, searchKey("orders", search), func(ctx context.Context) ([]model.Order, error) {
		return c.fetcher.ListOrders(ctx, search)
	})
}

// Restaurants returns restaurants matching the server-side search query.
func (c *Cache) Restaurants(ctx context.Context, search string) (Result[model.Restaurant], error) {
	return lookup(ctx, c, searchKey("restaurants", search), func(ctx context.Context) ([]model.Restaurant, error) {
		return c.fetcher.ListRestaurants(ctx, search)
	})
}

// Couriers returns all couriers with last known positions.
func (c *Cache) Couriers(ctx context.Context) (Result[model.Courier], error) {
	return lookup(ctx, c, "couriers", c.fetcher.ListCouriers)
}

// Tickets returns the open kitchen tickets.
func (c *Cache) Tickets(ctx context.Context) (Result[model.Ticket], error) {
	return lookup(ctx, c, "tickets", c.fetcher.ListTickets)
}
