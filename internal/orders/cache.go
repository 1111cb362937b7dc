package orders

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"bakehouse/zipporder/internal/domain"
	"bakehouse/zipporder/internal/kvstore"
	"bakehouse/zipporder/internal/log"
)

const (
	defaultFreshTTL = 5 * time.Minute
	defaultMaxStale = time.Hour
	refreshTimeout  = 30 * time.Second
)

// entry wraps cached orders with the time they were fetched.
type entry struct {
	Orders    []domain.Order `json:"orders"`
	FetchedAt time.Time      `json:"fetched_at"`
}

// CachedRepository serves orders stale-while-revalidate from a kvstore.
// A fresh entry is returned as is; a stale one is returned while a
// background fetch replaces it; anything older is fetched synchronously.
type CachedRepository struct {
	inner Repository
	kv    kvstore.Store
	key   func() string

	freshTTL time.Duration
	maxStale time.Duration
	now      func() time.Time

	wg sync.WaitGroup
}

// CacheOption configures a CachedRepository.
type CacheOption func(*CachedRepository)

// WithTTLs overrides how long entries stay fresh and how long a stale entry
// may still be served. A maxStale of zero serves stale entries forever.
func WithTTLs(freshTTL, maxStale time.Duration) CacheOption {
	return func(c *CachedRepository) {
		c.freshTTL = freshTTL
		c.maxStale = maxStale
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) CacheOption {
	return func(c *CachedRepository) { c.now = now }
}

// NewCachedRepository caches inner in kv under the key returned by key. An
// empty key bypasses the cache, so nothing is stored for anonymous users.
func NewCachedRepository(inner Repository, kv kvstore.Store, key func() string, opts ...CacheOption) *CachedRepository {
	c := &CachedRepository{
		inner:    inner,
		kv:       kv,
		key:      key,
		freshTTL: defaultFreshTTL,
		maxStale: defaultMaxStale,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List implements Repository.
func (c *CachedRepository) List(ctx context.Context) ([]domain.Order, error) {
	key := c.key()
	if key == "" {
		return c.inner.List(ctx)
	}

	e, ok := c.read(key)
	if !ok || e.FetchedAt.IsZero() {
		return c.fetchAndStore(ctx, key)
	}

	age := c.now().Sub(e.FetchedAt)
	switch {
	case age < 0:
		return c.fetchAndStore(ctx, key)
	case age <= c.freshTTL:
		return e.Orders, nil
	case c.maxStale <= 0 || age <= c.maxStale:
		c.revalidate(key)
		return e.Orders, nil
	default:
		return c.fetchAndStore(ctx, key)
	}
}

// Invalidate drops the entry for the current key.
func (c *CachedRepository) Invalidate() error {
	key := c.key()
	if key == "" {
		return nil
	}
	return c.kv.Remove(key)
}

// Wait blocks until background refreshes have finished.
func (c *CachedRepository) Wait() { c.wg.Wait() }

func (c *CachedRepository) fetchAndStore(ctx context.Context, key string) ([]domain.Order, error) {
	list, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	c.write(key, list)
	return list, nil
}

func (c *CachedRepository) revalidate(key string) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		list, err := c.inner.List(ctx)
		if err != nil {
			log.WithComponent("orders").WithError(err).Debug("background refresh failed")
			return
		}
		c.write(key, list)
	}()
}

// read returns the cached entry. Unreadable entries count as missing.
func (c *CachedRepository) read(key string) (entry, bool) {
	raw, err := c.kv.Get(key)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			log.WithComponent("orders").WithError(err).Warn("failed to read order cache")
		}
		return entry{}, false
	}
	var e entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return entry{}, false
	}
	return e, true
}

func (c *CachedRepository) write(key string, list []domain.Order) {
	payload, err := json.Marshal(entry{Orders: list, FetchedAt: c.now()})
	if err == nil {
		err = c.kv.Set(key, string(payload))
	}
	if err != nil {
		log.WithComponent("orders").WithError(err).Warn("failed to write order cache")
	}
}
