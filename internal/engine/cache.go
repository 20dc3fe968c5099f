package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/wowecon/ahtracker/internal/metrics"
	"github.com/wowecon/ahtracker/pkg/types"
)

// auctionCache holds short-lived auction snapshots keyed by connected
// realm. Snapshots change upstream roughly hourly, so even a short TTL
// absorbs bursts of searches across different items on the same realm.
// Concurrent fetches for the same realm are coalesced.
type auctionCache struct {
	ttl   time.Duration
	fetch func(ctx context.Context, desc domain.RealmDescriptor) ([]domain.AuctionListing, error)

	mu      sync.Mutex
	entries map[string]cacheEntry
	sf      singleflight.Group

	nowFunc func() time.Time
}

type cacheEntry struct {
	listings  []domain.AuctionListing
	fetchedAt time.Time
}

func newAuctionCache(
	ttl time.Duration,
	fetch func(ctx context.Context, desc domain.RealmDescriptor) ([]domain.AuctionListing, error),
) *auctionCache {
	return &auctionCache{
		ttl:     ttl,
		fetch:   fetch,
		entries: make(map[string]cacheEntry),
		nowFunc: time.Now,
	}
}

func cacheKey(desc domain.RealmDescriptor) string {
	return fmt.Sprintf("%s|%s|%d", desc.Region, desc.Namespace, desc.ConnectedRealmID)
}

// get returns the cached snapshot for desc, fetching on miss or expiry.
func (c *auctionCache) get(ctx context.Context, desc domain.RealmDescriptor) ([]domain.AuctionListing, error) {
	if c.ttl <= 0 {
		return c.fetch(ctx, desc)
	}

	key := cacheKey(desc)

	c.mu.Lock()
	e, ok := c.entries[key]
	fresh := ok && c.nowFunc().Sub(e.fetchedAt) < c.ttl
	c.mu.Unlock()

	if fresh {
		metrics.AuctionCacheHits.Inc()
		return e.listings, nil
	}
	metrics.AuctionCacheMisses.Inc()

	v, err, _ := c.sf.Do(key, func() (any, error) {
		// Another waiter may have refilled the entry while this call
		// queued on the flight group.
		c.mu.Lock()
		e, ok := c.entries[key]
		fresh := ok && c.nowFunc().Sub(e.fetchedAt) < c.ttl
		c.mu.Unlock()
		if fresh {
			return e.listings, nil
		}

		listings, err := c.fetch(ctx, desc)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = cacheEntry{listings: listings, fetchedAt: c.nowFunc()}
		c.mu.Unlock()
		return listings, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.AuctionListing), nil
}
