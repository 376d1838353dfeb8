// Package refresh decides per-market data freshness and orchestrates
// the fetch, validate, score, persist cycle across a market's tickers.
package refresh

import (
	"context"
	"time"

	"github.com/ivalero/marketlens/pkg/redis"
)

// Freshness is the per-market cache state driving the refresh decision.
type Freshness string

const (
	// Fresh means the last refresh is younger than the threshold;
	// store contents are reused as-is.
	Fresh Freshness = "fresh"
	// Stale means the last refresh is older than the threshold.
	Stale Freshness = "stale"
	// Unknown means no refresh metadata exists for the market.
	Unknown Freshness = "unknown"
)

// NeedsRefresh reports whether the state triggers a refresh cycle.
func (f Freshness) NeedsRefresh() bool { return f != Fresh }

// Metadata is the per-market refresh bookkeeping, persisted separately
// from the data itself and used only for freshness decisions.
type Metadata struct {
	Market       string    `json:"market"`
	LastRefresh  time.Time `json:"last_refresh"`
	Companies    int64     `json:"companies"`
	Fundamentals int64     `json:"fundamentals"`
	PriceBars    int64     `json:"price_bars"`
	Alerts       int64     `json:"alerts"`
}

// Age returns how long ago the market was refreshed.
func (m Metadata) Age(now time.Time) time.Duration {
	return now.Sub(m.LastRefresh)
}

// metaKV is the slice of the cache the metadata store uses.
type metaKV interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// MetaStore persists refresh metadata in Redis, keyed per market. With
// Redis disabled every lookup is a miss, which degrades to refreshing
// on every request rather than serving unbounded-age data.
type MetaStore struct {
	cache metaKV
	// now is replaceable for tests.
	now func() time.Time
}

// NewMetaStore wraps the shared cache helper.
func NewMetaStore(cache *redis.Cache) *MetaStore {
	return &MetaStore{cache: cache, now: time.Now}
}

// Load returns the market's metadata; found is false when none exists.
func (ms *MetaStore) Load(ctx context.Context, market string) (Metadata, bool, error) {
	var meta Metadata
	found, err := ms.cache.Get(ctx, redis.RefreshMetaKey(market), &meta)
	if err != nil || !found {
		return Metadata{}, false, err
	}
	return meta, true, nil
}

// Save overwrites the market's metadata. No TTL; metadata lives until
// the next refresh replaces it.
func (ms *MetaStore) Save(ctx context.Context, meta Metadata) error {
	return ms.cache.Set(ctx, redis.RefreshMetaKey(meta.Market), meta, redis.TTLNone)
}

// Check classifies the market's freshness against maxAge.
func (ms *MetaStore) Check(ctx context.Context, market string, maxAge time.Duration) (Freshness, Metadata, error) {
	meta, found, err := ms.Load(ctx, market)
	if err != nil {
		return Unknown, Metadata{}, err
	}
	if !found {
		return Unknown, Metadata{}, nil
	}
	if meta.Age(ms.now()) < maxAge {
		return Fresh, meta, nil
	}
	return Stale, meta, nil
}
