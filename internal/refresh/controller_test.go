package refresh

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivalero/marketlens/internal/catalog"
	"github.com/ivalero/marketlens/internal/contracts"
	"github.com/ivalero/marketlens/internal/provider/yahoo"
	"github.com/ivalero/marketlens/internal/store"
	"github.com/ivalero/marketlens/pkg/config"
	"github.com/ivalero/marketlens/pkg/logger"
	"github.com/ivalero/marketlens/pkg/redis"
)

func fptr(v float64) *float64 { return &v }

// fakeProvider serves canned quotes and fails the symbols in failing.
type fakeProvider struct {
	mu      sync.Mutex
	failing map[string]bool
	calls   int
}

func (p *fakeProvider) FetchQuote(ctx context.Context, symbol string) (*yahoo.Quote, error) {
	p.mu.Lock()
	p.calls++
	fail := p.failing[symbol]
	p.mu.Unlock()

	if fail {
		return nil, &yahoo.FetchError{Symbol: symbol, Op: "quote", Err: errors.New("boom")}
	}
	return yahoo.NewQuote(symbol, yahoo.QuoteFields{
		CurrentPrice:  fptr(100),
		TargetMean:    fptr(110),
		DividendYield: fptr(0.03),
		TrailingPE:    fptr(14),
		Beta:          fptr(1.0),
		MarketCap:     fptr(5e9),
	}), nil
}

func (p *fakeProvider) FetchHistory(ctx context.Context, symbol string, days int) ([]yahoo.Bar, error) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	return []yahoo.Bar{
		{Date: start, Close: 98},
		{Date: start.AddDate(0, 0, 1), Close: 99},
		{Date: start.AddDate(0, 0, 2), Close: 100},
	}, nil
}

func (p *fakeProvider) FetchProfile(ctx context.Context, symbol string) (*yahoo.Profile, error) {
	return &yahoo.Profile{Symbol: symbol, Sector: "Technology"}, nil
}

// fakeStore records writes in memory. Only the writer goroutine
// touches it during a cycle, so no locking is needed beyond the test's
// own assertions.
type fakeStore struct {
	companies map[string]string
	records   map[string]contracts.Record
	bars      map[string]int
	alerts    map[string][]string
	purged    int64
	schemaErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		companies: make(map[string]string),
		records:   make(map[string]contracts.Record),
		bars:      make(map[string]int),
		alerts:    make(map[string][]string),
	}
}

func (s *fakeStore) EnsureSchema(ctx context.Context) error    { return s.schemaErr }
func (s *fakeStore) MigrateIfNeeded(ctx context.Context) error { return nil }

func (s *fakeStore) UpsertCompany(ctx context.Context, ticker, name, sector string) error {
	s.companies[ticker] = sector
	return nil
}

func (s *fakeStore) AppendFundamentals(ctx context.Context, ticker string, rec contracts.Record) error {
	s.records[ticker] = rec
	return nil
}

func (s *fakeStore) UpsertPriceBars(ctx context.Context, ticker string, bars []contracts.PriceBar) error {
	s.bars[ticker] += len(bars)
	return nil
}

func (s *fakeStore) AppendAlert(ctx context.Context, ticker, message string) error {
	s.alerts[ticker] = append(s.alerts[ticker], message)
	return nil
}

func (s *fakeStore) PurgeStaleFundamentals(ctx context.Context) (int64, error) {
	s.purged++
	return 3, nil
}

func (s *fakeStore) Stats(ctx context.Context) (store.Stats, error) {
	return store.Stats{SchemaExists: true, Companies: int64(len(s.companies))}, nil
}

func testController(provider Provider, st MarketStore, kv *fakeKV) (*Controller, *MetaStore) {
	cfg := &config.Config{
		Refresh: config.RefreshConfig{
			MaxAge:      24 * time.Hour,
			Workers:     4,
			HistoryDays: 30,
		},
	}
	meta := &MetaStore{cache: kv, now: time.Now}

	client, _ := redis.New(&config.Config{})
	cache := redis.NewCache(client, "test")

	stores := map[string]MarketStore{}
	for _, m := range catalog.Markets() {
		stores[m.ID] = st
	}
	return NewController(cfg, provider, stores, meta, cache, logger.NewNop()), meta
}

func TestRefreshMarket_FullCycle(t *testing.T) {
	provider := &fakeProvider{}
	st := newFakeStore()
	ctrl, _ := testController(provider, st, newFakeKV())

	var progress []Progress
	summary, err := ctrl.RefreshMarket(context.Background(), catalog.IBEX35, false, func(p Progress) {
		progress = append(progress, p)
	})
	require.NoError(t, err)

	market, _ := catalog.ByID(catalog.IBEX35)
	total := len(market.Symbols)

	assert.Equal(t, total, summary.Processed)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, int64(3), summary.Purged)
	assert.False(t, summary.Skipped)

	// Every ticker persisted exactly once, with bars and a score.
	assert.Len(t, st.companies, total)
	assert.Len(t, st.records, total)
	for ticker, rec := range st.records {
		assert.Greater(t, rec.Score, 0, "ticker %s", ticker)
		assert.Equal(t, 3, st.bars[ticker])
	}

	// Progress is monotonically increasing up to the total.
	require.Len(t, progress, total)
	for i, p := range progress {
		assert.Equal(t, i+1, p.Processed)
		assert.Equal(t, total, p.Total)
	}
}

func TestRefreshMarket_FailureIsolation(t *testing.T) {
	market, _ := catalog.ByID(catalog.Nasdaq)
	var failTicker string
	for ticker := range market.Symbols {
		failTicker = ticker
		break
	}

	provider := &fakeProvider{failing: map[string]bool{failTicker: true}}
	st := newFakeStore()
	ctrl, _ := testController(provider, st, newFakeKV())

	summary, err := ctrl.RefreshMarket(context.Background(), catalog.Nasdaq, false, nil)
	require.NoError(t, err)

	assert.Equal(t, len(market.Symbols), summary.Processed)
	assert.Equal(t, 1, summary.Failed)

	// The failed ticker got the neutral placeholder and an alert.
	rec := st.records[failTicker]
	assert.Equal(t, 30, rec.Score)
	assert.Equal(t, "N/A", rec.Recommendation)
	require.NotEmpty(t, st.alerts[failTicker])
	assert.Contains(t, st.alerts[failTicker][0], "fetch failed")

	// Siblings were unaffected.
	assert.Len(t, st.records, len(market.Symbols))
}

func TestRefreshMarket_SkipsWhenFresh(t *testing.T) {
	provider := &fakeProvider{}
	st := newFakeStore()
	kv := newFakeKV()
	ctrl, meta := testController(provider, st, kv)

	require.NoError(t, meta.Save(context.Background(), Metadata{
		Market:      catalog.SP500,
		LastRefresh: time.Now().Add(-time.Hour),
	}))

	summary, err := ctrl.RefreshMarket(context.Background(), catalog.SP500, false, nil)
	require.NoError(t, err)
	assert.True(t, summary.Skipped)
	assert.Equal(t, Fresh, summary.Freshness)
	assert.Zero(t, provider.calls)

	// force bypasses the freshness check.
	summary, err = ctrl.RefreshMarket(context.Background(), catalog.SP500, true, nil)
	require.NoError(t, err)
	assert.False(t, summary.Skipped)
	assert.Greater(t, provider.calls, 0)
}

func TestRefreshMarket_SavesMetadata(t *testing.T) {
	provider := &fakeProvider{}
	st := newFakeStore()
	kv := newFakeKV()
	ctrl, meta := testController(provider, st, kv)

	_, err := ctrl.RefreshMarket(context.Background(), catalog.IBEX35, true, nil)
	require.NoError(t, err)

	state, m, err := meta.Check(context.Background(), catalog.IBEX35, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, Fresh, state)
	assert.Greater(t, m.Companies, int64(0))
}

func TestRefreshMarket_MutualExclusion(t *testing.T) {
	provider := &fakeProvider{}
	st := newFakeStore()
	ctrl, _ := testController(provider, st, newFakeKV())

	lock := ctrl.marketLock(catalog.IBEX35)
	lock.Lock()
	defer lock.Unlock()

	assert.True(t, ctrl.Running(catalog.IBEX35))
	_, err := ctrl.RefreshMarket(context.Background(), catalog.IBEX35, true, nil)
	assert.ErrorIs(t, err, ErrAlreadyRunning)
}

func TestRefreshAll_CombinedProgress(t *testing.T) {
	provider := &fakeProvider{}
	st := newFakeStore()
	ctrl, _ := testController(provider, st, newFakeKV())

	var last Progress
	summaries, err := ctrl.RefreshAll(context.Background(), true, func(p Progress) {
		last = p
	})
	require.NoError(t, err)

	assert.Len(t, summaries, len(catalog.Markets()))
	assert.Equal(t, catalog.TotalSymbols(), last.Processed)
	assert.Equal(t, catalog.TotalSymbols(), last.Total)
}

func TestRefreshAll_BrokenMarketDoesNotBlockSiblings(t *testing.T) {
	provider := &fakeProvider{}
	broken := newFakeStore()
	broken.schemaErr = errors.New("relation companies is corrupt")

	cfg := &config.Config{
		Refresh: config.RefreshConfig{
			MaxAge:      24 * time.Hour,
			Workers:     4,
			HistoryDays: 30,
		},
	}
	client, _ := redis.New(&config.Config{})
	cache := redis.NewCache(client, "test")

	// First catalog market is broken; every other market is healthy.
	stores := map[string]MarketStore{}
	healthy := map[string]*fakeStore{}
	for i, m := range catalog.Markets() {
		if i == 0 {
			stores[m.ID] = broken
			continue
		}
		st := newFakeStore()
		stores[m.ID] = st
		healthy[m.ID] = st
	}

	meta := &MetaStore{cache: newFakeKV(), now: time.Now}
	ctrl := NewController(cfg, provider, stores, meta, cache, logger.NewNop())

	summaries, err := ctrl.RefreshAll(context.Background(), true, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), catalog.Markets()[0].ID)

	// Every healthy market still completed a full cycle.
	require.Len(t, summaries, len(catalog.Markets())-1)
	for id, st := range healthy {
		market, _ := catalog.ByID(id)
		assert.Len(t, st.records, len(market.Symbols), "market %s", id)
	}
	for _, s := range summaries {
		assert.False(t, s.Skipped)
	}

	// The broken market wrote nothing.
	assert.Empty(t, broken.records)
}

func TestRefreshMarket_UnknownMarket(t *testing.T) {
	ctrl, _ := testController(&fakeProvider{}, newFakeStore(), newFakeKV())
	_, err := ctrl.RefreshMarket(context.Background(), "lse", false, nil)
	assert.Error(t, err)
}
