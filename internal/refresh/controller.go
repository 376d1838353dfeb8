package refresh

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ivalero/marketlens/internal/catalog"
	"github.com/ivalero/marketlens/internal/contracts"
	"github.com/ivalero/marketlens/internal/provider/yahoo"
	"github.com/ivalero/marketlens/internal/store"
	"github.com/ivalero/marketlens/internal/validate"
	"github.com/ivalero/marketlens/pkg/config"
	"github.com/ivalero/marketlens/pkg/logger"
	"github.com/ivalero/marketlens/pkg/redis"
)

// ErrAlreadyRunning is returned when a refresh for the same market is
// in progress. Cycles for one market never overlap.
var ErrAlreadyRunning = errors.New("refresh already running for market")

// Provider is the upstream quote source. Both calls are per-symbol
// and may fail independently.
type Provider interface {
	FetchQuote(ctx context.Context, symbol string) (*yahoo.Quote, error)
	FetchHistory(ctx context.Context, symbol string, days int) ([]yahoo.Bar, error)
	FetchProfile(ctx context.Context, symbol string) (*yahoo.Profile, error)
}

// MarketStore is the slice of the store the controller writes through.
type MarketStore interface {
	EnsureSchema(ctx context.Context) error
	MigrateIfNeeded(ctx context.Context) error
	UpsertCompany(ctx context.Context, ticker, name, sector string) error
	AppendFundamentals(ctx context.Context, ticker string, rec contracts.Record) error
	UpsertPriceBars(ctx context.Context, ticker string, bars []contracts.PriceBar) error
	AppendAlert(ctx context.Context, ticker, message string) error
	PurgeStaleFundamentals(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (store.Stats, error)
}

// Progress is one incremental progress report during a cycle.
type Progress struct {
	Market    string `json:"market"`
	Ticker    string `json:"ticker"`
	Processed int    `json:"processed"`
	Total     int    `json:"total"`
}

// ProgressFunc receives progress reports. Called from the cycle's
// writer goroutine; implementations must not block for long.
type ProgressFunc func(Progress)

// Summary is the outcome of one market cycle.
type Summary struct {
	Market    string        `json:"market"`
	Freshness Freshness     `json:"freshness"`
	Skipped   bool          `json:"skipped"`
	Processed int           `json:"processed"`
	Failed    int           `json:"failed"`
	Purged    int64         `json:"purged"`
	Duration  time.Duration `json:"duration"`
}

// Controller owns the refresh decision and the per-market cycle. One
// Controller serves all markets; per-market locks serialize cycles.
type Controller struct {
	provider Provider
	stores   map[string]MarketStore
	meta     *MetaStore
	cache    *redis.Cache
	logger   *logger.Logger

	maxAge      time.Duration
	workers     int
	historyDays int

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewController wires the controller. stores must hold one entry per
// market that will be refreshed.
func NewController(cfg *config.Config, provider Provider, stores map[string]MarketStore, meta *MetaStore, cache *redis.Cache, log *logger.Logger) *Controller {
	return &Controller{
		provider:    provider,
		stores:      stores,
		meta:        meta,
		cache:       cache,
		logger:      log,
		maxAge:      cfg.Refresh.MaxAge,
		workers:     cfg.Refresh.Workers,
		historyDays: cfg.Refresh.HistoryDays,
		locks:       make(map[string]*sync.Mutex),
	}
}

// Freshness reports the market's cache state without refreshing.
func (c *Controller) Freshness(ctx context.Context, marketID string) (Freshness, Metadata, error) {
	return c.meta.Check(ctx, marketID, c.maxAge)
}

// Running reports whether a cycle for the market is in progress.
func (c *Controller) Running(marketID string) bool {
	lock := c.marketLock(marketID)
	if lock.TryLock() {
		lock.Unlock()
		return false
	}
	return true
}

func (c *Controller) marketLock(marketID string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	lock, ok := c.locks[marketID]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[marketID] = lock
	}
	return lock
}

// RefreshMarket runs one cycle for the market unless its data is still
// fresh. force bypasses the freshness check. Returns ErrAlreadyRunning
// when another cycle for the same market holds the lock.
func (c *Controller) RefreshMarket(ctx context.Context, marketID string, force bool, onProgress ProgressFunc) (Summary, error) {
	market, ok := catalog.ByID(marketID)
	if !ok {
		return Summary{}, errors.New("unknown market: " + marketID)
	}
	st, ok := c.stores[marketID]
	if !ok {
		return Summary{}, errors.New("no store configured for market: " + marketID)
	}

	state, _, err := c.meta.Check(ctx, marketID, c.maxAge)
	if err != nil {
		c.logger.WithError(err).Warn("Freshness check failed, assuming stale")
		state = Unknown
	}
	if !force && !state.NeedsRefresh() {
		return Summary{Market: marketID, Freshness: state, Skipped: true}, nil
	}

	lock := c.marketLock(marketID)
	if !lock.TryLock() {
		return Summary{}, ErrAlreadyRunning
	}
	defer lock.Unlock()

	return c.runCycle(ctx, market, st, state, onProgress)
}

// RefreshAll cycles every market in catalog order, aggregating one
// combined progress counter across all tickers of all markets. A
// failing market never blocks its siblings; every market is attempted
// and the per-market failures come back joined after the last one.
func (c *Controller) RefreshAll(ctx context.Context, force bool, onProgress ProgressFunc) ([]Summary, error) {
	total := catalog.TotalSymbols()
	offset := 0

	var summaries []Summary
	var errs []error
	for _, market := range catalog.Markets() {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		base := offset
		wrapped := func(p Progress) {
			if onProgress != nil {
				onProgress(Progress{
					Market:    p.Market,
					Ticker:    p.Ticker,
					Processed: base + p.Processed,
					Total:     total,
				})
			}
		}

		summary, err := c.RefreshMarket(ctx, market.ID, force, wrapped)
		if err != nil {
			c.logger.WithError(err).WithField("market", market.ID).Error("Market refresh failed")
			errs = append(errs, fmt.Errorf("refresh %s: %w", market.ID, err))
			offset += len(market.Symbols)
			continue
		}
		summaries = append(summaries, summary)
		offset += len(market.Symbols)
	}
	return summaries, errors.Join(errs...)
}

// tickerResult is one worker's outcome for one symbol. Either a
// validated record or a placeholder; never absent.
type tickerResult struct {
	ticker  string
	name    string
	sector  string
	record  contracts.Record
	alerts  []string
	bars    []contracts.PriceBar
	fetchOK bool
}

func (c *Controller) runCycle(ctx context.Context, market catalog.Market, st MarketStore, state Freshness, onProgress ProgressFunc) (Summary, error) {
	start := time.Now()
	log := c.logger.WithField("market", market.ID)
	log.WithField("freshness", string(state)).Info("Starting refresh cycle")

	if err := st.EnsureSchema(ctx); err != nil {
		return Summary{}, err
	}
	if err := st.MigrateIfNeeded(ctx); err != nil {
		return Summary{}, err
	}

	tickers := make([]string, 0, len(market.Symbols))
	for t := range market.Symbols {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	jobs := make(chan string)
	results := make(chan tickerResult)

	var wg sync.WaitGroup
	workers := c.workers
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ticker := range jobs {
				results <- c.processTicker(ctx, market, ticker)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, t := range tickers {
			select {
			case jobs <- t:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	// Single writer: store writes stay serialized per market. The loop
	// always drains results so the workers can exit.
	summary := Summary{Market: market.ID, Freshness: state}
	var persistErr error
	for res := range results {
		if persistErr != nil {
			continue
		}
		if err := c.persistResult(ctx, st, res); err != nil {
			log.WithError(err).WithField("ticker", res.ticker).Error("Persist failed")
			persistErr = err
			continue
		}
		if !res.fetchOK {
			summary.Failed++
		}
		summary.Processed++
		if onProgress != nil {
			onProgress(Progress{
				Market:    market.ID,
				Ticker:    res.ticker,
				Processed: summary.Processed,
				Total:     len(tickers),
			})
		}
	}
	if persistErr != nil {
		return summary, persistErr
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}

	purged, err := st.PurgeStaleFundamentals(ctx)
	if err != nil {
		return summary, err
	}
	summary.Purged = purged

	stats, err := st.Stats(ctx)
	if err != nil {
		return summary, err
	}
	meta := Metadata{
		Market:       market.ID,
		LastRefresh:  time.Now(),
		Companies:    stats.Companies,
		Fundamentals: stats.FundamentalsRows,
		PriceBars:    stats.PriceBars,
		Alerts:       stats.Alerts,
	}
	if err := c.meta.Save(ctx, meta); err != nil {
		log.WithError(err).Warn("Failed to persist refresh metadata")
	}
	for _, key := range []string{redis.StocksViewKey(market.ID), redis.EstimatesViewKey(market.ID)} {
		if err := c.cache.Delete(ctx, key); err != nil {
			log.WithError(err).Warn("Failed to invalidate view cache")
		}
	}

	summary.Duration = time.Since(start)
	log.WithFields(map[string]interface{}{
		"processed": summary.Processed,
		"failed":    summary.Failed,
		"purged":    summary.Purged,
		"duration":  summary.Duration.String(),
	}).Info("Refresh cycle complete")
	return summary, nil
}

// processTicker fetches and validates one symbol. A failed quote
// fetch yields a placeholder record with an error alert; the cycle
// never aborts on one bad ticker.
func (c *Controller) processTicker(ctx context.Context, market catalog.Market, ticker string) tickerResult {
	res := tickerResult{
		ticker: ticker,
		name:   market.Symbols[ticker],
		sector: catalog.Sector(market, ticker),
	}

	// Tickers absent from the sector table fall back to the scraped
	// company profile; sector drives the scoring adjustment.
	if res.sector == catalog.SectorOther {
		if profile, err := c.provider.FetchProfile(ctx, ticker); err == nil && profile.Sector != "" {
			res.sector = profile.Sector
		}
	}

	quote, err := c.provider.FetchQuote(ctx, ticker)
	if err != nil {
		c.logger.WithError(err).WithField("ticker", ticker).Warn("Quote fetch failed, using placeholder")
		res.record = validate.Placeholder()
		res.alerts = []string{"provider fetch failed: " + err.Error()}
		return res
	}
	res.fetchOK = true

	history, err := c.provider.FetchHistory(ctx, ticker, c.historyDays)
	if err != nil {
		// Validation proceeds without history; volatility defaults to 0.
		c.logger.WithError(err).WithField("ticker", ticker).Warn("History fetch failed")
		res.alerts = append(res.alerts, "price history unavailable: "+err.Error())
		history = nil
	}

	record, alerts := validate.Run(quote, history, res.sector)
	res.record = record
	res.alerts = append(res.alerts, alerts...)

	res.bars = make([]contracts.PriceBar, 0, len(history))
	for _, bar := range history {
		res.bars = append(res.bars, contracts.PriceBar{
			Ticker: ticker,
			Date:   bar.Date,
			Open:   bar.Open,
			High:   bar.High,
			Low:    bar.Low,
			Close:  bar.Close,
			Volume: bar.Volume,
		})
	}
	return res
}

func (c *Controller) persistResult(ctx context.Context, st MarketStore, res tickerResult) error {
	if err := st.UpsertCompany(ctx, res.ticker, res.name, res.sector); err != nil {
		return err
	}
	if err := st.AppendFundamentals(ctx, res.ticker, res.record); err != nil {
		return err
	}
	if len(res.bars) > 0 {
		if err := st.UpsertPriceBars(ctx, res.ticker, res.bars); err != nil {
			return err
		}
	}
	for _, msg := range res.alerts {
		if err := st.AppendAlert(ctx, res.ticker, msg); err != nil {
			return err
		}
	}
	return nil
}
