package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/ivalero/marketlens/internal/catalog"
	"github.com/ivalero/marketlens/internal/contracts"
	"github.com/ivalero/marketlens/internal/refresh"
	"github.com/ivalero/marketlens/internal/scoring"
	"github.com/ivalero/marketlens/internal/store"
	"github.com/ivalero/marketlens/pkg/logger"
	"github.com/ivalero/marketlens/pkg/redis"
)

// MarketHandler serves all per-market endpoints.
type MarketHandler struct {
	stores     map[string]*store.Store
	controller *refresh.Controller
	cache      *redis.Cache
	hub        *ProgressHub
	logger     *logger.Logger
}

// NewMarketHandler wires the handler.
func NewMarketHandler(stores map[string]*store.Store, controller *refresh.Controller, cache *redis.Cache, hub *ProgressHub, log *logger.Logger) *MarketHandler {
	return &MarketHandler{
		stores:     stores,
		controller: controller,
		cache:      cache,
		hub:        hub,
		logger:     log,
	}
}

func (h *MarketHandler) marketStore(w http.ResponseWriter, r *http.Request) (*store.Store, bool) {
	marketID := mux.Vars(r)["market"]
	st, ok := h.stores[marketID]
	if !ok {
		respondError(w, http.StatusNotFound, "Unknown market: "+marketID)
		return nil, false
	}
	return st, true
}

// MarketSummary is one catalog entry in the markets listing.
type MarketSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Symbols int    `json:"symbols"`
}

// ListMarkets returns the market catalog.
// GET /api/markets
func (h *MarketHandler) ListMarkets(w http.ResponseWriter, r *http.Request) {
	markets := catalog.Markets()
	out := make([]MarketSummary, 0, len(markets))
	for _, m := range markets {
		out = append(out, MarketSummary{ID: m.ID, Name: m.Name, Symbols: len(m.Symbols)})
	}
	respondJSON(w, http.StatusOK, out)
}

// StockView is one row of the stocks listing with its category band.
type StockView struct {
	contracts.StockRow
	Category *scoring.Category `json:"category,omitempty"`
}

// GetStocks returns the latest fundamentals view, newest snapshot per
// ticker, ordered by score descending. Optional filters: min_score,
// sector, max_pe, min_dividend.
// GET /api/markets/{market}/stocks
func (h *MarketHandler) GetStocks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st, ok := h.marketStore(w, r)
	if !ok {
		return
	}

	filters, err := parseStockFilters(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	marketID := st.Market().ID

	// Unfiltered responses are cached briefly; filtered ones are not.
	var views []StockView
	cacheKey := redis.StocksViewKey(marketID)
	if !filters.active() {
		if found, err := h.cache.Get(ctx, cacheKey, &views); err == nil && found {
			respondJSON(w, http.StatusOK, views)
			return
		}
	}

	rows, err := st.LatestFundamentals(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load stocks view")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve stocks")
		return
	}

	views = make([]StockView, 0, len(rows))
	for _, row := range rows {
		if !filters.match(row) {
			continue
		}
		view := StockView{StockRow: row}
		if row.Record != nil {
			cat := scoring.Categorize(row.Record.Score)
			view.Category = &cat
		}
		views = append(views, view)
	}

	if !filters.active() {
		if err := h.cache.Set(ctx, cacheKey, views, redis.TTLShort); err != nil {
			h.logger.WithError(err).Warn("Failed to cache stocks view")
		}
	}
	respondJSON(w, http.StatusOK, views)
}

// GetHistory returns daily bars for one ticker.
// GET /api/markets/{market}/stocks/{ticker}/history?days=N
func (h *MarketHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st, ok := h.marketStore(w, r)
	if !ok {
		return
	}
	ticker := mux.Vars(r)["ticker"]

	days := 365
	if raw := r.URL.Query().Get("days"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			respondError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = v
	}

	since := time.Now().AddDate(0, 0, -days)
	bars, err := st.PriceHistory(ctx, ticker, since)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load price history")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve price history")
		return
	}
	respondJSON(w, http.StatusOK, bars)
}

// StatsResponse joins store counts with cache freshness.
type StatsResponse struct {
	store.Stats
	Freshness   refresh.Freshness `json:"freshness"`
	LastRefresh *time.Time        `json:"last_refresh,omitempty"`
}

// GetStats returns store row counts and freshness for one market.
// GET /api/markets/{market}/stats
func (h *MarketHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st, ok := h.marketStore(w, r)
	if !ok {
		return
	}

	stats, err := st.Stats(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load stats")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve stats")
		return
	}

	resp := StatsResponse{Stats: stats, Freshness: refresh.Unknown}
	state, meta, err := h.controller.Freshness(ctx, st.Market().ID)
	if err == nil {
		resp.Freshness = state
		if state != refresh.Unknown {
			t := meta.LastRefresh
			resp.LastRefresh = &t
		}
	}
	respondJSON(w, http.StatusOK, resp)
}

// GetAlerts returns the newest validation and fetch alerts, newest
// first. Optional ?limit= caps the result, default 50.
// GET /api/markets/{market}/alerts
func (h *MarketHandler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st, ok := h.marketStore(w, r)
	if !ok {
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 1000 {
			respondError(w, http.StatusBadRequest, "limit must be an integer in [1,1000]")
			return
		}
		limit = v
	}

	alerts, err := st.RecentAlerts(ctx, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load alerts")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve alerts")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"market": st.Market().ID,
		"count":  len(alerts),
		"alerts": alerts,
	})
}

// Purge deletes superseded fundamentals snapshots.
// POST /api/markets/{market}/purge
func (h *MarketHandler) Purge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st, ok := h.marketStore(w, r)
	if !ok {
		return
	}

	deleted, err := st.PurgeStaleFundamentals(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to purge fundamentals")
		respondError(w, http.StatusInternalServerError, "Failed to purge stale fundamentals")
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}
