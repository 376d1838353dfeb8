package handlers

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/ivalero/marketlens/internal/estimator"
	"github.com/ivalero/marketlens/pkg/redis"
)

// EstimateView is one scored row of the expected-return listing.
type EstimateView struct {
	Ticker   string             `json:"ticker"`
	Company  string             `json:"company"`
	Sector   string             `json:"sector"`
	Score    int                `json:"score"`
	Estimate estimator.Estimate `json:"estimate"`
}

// EstimatesSummary aggregates the market's expected returns.
type EstimatesSummary struct {
	AvgExpectedReturnPct float64 `json:"avg_expected_return_pct"`
	AvgScore             float64 `json:"avg_score"`
	TopTicker            string  `json:"top_ticker,omitempty"`
}

// EstimatesResponse is the estimates endpoint payload.
type EstimatesResponse struct {
	Summary EstimatesSummary `json:"summary"`
	Rows    []EstimateView   `json:"rows"`
}

// GetEstimates runs the expected-return estimator over the latest
// snapshots, ranked by expected return descending. ?limit=N caps the
// row count.
// GET /api/markets/{market}/estimates
func (h *MarketHandler) GetEstimates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st, ok := h.marketStore(w, r)
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = v
	}

	// The full ranking is cached; limits are applied after the hit.
	cacheKey := redis.EstimatesViewKey(st.Market().ID)
	var cached EstimatesResponse
	if hit, err := h.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		if limit > 0 && len(cached.Rows) > limit {
			cached.Rows = cached.Rows[:limit]
		}
		respondJSON(w, http.StatusOK, cached)
		return
	}

	rows, err := st.LatestFundamentals(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load fundamentals for estimates")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve estimates")
		return
	}

	since := time.Now().AddDate(-1, 0, 0)
	views := make([]EstimateView, 0, len(rows))
	var sumReturn, sumScore float64
	for _, row := range rows {
		if row.Record == nil {
			continue
		}
		bars, err := st.PriceHistory(ctx, row.Ticker, since)
		if err != nil {
			h.logger.WithError(err).WithField("ticker", row.Ticker).Warn("History unavailable for estimate")
			bars = nil
		}
		est := estimator.Run(estimator.FromRecord(*row.Record, bars))
		views = append(views, EstimateView{
			Ticker:   row.Ticker,
			Company:  row.Company,
			Sector:   row.Sector,
			Score:    row.Record.Score,
			Estimate: est,
		})
		sumReturn += est.ExpectedReturnPct
		sumScore += float64(row.Record.Score)
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Estimate.ExpectedReturnPct > views[j].Estimate.ExpectedReturnPct
	})

	var summary EstimatesSummary
	if len(views) > 0 {
		summary.AvgExpectedReturnPct = sumReturn / float64(len(views))
		summary.AvgScore = sumScore / float64(len(views))
		summary.TopTicker = views[0].Ticker
	}
	resp := EstimatesResponse{Summary: summary, Rows: views}
	if err := h.cache.Set(ctx, cacheKey, resp, redis.TTLMedium); err != nil {
		h.logger.WithError(err).Warn("Failed to cache estimates view")
	}

	if limit > 0 && len(resp.Rows) > limit {
		resp.Rows = resp.Rows[:limit]
	}
	respondJSON(w, http.StatusOK, resp)
}
