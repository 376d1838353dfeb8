package handlers

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/ivalero/marketlens/internal/contracts"
)

// stockFilters are the optional view filters. Malformed values are
// rejected at this boundary with a 400; they never reach the store or
// the scoring core.
type stockFilters struct {
	minScore    *int
	sector      string
	maxPE       *float64
	minDividend *float64
}

func parseStockFilters(values url.Values) (stockFilters, error) {
	var f stockFilters

	if raw := values.Get("min_score"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 || v > 100 {
			return f, fmt.Errorf("min_score must be an integer in [0,100], got %q", raw)
		}
		f.minScore = &v
	}
	f.sector = values.Get("sector")
	if raw := values.Get("max_pe"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			return f, fmt.Errorf("max_pe must be a positive number, got %q", raw)
		}
		f.maxPE = &v
	}
	if raw := values.Get("min_dividend"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return f, fmt.Errorf("min_dividend must be a non-negative number, got %q", raw)
		}
		f.minDividend = &v
	}
	return f, nil
}

func (f stockFilters) active() bool {
	return f.minScore != nil || f.sector != "" || f.maxPE != nil || f.minDividend != nil
}

// match reports whether one view row passes the filters. Rows without
// a snapshot fail every metric filter.
func (f stockFilters) match(row contracts.StockRow) bool {
	if f.sector != "" && row.Sector != f.sector {
		return false
	}
	if f.minScore == nil && f.maxPE == nil && f.minDividend == nil {
		return true
	}
	if row.Record == nil {
		return false
	}
	if f.minScore != nil && row.Record.Score < *f.minScore {
		return false
	}
	if f.maxPE != nil && (row.Record.TrailingPE <= 0 || row.Record.TrailingPE > *f.maxPE) {
		return false
	}
	if f.minDividend != nil && row.Record.DividendYieldPct < *f.minDividend {
		return false
	}
	return true
}
