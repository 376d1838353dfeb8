// Package validate repairs implausible provider values: it turns one
// symbol's raw quote and price history into exactly one bounded,
// self-consistent fundamentals record plus a list of human-readable
// alerts for every correction applied. It never fails; garbage input
// yields a best-effort record.
package validate

import (
	"fmt"
	"math"

	"github.com/ivalero/marketlens/internal/contracts"
	"github.com/ivalero/marketlens/internal/provider/yahoo"
	"github.com/ivalero/marketlens/internal/scoring"
)

// Correction thresholds. Values outside these bounds are treated as
// provider noise and replaced with neutral defaults.
const (
	maxDividendYieldPct = 15
	maxAbsUpsidePct     = 50
	maxTrailingPE       = 100
	neutralPE           = 15
	maxForwardPE        = 100
	maxPriceBook        = 20
)

// Run validates and corrects one symbol's raw data, scoring the result
// for the given sector. The returned alerts describe every correction;
// persisting them is the caller's concern.
func Run(quote *yahoo.Quote, history []yahoo.Bar, sector string) (contracts.Record, []string) {
	var rec contracts.Record
	var alerts []string

	// Price: most recent close wins over the quote fields.
	if len(history) > 0 {
		rec.Price = history[len(history)-1].Close
	} else {
		rec.Price = quote.CurrentPrice()
	}

	// Dividend yield: normalize, then reject implausible values.
	divYield := normalizePercent(quote.DividendYield())
	if divYield > maxDividendYieldPct {
		alerts = append(alerts, fmt.Sprintf("Dividend yield implausibly high: %.1f%%", divYield))
		divYield = 0
		alerts = append(alerts, "Dividend yield reset to 0% (verify manually)")
	} else if divYield < 0 {
		alerts = append(alerts, fmt.Sprintf("Negative dividend yield: %.1f%%", divYield))
		divYield = 0
		alerts = append(alerts, "Dividend yield reset to 0%")
	}
	rec.DividendYieldPct = divYield

	// Analyst targets and upside.
	targetMean := quote.TargetMean()
	targetHigh := quote.TargetHigh()
	targetLow := quote.TargetLow()

	var upside float64
	if targetMean > 0 && rec.Price > 0 {
		upside = (targetMean - rec.Price) / rec.Price * 100
		if upside > maxAbsUpsidePct || upside < -maxAbsUpsidePct {
			alerts = append(alerts, fmt.Sprintf("Suspicious upside: %.1f%%", upside))
			targetMean = rec.Price * 1.08
			upside = 8
			alerts = append(alerts, "Upside overridden to +8%")
		}
	} else {
		upside = 5
		if rec.Price > 0 {
			targetMean = rec.Price * 1.05
		} else {
			targetMean = 0
		}
	}
	rec.TargetMean = targetMean
	rec.TargetHigh = targetHigh
	if targetHigh <= 0 {
		rec.TargetHigh = targetMean * 1.15
	}
	rec.TargetLow = targetLow
	if targetLow <= 0 {
		rec.TargetLow = targetMean * 0.85
	}
	rec.UpsidePct = upside

	// Valuation ratios.
	pe := quote.TrailingPE()
	if pe > maxTrailingPE || pe < 0 {
		alerts = append(alerts, fmt.Sprintf("Suspicious trailing P/E: %.1f", pe))
		pe = neutralPE
	}
	rec.TrailingPE = pe
	rec.ForwardPE = math.Min(quote.ForwardPE(), maxForwardPE)
	rec.PriceBook = math.Min(quote.PriceToBook(), maxPriceBook)

	rec.MarketCapB = quote.MarketCap() / 1e9

	// Profitability, normalized then bounded.
	rec.ROEPct = clamp(normalizePercent(quote.ReturnOnEquity()), -50, 100)
	rec.ROAPct = clamp(normalizePercent(quote.ReturnOnAssets()), -20, 50)
	rec.RevenueGrowthPct = clamp(normalizePercent(quote.RevenueGrowth()), -50, 100)
	rec.ProfitMarginPct = clamp(normalizePercent(quote.ProfitMargin()), -100, 100)
	if payout, ok := quote.PayoutRatio(); ok {
		rec.PayoutRatio = &payout
	}

	rec.NumAnalysts = quote.NumAnalysts()
	rec.Recommendation = quote.Recommendation()
	rec.Beta = quote.Beta()

	rec.TotalReturnPct = rec.UpsidePct + rec.DividendYieldPct

	closes := make([]float64, len(history))
	for i, b := range history {
		closes[i] = b.Close
	}
	rec.VolatilityPct = annualizedVolatility(closes)

	rec.Score = scoring.Composite(rec, sector)

	return rec, alerts
}

// Placeholder returns the neutral record substituted when the provider
// fails for a symbol: low fixed score, neutral valuation, so the
// ticker stays visible in rankings without polluting them.
func Placeholder() contracts.Record {
	return contracts.Record{
		TrailingPE:     neutralPE,
		ROEPct:         10,
		UpsidePct:      0,
		Beta:           1,
		VolatilityPct:  20,
		Recommendation: "N/A",
		Score:          30,
	}
}
