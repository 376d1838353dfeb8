package estimator

import "github.com/ivalero/marketlens/internal/contracts"

// FromRecord builds estimator inputs from a persisted snapshot and its
// trailing price history. Percent fields are converted back to the
// fractions the estimator works in; momentum is the percent change
// between the oldest and newest close in bars.
func FromRecord(rec contracts.Record, bars []contracts.PriceBar) Inputs {
	return Inputs{
		DividendYield:  rec.DividendYieldPct / 100,
		PayoutRatio:    rec.PayoutRatio,
		ROE:            rec.ROEPct / 100,
		ROA:            rec.ROAPct / 100,
		ProfitMargin:   rec.ProfitMarginPct / 100,
		PriceChangePct: priceChangePct(bars),
		TrailingPE:     rec.TrailingPE,
		PriceToBook:    rec.PriceBook,
	}
}

func priceChangePct(bars []contracts.PriceBar) float64 {
	if len(bars) < 2 {
		return 0
	}
	first := bars[0].Close
	last := bars[len(bars)-1].Close
	if first <= 0 {
		return 0
	}
	return (last - first) / first * 100
}
