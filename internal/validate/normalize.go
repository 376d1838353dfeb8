package validate

import "math"

// normalizePercent resolves the provider's fraction-vs-percent
// ambiguity: several fields (dividend yield, ROE, ROA, revenue growth)
// arrive sometimes as a 0-1 fraction and sometimes already as a
// percent. A value strictly inside (0, 1) is treated as a fraction and
// scaled; anything else passes through unchanged.
func normalizePercent(v float64) float64 {
	if v > 0 && v < 1 {
		return v * 100
	}
	return v
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// annualizedVolatility computes the trailing-year volatility as a
// percent: sample standard deviation of daily close-to-close percent
// returns, annualized over 252 trading days.
func annualizedVolatility(closes []float64) float64 {
	if len(closes) < 3 {
		return 0
	}

	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			continue
		}
		returns = append(returns, closes[i]/closes[i-1]-1)
	}
	if len(returns) < 2 {
		return 0
	}

	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(returns) - 1)

	return math.Sqrt(variance) * math.Sqrt(252) * 100
}
