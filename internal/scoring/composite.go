// Package scoring holds the two opportunity scorers: the 0-100
// sector-adjusted composite score and the weighted expected-return
// category mapping. Both are pure functions; identical inputs always
// produce identical outputs.
package scoring

import (
	"strings"

	"github.com/ivalero/marketlens/internal/contracts"
)

// bucket is one threshold step of an additive scoring table: values
// greater than or equal to Min earn Points. Tables are ordered high to
// low; the first matching step wins.
type bucket struct {
	Min    float64
	Points int
}

var upsideBuckets = []bucket{
	{25, 20}, {20, 18}, {15, 15}, {10, 12}, {5, 8}, {0, 4}, {-5, 2},
}

var dividendBuckets = []bucket{
	{7, 15}, {5, 13}, {4, 11}, {3, 8}, {2, 5}, {1, 3},
}

var roeBuckets = []bucket{
	{25, 10}, {20, 9}, {15, 7}, {10, 5}, {5, 3}, {0, 1},
}

var growthBuckets = []bucket{
	{20, 5}, {15, 4}, {10, 3}, {5, 2}, {0, 1},
}

var roaBuckets = []bucket{
	{15, 5}, {10, 4}, {7, 3}, {5, 2}, {2, 1},
}

var analystBuckets = []bucket{
	{20, 10}, {15, 9}, {10, 7}, {7, 5}, {5, 3}, {3, 1},
}

func stepPoints(table []bucket, v float64) int {
	for _, b := range table {
		if v >= b.Min {
			return b.Points
		}
	}
	return 0
}

// peBuckets uses strict upper bounds (lower P/E is better).
func pePoints(pe float64) int {
	if pe <= 0 {
		return 0
	}
	switch {
	case pe < 10:
		return 15
	case pe < 12:
		return 13
	case pe < 15:
		return 11
	case pe < 18:
		return 8
	case pe < 22:
		return 5
	case pe < 30:
		return 2
	default:
		return 0
	}
}

func priceBookPoints(pb float64) int {
	switch {
	case pb > 0 && pb < 1:
		return 5
	case pb >= 1 && pb < 2:
		return 4
	case pb >= 2 && pb < 3:
		return 3
	case pb >= 3 && pb < 5:
		return 2
	default:
		return 0
	}
}

func recommendationPoints(rec string) int {
	switch strings.ToLower(rec) {
	case "strong_buy":
		return 5
	case "buy":
		return 4
	case "hold":
		return 2
	case "sell":
		return 0
	case "strong_sell":
		return -5
	default:
		return 0
	}
}

// riskPenalty returns the subtractive risk adjustment; each component
// applies independently.
func riskPenalty(rec contracts.Record) int {
	penalty := 0

	switch {
	case rec.VolatilityPct > 60:
		penalty -= 10
	case rec.VolatilityPct > 45:
		penalty -= 6
	case rec.VolatilityPct > 35:
		penalty -= 3
	}

	if rec.Beta > 2.0 {
		penalty -= 5
	} else if rec.Beta < 0.3 {
		penalty -= 3
	}

	switch {
	case rec.MarketCapB < 0.5:
		penalty -= 8
	case rec.MarketCapB < 1:
		penalty -= 5
	case rec.MarketCapB < 2:
		penalty -= 2
	}

	return penalty
}

// excellenceBonus rewards records that combine strengths; each
// combination stacks independently.
func excellenceBonus(rec contracts.Record) int {
	bonus := 0

	if rec.UpsidePct > 15 && rec.TrailingPE < 15 && rec.ROEPct > 15 {
		bonus += 5
	}
	if rec.DividendYieldPct > 4 && rec.RevenueGrowthPct > 5 {
		bonus += 3
	}
	if rec.ROEPct > 20 && rec.ROAPct > 10 && rec.TrailingPE < 20 {
		bonus += 2
	}

	return bonus
}

// Composite maps a corrected record and its sector to the 0-100
// opportunity score using the default sector adjustment table.
func Composite(rec contracts.Record, sector string) int {
	return CompositeWithAdjustments(rec, sector, DefaultSectorAdjustments)
}

// CompositeWithAdjustments scores with a caller-supplied sector table,
// allowing the adjustments to be tuned without touching the algorithm.
func CompositeWithAdjustments(rec contracts.Record, sector string, adjustments map[string]SectorAdjustment) int {
	score := 0

	// Expected return
	score += stepPoints(upsideBuckets, rec.UpsidePct)
	score += stepPoints(dividendBuckets, rec.DividendYieldPct)

	// Valuation
	score += pePoints(rec.TrailingPE)
	score += priceBookPoints(rec.PriceBook)

	// Fundamental quality
	score += stepPoints(roeBuckets, rec.ROEPct)
	score += stepPoints(growthBuckets, rec.RevenueGrowthPct)
	score += stepPoints(roaBuckets, rec.ROAPct)

	// Market confidence
	score += stepPoints(analystBuckets, float64(rec.NumAnalysts))
	score += recommendationPoints(rec.Recommendation)

	score += riskPenalty(rec)
	score += excellenceBonus(rec)
	score += sectorBonus(rec, sector, adjustments)

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return score
}
