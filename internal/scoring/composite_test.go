package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ivalero/marketlens/internal/contracts"
)

func TestComposite_Deterministic(t *testing.T) {
	rec := contracts.Record{
		UpsidePct: 12, DividendYieldPct: 3.5, TrailingPE: 14,
		PriceBook: 1.8, ROEPct: 18, RevenueGrowthPct: 7, ROAPct: 6,
		NumAnalysts: 12, Recommendation: "buy",
		VolatilityPct: 25, Beta: 1.1, MarketCapB: 40,
	}
	first := Composite(rec, "Banca")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Composite(rec, "Banca"))
	}
}

func TestComposite_Bounds(t *testing.T) {
	best := contracts.Record{
		UpsidePct: 40, DividendYieldPct: 8, TrailingPE: 8, PriceBook: 0.8,
		ROEPct: 30, RevenueGrowthPct: 25, ROAPct: 18, NumAnalysts: 25,
		Recommendation: "strong_buy", VolatilityPct: 10, Beta: 1.0, MarketCapB: 100,
	}
	worst := contracts.Record{
		UpsidePct: -40, TrailingPE: -5, ROEPct: -40, ROAPct: -15,
		RevenueGrowthPct: -40, Recommendation: "strong_sell",
		VolatilityPct: 90, Beta: 3.5, MarketCapB: 0.1,
	}

	assert.LessOrEqual(t, Composite(best, "Technology"), 100)
	assert.GreaterOrEqual(t, Composite(best, "Technology"), 85)
	assert.GreaterOrEqual(t, Composite(worst, "Other"), 0)
	assert.LessOrEqual(t, Composite(worst, "Other"), 5)
}

func TestComposite_WeakStockScoresLow(t *testing.T) {
	// High upside alone cannot rescue a risky, expensive micro cap.
	rec := contracts.Record{
		UpsidePct: 30, DividendYieldPct: 0, TrailingPE: 85, ROEPct: 2,
		VolatilityPct: 75, NumAnalysts: 2, MarketCapB: 0.2, Beta: 1.0,
	}
	score := Composite(rec, "Other")
	assert.Less(t, score, 40)
}

func TestComposite_StrongStockScoresHigh(t *testing.T) {
	rec := contracts.Record{
		UpsidePct: 12, DividendYieldPct: 6, TrailingPE: 11, PriceBook: 1.5,
		ROEPct: 22, RevenueGrowthPct: 10, ROAPct: 11, NumAnalysts: 18,
		Recommendation: "buy", VolatilityPct: 18, Beta: 1.0, MarketCapB: 15,
	}
	score := Composite(rec, "Other")
	assert.GreaterOrEqual(t, score, 75)
}

func TestComposite_RecommendationCaseInsensitive(t *testing.T) {
	rec := contracts.Record{Beta: 1.0, MarketCapB: 10}

	lower := rec
	lower.Recommendation = "strong_buy"
	upper := rec
	upper.Recommendation = "STRONG_BUY"
	assert.Equal(t, Composite(lower, "Other"), Composite(upper, "Other"))

	unknown := rec
	unknown.Recommendation = "outperform"
	hold := rec
	hold.Recommendation = "hold"
	assert.Equal(t, Composite(hold, "Other")-2, Composite(unknown, "Other"))
}

func TestComposite_RiskPenalties(t *testing.T) {
	base := contracts.Record{
		UpsidePct: 10, DividendYieldPct: 3, TrailingPE: 14, ROEPct: 12,
		Beta: 1.0, MarketCapB: 10, VolatilityPct: 20,
	}
	baseScore := Composite(base, "Other")

	volatile := base
	volatile.VolatilityPct = 65
	assert.Equal(t, baseScore-10, Composite(volatile, "Other"))

	highBeta := base
	highBeta.Beta = 2.5
	assert.Equal(t, baseScore-5, Composite(highBeta, "Other"))

	lowBeta := base
	lowBeta.Beta = 0.2
	assert.Equal(t, baseScore-3, Composite(lowBeta, "Other"))

	micro := base
	micro.MarketCapB = 0.4
	assert.Equal(t, baseScore-8, Composite(micro, "Other"))
}

func TestComposite_ExcellenceBonusesStack(t *testing.T) {
	// Triggers all three combinations at once.
	rec := contracts.Record{
		UpsidePct: 16, DividendYieldPct: 5, TrailingPE: 14, ROEPct: 21,
		ROAPct: 11, RevenueGrowthPct: 6, Beta: 1.0, MarketCapB: 10,
	}
	// upside 15 + dividend 13 + pe 11 + roe 9 + growth 2 + roa 4
	// + bonuses 5+3+2 = 64.
	assert.Equal(t, 64, Composite(rec, "Other"))

	without := rec
	without.UpsidePct = 14       // breaks combo 1, upside bucket drops 15 -> 12
	without.ROEPct = 19          // breaks combo 3, roe bucket drops 9 -> 7
	without.ROAPct = 9           // roa bucket drops 4 -> 3
	without.DividendYieldPct = 4 // breaks combo 2, dividend bucket drops 13 -> 11

	// upside 12 + dividend 11 + pe 11 + roe 7 + growth 2 + roa 3,
	// no bonuses = 46: the 18-point gap is 10 bonus points plus the
	// 8-point bucket shift.
	assert.Equal(t, 46, Composite(without, "Other"))
}

func TestSectorAdjustments(t *testing.T) {
	rec := contracts.Record{
		UpsidePct: 10, DividendYieldPct: 4, TrailingPE: 25,
		VolatilityPct: 40, Beta: 1.0, MarketCapB: 10,
	}
	neutral := Composite(rec, "Other")

	// PE tolerance applies when P/E is under 30.
	assert.Equal(t, neutral+5, Composite(rec, "Technology"))
	assert.Equal(t, neutral+3, Composite(rec, "Healthcare"))

	// Dividend bonus applies when yield exceeds 3.
	assert.Equal(t, neutral+2, Composite(rec, "Utilities"))
	assert.Equal(t, neutral+2, Composite(rec, "Banca"))

	// Volatility tolerance applies when volatility exceeds 35.
	assert.Equal(t, neutral+3, Composite(rec, "Energy"))
	assert.Equal(t, neutral+2, Composite(rec, "Industrial"))

	// Conditions not met: no adjustment.
	calm := rec
	calm.TrailingPE = 35
	calm.DividendYieldPct = 2
	calm.VolatilityPct = 20
	calmNeutral := Composite(calm, "Other")
	assert.Equal(t, calmNeutral, Composite(calm, "Technology"))
	assert.Equal(t, calmNeutral, Composite(calm, "Utilities"))
	assert.Equal(t, calmNeutral, Composite(calm, "Energy"))
}

func TestCompositeWithAdjustments_CustomTable(t *testing.T) {
	rec := contracts.Record{
		UpsidePct: 10, DividendYieldPct: 4, TrailingPE: 20,
		Beta: 1.0, MarketCapB: 10,
	}
	custom := map[string]SectorAdjustment{
		"Shipping": {DividendBonus: 4},
	}
	base := CompositeWithAdjustments(rec, "Other", custom)
	assert.Equal(t, base+4, CompositeWithAdjustments(rec, "Shipping", custom))
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		score int
		label string
	}{
		{100, "Exceptional"},
		{85, "Exceptional"},
		{84, "Very Attractive"},
		{75, "Very Attractive"},
		{65, "Attractive"},
		{55, "Neutral"},
		{45, "Low Attractiveness"},
		{35, "Not Recommended"},
		{34, "Avoid"},
		{0, "Avoid"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.label, Categorize(tt.score).Label, "score %d", tt.score)
	}
}
