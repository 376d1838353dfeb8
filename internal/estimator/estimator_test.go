package estimator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ivalero/marketlens/internal/contracts"
)

func ptr(v float64) *float64 { return &v }

func TestRun_KnownValues(t *testing.T) {
	in := Inputs{
		DividendYield:  0.05,
		PayoutRatio:    ptr(0.5),
		ROE:            0.18,
		ROA:            0.08,
		ProfitMargin:   0.15,
		PriceChangePct: 12,
		TrailingPE:     12,
		PriceToBook:    1.2,
	}
	est := Run(in)

	// yield 10 (capped) blended 60/40 with sustainability 8.
	assert.InDelta(t, 9.2, est.DividendScore, 1e-9)
	// ROE 0.18 x retention 0.5 x 66.67.
	assert.InDelta(t, 6.0, est.GrowthScore, 0.01)
	assert.InDelta(t, 8.0, est.MomentumScore, 1e-9)
	// ROE 3 + ROA 2 + margin 2.
	assert.InDelta(t, 7.0, est.FundamentalSum, 1e-9)
	// PE 5 + PB 3.
	assert.InDelta(t, 8.0, est.ValuationSum, 1e-9)

	assert.InDelta(t, 7.75, est.Total, 0.01)
	// 5% yield plus 0.775 x 15 points of appreciation.
	assert.InDelta(t, 16.63, est.ExpectedReturnPct, 0.05)
	// Dividend growth capped at 3%.
	assert.InDelta(t, 5.15, est.ExpectedDividendPct, 0.01)
}

func TestRun_Deterministic(t *testing.T) {
	in := Inputs{DividendYield: 0.03, ROE: 0.1, TrailingPE: 18, PriceToBook: 2.2}
	assert.Equal(t, Run(in), Run(in))
}

func TestRun_DefaultsWhenUnreported(t *testing.T) {
	est := Run(Inputs{})

	// Payout defaults to 0.7: sustainability band 6, weighted 0.4.
	assert.InDelta(t, 2.4, est.DividendScore, 1e-9)
	assert.InDelta(t, 0.0, est.GrowthScore, 1e-9)
	// Flat price change still lands in the mild-positive band.
	assert.InDelta(t, 4.0, est.MomentumScore, 1e-9)
	assert.InDelta(t, 0.0, est.FundamentalSum, 1e-9)
	// PE defaults to 50 (band 1), PB to 5 (band 0).
	assert.InDelta(t, 1.0, est.ValuationSum, 1e-9)

	assert.Equal(t, 0.0, est.ExpectedDividendPct)
	assert.Greater(t, est.ExpectedReturnPct, 0.0)
}

func TestRun_GrowthScoreRetentionBounded(t *testing.T) {
	// Payout above 1 means zero retention; a loss-making company must
	// not score growth points from two negatives multiplying out.
	est := Run(Inputs{ROE: -0.2, PayoutRatio: ptr(1.5)})
	assert.Zero(t, est.GrowthScore)

	// Positive ROE with payout above 1 is also zero retention.
	est = Run(Inputs{ROE: 0.25, PayoutRatio: ptr(1.2)})
	assert.Zero(t, est.GrowthScore)

	// Negative payout cannot push retention past 1.
	est = Run(Inputs{ROE: 0.12, PayoutRatio: ptr(-0.4)})
	assert.InDelta(t, 0.12*66.67, est.GrowthScore, 0.01)
}

func TestRun_ReturnContributionCapped(t *testing.T) {
	// A perfect 10 cannot add more than 15 points over the yield.
	in := Inputs{
		DividendYield:  0.04,
		PayoutRatio:    ptr(0.3),
		ROE:            0.35,
		ROA:            0.15,
		ProfitMargin:   0.25,
		PriceChangePct: 30,
		TrailingPE:     8,
		PriceToBook:    0.8,
	}
	est := Run(in)
	assert.LessOrEqual(t, est.ExpectedReturnPct, 4.0+15.0+1e-9)
}

func TestMomentumBands(t *testing.T) {
	tests := []struct {
		change float64
		want   float64
	}{
		{25, 9}, {15, 8}, {5, 6}, {0, 4}, {-5, 4}, {-15, 2}, {-30, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, momentumScore(tt.change), "change %.0f", tt.change)
	}
}

func TestFromRecord(t *testing.T) {
	payout := 0.55
	rec := contracts.Record{
		DividendYieldPct: 4.5,
		ROEPct:           18,
		ROAPct:           8,
		ProfitMarginPct:  12,
		TrailingPE:       14,
		PriceBook:        1.4,
		PayoutRatio:      &payout,
	}
	start := time.Date(2025, 8, 28, 0, 0, 0, 0, time.UTC)
	bars := []contracts.PriceBar{
		{Date: start, Close: 100},
		{Date: start.AddDate(0, 6, 0), Close: 105},
		{Date: start.AddDate(0, 11, 0), Close: 120},
	}

	in := FromRecord(rec, bars)
	assert.InDelta(t, 0.045, in.DividendYield, 1e-9)
	assert.InDelta(t, 0.18, in.ROE, 1e-9)
	assert.InDelta(t, 0.08, in.ROA, 1e-9)
	assert.InDelta(t, 0.12, in.ProfitMargin, 1e-9)
	assert.InDelta(t, 20.0, in.PriceChangePct, 1e-9)
	assert.Equal(t, &payout, in.PayoutRatio)

	// Too little history means no momentum signal.
	in = FromRecord(rec, bars[:1])
	assert.Equal(t, 0.0, in.PriceChangePct)
}
