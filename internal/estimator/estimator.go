// Package estimator implements the weighted expected-return scorer,
// the second of the two scoring pipelines. It is independent of the
// composite scorer: different factor set, different weighting, built
// for the forward-return view rather than the opportunity ranking.
package estimator

import "math"

// Factor weights. They sum to 1.0.
const (
	weightDividendYield  = 0.25
	weightDividendGrowth = 0.15
	weightPriceMomentum  = 0.20
	weightFundamentals   = 0.25
	weightValuation      = 0.15
)

// Defaults applied when the provider omits a field.
const (
	defaultPayoutDividend = 0.7
	defaultPayoutGrowth   = 0.6
	defaultTrailingPE     = 50.0
	defaultPriceToBook    = 5.0
)

// maxReturnContribution caps how much the factor score can add on top
// of the dividend yield, at 15 percentage points.
const maxReturnContribution = 0.15

// Inputs are the raw fundamentals the estimator consumes. Ratio fields
// are fractions as reported by the provider, not percents. PayoutRatio
// is nil when unreported; the estimator applies per-factor defaults.
type Inputs struct {
	DividendYield  float64
	PayoutRatio    *float64
	ROE            float64
	ROA            float64
	ProfitMargin   float64
	PriceChangePct float64
	TrailingPE     float64
	PriceToBook    float64
}

// Estimate is the scored outcome. Sub-scores are on a 0-10 scale
// except the fundamental and valuation sums, which max at 10 by
// construction. Return fields are percents.
type Estimate struct {
	DividendScore  float64 `json:"dividend_score"`
	GrowthScore    float64 `json:"growth_score"`
	MomentumScore  float64 `json:"momentum_score"`
	FundamentalSum float64 `json:"fundamental_score"`
	ValuationSum   float64 `json:"valuation_score"`

	Total float64 `json:"total"`

	ExpectedReturnPct   float64 `json:"expected_return_pct"`
	ExpectedDividendPct float64 `json:"expected_dividend_pct"`
}

// Run scores one set of inputs. Pure and deterministic.
func Run(in Inputs) Estimate {
	est := Estimate{
		DividendScore:  dividendScore(in),
		GrowthScore:    growthScore(in),
		MomentumScore:  momentumScore(in.PriceChangePct),
		FundamentalSum: fundamentalScore(in),
		ValuationSum:   valuationScore(in),
	}

	est.Total = est.DividendScore*weightDividendYield +
		est.GrowthScore*weightDividendGrowth +
		est.MomentumScore*weightPriceMomentum +
		est.FundamentalSum*weightFundamentals +
		est.ValuationSum*weightValuation

	expectedReturn := in.DividendYield + clip(est.Total/10, 0, 1)*maxReturnContribution
	est.ExpectedReturnPct = expectedReturn * 100

	// Projected next-year dividend yield, growing by at most 3%.
	dividendGrowth := clip(est.GrowthScore/200, 0, 0.03)
	est.ExpectedDividendPct = in.DividendYield * (1 + dividendGrowth) * 100

	return est
}

// dividendScore blends current yield with payout sustainability.
func dividendScore(in Inputs) float64 {
	yieldScore := clip(in.DividendYield*200, 0, 10)

	payout := defaultPayoutDividend
	if in.PayoutRatio != nil {
		payout = *in.PayoutRatio
	}
	var sustainability float64
	switch {
	case payout <= 0.6:
		sustainability = 8
	case payout <= 0.8:
		sustainability = 6
	case payout <= 1.0:
		sustainability = 3
	}

	return yieldScore*0.6 + sustainability*0.4
}

// growthScore estimates dividend growth capacity as ROE times the
// earnings retention rate. Retention is bounded to [0,1] so a payout
// above 1 means zero retention; combined with a negative ROE it must
// never turn into a positive score.
func growthScore(in Inputs) float64 {
	payout := defaultPayoutGrowth
	if in.PayoutRatio != nil {
		payout = *in.PayoutRatio
	}
	retention := clip(1-payout, 0, 1)
	return clip(in.ROE*retention*66.67, 0, 10)
}

func momentumScore(changePct float64) float64 {
	switch {
	case changePct > 20:
		return 9
	case changePct > 10:
		return 8
	case changePct > 0:
		return 6
	case changePct > -10:
		return 4
	case changePct > -20:
		return 2
	default:
		return 0
	}
}

func fundamentalScore(in Inputs) float64 {
	var score float64

	switch {
	case in.ROE > 0.20:
		score += 4
	case in.ROE > 0.15:
		score += 3
	case in.ROE > 0.10:
		score += 2
	case in.ROE > 0.05:
		score += 1
	}

	switch {
	case in.ROA > 0.10:
		score += 3
	case in.ROA > 0.05:
		score += 2
	case in.ROA > 0.02:
		score += 1
	}

	switch {
	case in.ProfitMargin > 0.20:
		score += 3
	case in.ProfitMargin > 0.10:
		score += 2
	case in.ProfitMargin > 0.05:
		score += 1
	}

	return score
}

func valuationScore(in Inputs) float64 {
	pe := in.TrailingPE
	if pe <= 0 {
		pe = defaultTrailingPE
	}
	pb := in.PriceToBook
	if pb <= 0 {
		pb = defaultPriceToBook
	}

	var score float64
	switch {
	case pe < 10:
		score += 6
	case pe < 15:
		score += 5
	case pe < 20:
		score += 4
	case pe < 25:
		score += 3
	case pe < 30:
		score += 2
	default:
		score += 1
	}

	switch {
	case pb < 1.0:
		score += 4
	case pb < 1.5:
		score += 3
	case pb < 2.0:
		score += 2
	case pb < 3.0:
		score += 1
	}

	return score
}

func clip(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
