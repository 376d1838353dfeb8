package yahoo

import (
	"fmt"
	"time"
)

// Quote is the loosely-typed field bag the provider returns for one
// symbol. Every numeric field is optional: nil means the provider did
// not report it, which is distinct from a reported zero. Accessors
// below resolve that distinction in one place so callers never touch
// the pointers directly.
type Quote struct {
	Symbol string

	currentPrice       *float64
	regularMarketPrice *float64
	targetMeanPrice    *float64
	targetHighPrice    *float64
	targetLowPrice     *float64
	dividendYield      *float64
	trailingPE         *float64
	forwardPE          *float64
	priceToBook        *float64
	marketCap          *float64
	payoutRatio        *float64
	profitMargins      *float64
	returnOnEquity     *float64
	returnOnAssets     *float64
	revenueGrowth      *float64
	beta               *float64
	numAnalysts        *float64
	recommendationKey  string
}

// CurrentPrice returns the provider's current price, falling back to
// the regular market price, then zero.
func (q *Quote) CurrentPrice() float64 {
	if v := deref(q.currentPrice); v != 0 {
		return v
	}
	return deref(q.regularMarketPrice)
}

// TargetMean returns the analyst mean target price, zero when absent.
func (q *Quote) TargetMean() float64 { return deref(q.targetMeanPrice) }

// TargetHigh returns the analyst high target price, zero when absent.
func (q *Quote) TargetHigh() float64 { return deref(q.targetHighPrice) }

// TargetLow returns the analyst low target price, zero when absent.
func (q *Quote) TargetLow() float64 { return deref(q.targetLowPrice) }

// DividendYield returns the raw dividend yield as reported. The
// provider is inconsistent about fraction vs percent; normalization is
// the validator's job, not ours.
func (q *Quote) DividendYield() float64 { return deref(q.dividendYield) }

// TrailingPE returns the trailing P/E ratio, zero when absent.
func (q *Quote) TrailingPE() float64 { return deref(q.trailingPE) }

// ForwardPE returns the forward P/E ratio, zero when absent.
func (q *Quote) ForwardPE() float64 { return deref(q.forwardPE) }

// PriceToBook returns the price/book ratio, zero when absent.
func (q *Quote) PriceToBook() float64 { return deref(q.priceToBook) }

// MarketCap returns the market capitalization in absolute currency units.
func (q *Quote) MarketCap() float64 { return deref(q.marketCap) }

// PayoutRatio returns the dividend payout ratio as a fraction. The
// second result is false when the provider did not report one, so
// callers can apply their own default.
func (q *Quote) PayoutRatio() (float64, bool) {
	if q.payoutRatio == nil {
		return 0, false
	}
	return *q.payoutRatio, true
}

// ProfitMargin returns the net profit margin as a fraction, zero when absent.
func (q *Quote) ProfitMargin() float64 { return deref(q.profitMargins) }

// ReturnOnEquity returns ROE as reported (fraction or percent).
func (q *Quote) ReturnOnEquity() float64 { return deref(q.returnOnEquity) }

// ReturnOnAssets returns ROA as reported (fraction or percent).
func (q *Quote) ReturnOnAssets() float64 { return deref(q.returnOnAssets) }

// RevenueGrowth returns revenue growth as reported (fraction or percent).
func (q *Quote) RevenueGrowth() float64 { return deref(q.revenueGrowth) }

// Beta returns the beta, defaulting to 1.0 when absent.
func (q *Quote) Beta() float64 {
	if q.beta == nil {
		return 1.0
	}
	return *q.beta
}

// NumAnalysts returns the number of analyst opinions.
func (q *Quote) NumAnalysts() int { return int(deref(q.numAnalysts)) }

// Recommendation returns the analyst recommendation key ("buy",
// "hold", ...), "N/A" when absent.
func (q *Quote) Recommendation() string {
	if q.recommendationKey == "" {
		return "N/A"
	}
	return q.recommendationKey
}

// QuoteFields is the raw field bag used to build a Quote. Nil means
// the provider did not report the field. The quoteSummary parser and
// test fixtures both build quotes through this.
type QuoteFields struct {
	CurrentPrice       *float64
	RegularMarketPrice *float64
	TargetMean         *float64
	TargetHigh         *float64
	TargetLow          *float64
	DividendYield      *float64
	TrailingPE         *float64
	ForwardPE          *float64
	PriceToBook        *float64
	MarketCap          *float64
	PayoutRatio        *float64
	ProfitMargins      *float64
	ReturnOnEquity     *float64
	ReturnOnAssets     *float64
	RevenueGrowth      *float64
	Beta               *float64
	NumAnalysts        *float64
	Recommendation     string
}

// NewQuote builds a Quote from raw optional fields.
func NewQuote(symbol string, f QuoteFields) *Quote {
	return &Quote{
		Symbol:             symbol,
		currentPrice:       f.CurrentPrice,
		regularMarketPrice: f.RegularMarketPrice,
		targetMeanPrice:    f.TargetMean,
		targetHighPrice:    f.TargetHigh,
		targetLowPrice:     f.TargetLow,
		dividendYield:      f.DividendYield,
		trailingPE:         f.TrailingPE,
		forwardPE:          f.ForwardPE,
		priceToBook:        f.PriceToBook,
		marketCap:          f.MarketCap,
		payoutRatio:        f.PayoutRatio,
		profitMargins:      f.ProfitMargins,
		returnOnEquity:     f.ReturnOnEquity,
		returnOnAssets:     f.ReturnOnAssets,
		revenueGrowth:      f.RevenueGrowth,
		beta:               f.Beta,
		numAnalysts:        f.NumAnalysts,
		recommendationKey:  f.Recommendation,
	}
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// Bar is one daily OHLCV row.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Profile holds the scraped company profile, used as a fallback when
// the JSON API omits name or sector.
type Profile struct {
	Symbol string
	Name   string
	Sector string
}

// FetchError is a per-symbol provider failure. One symbol failing
// never affects siblings; the refresh controller substitutes a
// placeholder record instead of aborting the batch.
type FetchError struct {
	Symbol string
	Op     string // "quote", "history", "profile"
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("yahoo %s fetch for %s: %v", e.Op, e.Symbol, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
