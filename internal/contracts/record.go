package contracts

import "time"

// Record is one corrected fundamentals snapshot for one ticker at one
// refresh cycle. It is produced by the validator, scored by the
// composite scorer and persisted append-only; a record is never
// mutated after creation, only superseded by the next cycle's record.
//
// Every percent-like field is already normalized to percent units
// (never a 0-1 fraction) and clamped to its sane range by the
// validator.
type Record struct {
	Price      float64 `json:"price"`
	TargetMean float64 `json:"target_mean"`
	TargetHigh float64 `json:"target_high"`
	TargetLow  float64 `json:"target_low"`

	UpsidePct        float64 `json:"upside_pct"`
	DividendYieldPct float64 `json:"dividend_yield_pct"`
	TotalReturnPct   float64 `json:"total_return_pct"`

	TrailingPE float64 `json:"trailing_pe"`
	ForwardPE  float64 `json:"forward_pe"`
	PriceBook  float64 `json:"price_book"`

	// MarketCapB is the market capitalization in billions of the
	// market's currency units.
	MarketCapB float64 `json:"market_cap_b"`

	ROEPct           float64 `json:"roe_pct"`
	ROAPct           float64 `json:"roa_pct"`
	RevenueGrowthPct float64 `json:"revenue_growth_pct"`
	ProfitMarginPct  float64 `json:"profit_margin_pct"`

	// PayoutRatio is the dividend payout ratio as a fraction. Nil when
	// the provider did not report one.
	PayoutRatio *float64 `json:"payout_ratio,omitempty"`

	Beta          float64 `json:"beta"`
	VolatilityPct float64 `json:"volatility_pct"`

	NumAnalysts    int    `json:"num_analysts"`
	Recommendation string `json:"recommendation"`

	// Score is the 0-100 composite opportunity score.
	Score int `json:"score"`
}

// PriceBar is one daily OHLCV row for one ticker. Unique per
// (ticker, date); the latest write for a date wins.
type PriceBar struct {
	Ticker string    `json:"ticker"`
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// StockRow is one row of the latest-fundamentals view: catalog entry
// left-joined to its most recent snapshot. Metric pointers are nil for
// tickers that have no snapshot yet.
type StockRow struct {
	Ticker  string `json:"ticker"`
	Company string `json:"company"`
	Sector  string `json:"sector"`
	Market  string `json:"market"`

	Record    *Record    `json:"record,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Alert is one validation or fetch alert tied to a ticker.
type Alert struct {
	Ticker    string    `json:"ticker"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
