package catalog

// Market is one tracked equity market: a fixed, read-only set of
// tickers with display names and sector labels. The catalog is defined
// once at startup and never mutated.
type Market struct {
	// ID is the stable identifier used in URLs, CLI args and metadata keys.
	ID string
	// Name is the human-readable market name.
	Name string
	// Schema is the PostgreSQL schema holding this market's store.
	Schema string
	// Symbols maps ticker to company display name.
	Symbols map[string]string
}

// Markets returns all tracked markets in their fixed iteration order.
func Markets() []Market {
	return markets
}

// ByID returns the market with the given ID.
func ByID(id string) (Market, bool) {
	for _, m := range markets {
		if m.ID == id {
			return m, true
		}
	}
	return Market{}, false
}

// SectorOther is the fallback label for tickers without a sector
// entry. It carries no scoring adjustment.
const SectorOther = "Other"

// Sector returns the sector label for a ticker within a market.
// Unknown tickers fall back to SectorOther.
func Sector(m Market, ticker string) string {
	var sectors map[string]string
	switch m.ID {
	case IBEX35, SpainMidCap:
		sectors = sectorsSpain
	case Nasdaq:
		sectors = sectorsNasdaq
	case SP500:
		sectors = sectorsSP500
	}
	if s, ok := sectors[ticker]; ok {
		return s
	}
	return SectorOther
}

// TotalSymbols returns the number of tickers across all markets.
func TotalSymbols() int {
	n := 0
	for _, m := range markets {
		n += len(m.Symbols)
	}
	return n
}

// Market IDs.
const (
	IBEX35      = "ibex35"
	SpainMidCap = "spain_midcap"
	Nasdaq      = "nasdaq25"
	SP500       = "sp500_25"
)

var markets = []Market{
	{
		ID:      IBEX35,
		Name:    "IBEX 35",
		Schema:  "market_ibex35",
		Symbols: symbolsIbex35,
	},
	{
		ID:      Nasdaq,
		Name:    "NASDAQ Top 25",
		Schema:  "market_nasdaq25",
		Symbols: symbolsNasdaq25,
	},
	{
		ID:      SP500,
		Name:    "S&P 500 Top 25",
		Schema:  "market_sp500_25",
		Symbols: symbolsSP500Top25,
	},
	{
		ID:      SpainMidCap,
		Name:    "Spain Medium Cap",
		Schema:  "market_spain_midcap",
		Symbols: symbolsSpainMidCap,
	},
}
