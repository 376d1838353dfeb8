package yahoo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuoteSummary(t *testing.T) {
	body := []byte(`{
		"quoteSummary": {
			"result": [{
				"price": {"regularMarketPrice": {"raw": 182.5, "fmt": "182.50"}},
				"summaryDetail": {
					"dividendYield": {"raw": 0.0055},
					"trailingPE": {"raw": 28.4},
					"forwardPE": {"raw": 25.1},
					"beta": {"raw": 1.25},
					"marketCap": {"raw": 2800000000000},
					"payoutRatio": {"raw": 0.15}
				},
				"financialData": {
					"currentPrice": {"raw": 182.9},
					"targetMeanPrice": {"raw": 200.0},
					"targetHighPrice": {"raw": 230.0},
					"targetLowPrice": {"raw": 160.0},
					"profitMargins": {"raw": 0.25},
					"returnOnEquity": {"raw": 1.47},
					"returnOnAssets": {"raw": 0.21},
					"revenueGrowth": {"raw": 0.08},
					"numberOfAnalystOpinions": {"raw": 38},
					"recommendationKey": "buy"
				},
				"defaultKeyStatistics": {"priceToBook": {"raw": 44.6}}
			}],
			"error": null
		}
	}`)

	quote, err := parseQuoteSummary("AAPL", body)
	require.NoError(t, err)

	assert.Equal(t, "AAPL", quote.Symbol)
	assert.Equal(t, 182.9, quote.CurrentPrice())
	assert.Equal(t, 200.0, quote.TargetMean())
	assert.Equal(t, 230.0, quote.TargetHigh())
	assert.Equal(t, 160.0, quote.TargetLow())
	assert.Equal(t, 0.0055, quote.DividendYield())
	assert.Equal(t, 28.4, quote.TrailingPE())
	assert.Equal(t, 25.1, quote.ForwardPE())
	assert.Equal(t, 44.6, quote.PriceToBook())
	assert.Equal(t, 2.8e12, quote.MarketCap())
	assert.Equal(t, 0.25, quote.ProfitMargin())
	assert.Equal(t, 1.25, quote.Beta())
	assert.Equal(t, 38, quote.NumAnalysts())
	assert.Equal(t, "buy", quote.Recommendation())

	payout, ok := quote.PayoutRatio()
	assert.True(t, ok)
	assert.Equal(t, 0.15, payout)
}

func TestParseQuoteSummary_MissingFields(t *testing.T) {
	body := []byte(`{
		"quoteSummary": {
			"result": [{
				"price": {"regularMarketPrice": {"raw": 10.5}},
				"summaryDetail": {},
				"financialData": {},
				"defaultKeyStatistics": {}
			}]
		}
	}`)

	quote, err := parseQuoteSummary("X", body)
	require.NoError(t, err)

	// Current price falls back to the regular market price.
	assert.Equal(t, 10.5, quote.CurrentPrice())
	assert.Equal(t, 0.0, quote.TargetMean())
	assert.Equal(t, 0.0, quote.DividendYield())
	// Absent beta defaults to 1.0, absent recommendation to "N/A".
	assert.Equal(t, 1.0, quote.Beta())
	assert.Equal(t, "N/A", quote.Recommendation())

	_, ok := quote.PayoutRatio()
	assert.False(t, ok)
}

func TestParseQuoteSummary_ProviderError(t *testing.T) {
	body := []byte(`{
		"quoteSummary": {
			"result": null,
			"error": {"code": "Not Found", "description": "No data found"}
		}
	}`)

	_, err := parseQuoteSummary("BOGUS", body)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Not Found")
}

func TestParseQuoteSummary_EmptyResult(t *testing.T) {
	_, err := parseQuoteSummary("X", []byte(`{"quoteSummary": {"result": []}}`))
	assert.Error(t, err)

	_, err = parseQuoteSummary("X", []byte(`not json`))
	assert.Error(t, err)
}
