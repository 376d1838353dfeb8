package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// quoteSummaryModules are the quoteSummary modules that together carry
// every fundamental field the validator consumes.
const quoteSummaryModules = "price,summaryDetail,financialData,defaultKeyStatistics"

// FetchQuote fetches the fundamental field bag for one symbol.
func (c *Client) FetchQuote(ctx context.Context, symbol string) (*Quote, error) {
	fullURL := fmt.Sprintf(
		"%s/v10/finance/quoteSummary/%s?modules=%s",
		c.quoteBaseURL, url.PathEscape(symbol), quoteSummaryModules,
	)

	body, err := c.httpClient.GetBody(ctx, fullURL)
	if err != nil {
		return nil, &FetchError{Symbol: symbol, Op: "quote", Err: err}
	}

	quote, err := parseQuoteSummary(symbol, body)
	if err != nil {
		return nil, &FetchError{Symbol: symbol, Op: "quote", Err: err}
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"price":  quote.CurrentPrice(),
	}).Debug("Fetched quote")
	return quote, nil
}

// rawValue is Yahoo's {"raw": 1.23, "fmt": "1.23"} numeric wrapper.
// Missing fields decode to a nil Raw.
type rawValue struct {
	Raw *float64 `json:"raw"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				RegularMarketPrice rawValue `json:"regularMarketPrice"`
			} `json:"price"`
			SummaryDetail struct {
				DividendYield rawValue `json:"dividendYield"`
				TrailingPE    rawValue `json:"trailingPE"`
				ForwardPE     rawValue `json:"forwardPE"`
				Beta          rawValue `json:"beta"`
				MarketCap     rawValue `json:"marketCap"`
				PayoutRatio   rawValue `json:"payoutRatio"`
			} `json:"summaryDetail"`
			FinancialData struct {
				CurrentPrice            rawValue `json:"currentPrice"`
				TargetMeanPrice         rawValue `json:"targetMeanPrice"`
				TargetHighPrice         rawValue `json:"targetHighPrice"`
				TargetLowPrice          rawValue `json:"targetLowPrice"`
				ProfitMargins           rawValue `json:"profitMargins"`
				ReturnOnEquity          rawValue `json:"returnOnEquity"`
				ReturnOnAssets          rawValue `json:"returnOnAssets"`
				RevenueGrowth           rawValue `json:"revenueGrowth"`
				NumberOfAnalystOpinions rawValue `json:"numberOfAnalystOpinions"`
				RecommendationKey       string   `json:"recommendationKey"`
			} `json:"financialData"`
			DefaultKeyStatistics struct {
				PriceToBook rawValue `json:"priceToBook"`
			} `json:"defaultKeyStatistics"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// parseQuoteSummary decodes a quoteSummary payload into a Quote.
func parseQuoteSummary(symbol string, body []byte) (*Quote, error) {
	var resp quoteSummaryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode quoteSummary: %w", err)
	}

	if e := resp.QuoteSummary.Error; e != nil {
		return nil, fmt.Errorf("provider error %s: %s", e.Code, e.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("empty quoteSummary result")
	}

	r := resp.QuoteSummary.Result[0]
	return NewQuote(symbol, QuoteFields{
		CurrentPrice:       r.FinancialData.CurrentPrice.Raw,
		RegularMarketPrice: r.Price.RegularMarketPrice.Raw,
		TargetMean:         r.FinancialData.TargetMeanPrice.Raw,
		TargetHigh:         r.FinancialData.TargetHighPrice.Raw,
		TargetLow:          r.FinancialData.TargetLowPrice.Raw,
		DividendYield:      r.SummaryDetail.DividendYield.Raw,
		TrailingPE:         r.SummaryDetail.TrailingPE.Raw,
		ForwardPE:          r.SummaryDetail.ForwardPE.Raw,
		PriceToBook:        r.DefaultKeyStatistics.PriceToBook.Raw,
		MarketCap:          r.SummaryDetail.MarketCap.Raw,
		PayoutRatio:        r.SummaryDetail.PayoutRatio.Raw,
		ProfitMargins:      r.FinancialData.ProfitMargins.Raw,
		ReturnOnEquity:     r.FinancialData.ReturnOnEquity.Raw,
		ReturnOnAssets:     r.FinancialData.ReturnOnAssets.Raw,
		RevenueGrowth:      r.FinancialData.RevenueGrowth.Raw,
		Beta:               r.SummaryDetail.Beta.Raw,
		NumAnalysts:        r.FinancialData.NumberOfAnalystOpinions.Raw,
		Recommendation:     r.FinancialData.RecommendationKey,
	}), nil
}
