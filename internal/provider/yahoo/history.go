package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"
)

// FetchHistory fetches daily OHLCV bars for the trailing number of
// days. Rows with missing values (halted sessions and the like) are
// skipped rather than failing the whole series.
func (c *Client) FetchHistory(ctx context.Context, symbol string, days int) ([]Bar, error) {
	fullURL := fmt.Sprintf(
		"%s/v8/finance/chart/%s?range=%s&interval=1d&events=div",
		c.chartBaseURL, url.PathEscape(symbol), rangeParam(days),
	)

	body, err := c.httpClient.GetBody(ctx, fullURL)
	if err != nil {
		return nil, &FetchError{Symbol: symbol, Op: "history", Err: err}
	}

	bars, err := parseChart(body)
	if err != nil {
		return nil, &FetchError{Symbol: symbol, Op: "history", Err: err}
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"bars":   len(bars),
	}).Debug("Fetched price history")
	return bars, nil
}

// rangeParam maps a day count onto the chart API's named ranges.
func rangeParam(days int) string {
	switch {
	case days <= 31:
		return "1mo"
	case days <= 93:
		return "3mo"
	case days <= 186:
		return "6mo"
	case days <= 366:
		return "1y"
	default:
		return "2y"
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// parseChart decodes a chart payload into bars, dropping incomplete rows.
func parseChart(body []byte) ([]Bar, error) {
	var resp chartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode chart: %w", err)
	}

	if e := resp.Chart.Error; e != nil {
		return nil, fmt.Errorf("provider error %s: %s", e.Code, e.Description)
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("empty chart result")
	}

	r := resp.Chart.Result[0]
	q := r.Indicators.Quote[0]

	bars := make([]Bar, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		if i >= len(q.Close) || q.Close[i] == nil || q.Open[i] == nil || q.High[i] == nil || q.Low[i] == nil {
			continue
		}
		var volume int64
		if i < len(q.Volume) && q.Volume[i] != nil {
			volume = *q.Volume[i]
		}
		bars = append(bars, Bar{
			Date:   time.Unix(ts, 0).UTC().Truncate(24 * time.Hour),
			Open:   *q.Open[i],
			High:   *q.High[i],
			Low:    *q.Low[i],
			Close:  *q.Close[i],
			Volume: volume,
		})
	}

	return bars, nil
}
