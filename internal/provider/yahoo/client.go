package yahoo

import (
	"github.com/ivalero/marketlens/pkg/config"
	"github.com/ivalero/marketlens/pkg/httputil"
	"github.com/ivalero/marketlens/pkg/logger"
)

// Client handles communication with the Yahoo Finance endpoints.
// All provider traffic goes through this client, which throttles
// requests so bulk refresh cycles stay below the unofficial API's
// tolerance.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger

	quoteBaseURL string
	chartBaseURL string
	webBaseURL   string
}

// NewClient creates a new Yahoo Finance client.
func NewClient(cfg *config.Config, log *logger.Logger) *Client {
	httpClient := httputil.New(log, cfg.Provider.Timeout).
		WithRateLimit(cfg.Provider.RateLimit, cfg.Provider.RateBurst).
		WithHeaders(map[string]string{
			"User-Agent": "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
			"Accept":     "application/json, text/html;q=0.9",
		})

	return &Client{
		httpClient:   httpClient,
		logger:       log,
		quoteBaseURL: cfg.Provider.QuoteBaseURL,
		chartBaseURL: cfg.Provider.ChartBaseURL,
		webBaseURL:   cfg.Provider.WebBaseURL,
	}
}
