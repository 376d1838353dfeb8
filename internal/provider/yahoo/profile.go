package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FetchProfile scrapes the quote profile page for company name and
// sector. Used as a fallback when a ticker is missing from the static
// sector tables; the JSON endpoints do not expose the sector label.
func (c *Client) FetchProfile(ctx context.Context, symbol string) (*Profile, error) {
	fullURL := fmt.Sprintf("%s/quote/%s/profile", c.webBaseURL, url.PathEscape(symbol))

	resp, err := c.httpClient.Get(ctx, fullURL)
	if err != nil {
		return nil, &FetchError{Symbol: symbol, Op: "profile", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, &FetchError{Symbol: symbol, Op: "profile",
			Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &FetchError{Symbol: symbol, Op: "profile",
			Err: fmt.Errorf("parse profile HTML: %w", err)}
	}

	profile := parseProfileDoc(symbol, doc)
	if profile.Name == "" && profile.Sector == "" {
		return nil, &FetchError{Symbol: symbol, Op: "profile",
			Err: fmt.Errorf("profile page had no recognizable fields")}
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"sector": profile.Sector,
	}).Debug("Fetched profile")
	return profile, nil
}

// parseProfileDoc extracts name and sector from the profile document.
// The page layout shifts between redesigns, so every selector has a
// fallback.
func parseProfileDoc(symbol string, doc *goquery.Document) *Profile {
	profile := &Profile{Symbol: symbol}

	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		name := strings.TrimSpace(h1.Text())
		// "Apple Inc. (AAPL)" -> "Apple Inc."
		if idx := strings.LastIndex(name, "("); idx > 0 {
			name = strings.TrimSpace(name[:idx])
		}
		profile.Name = name
	}

	// Current layout: dt/dd pairs under the company overview block.
	doc.Find("dt").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(strings.ToLower(s.Text()), "sector") {
			if dd := s.Next(); dd.Length() > 0 {
				profile.Sector = strings.TrimSpace(dd.Text())
			}
			return false
		}
		return true
	})

	// Legacy layout: "Sector(s):" label followed by a span value.
	if profile.Sector == "" {
		doc.Find("span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if strings.HasPrefix(strings.TrimSpace(s.Text()), "Sector") {
				if next := s.Parent().Find("span").Eq(1); next.Length() > 0 {
					profile.Sector = strings.TrimSpace(next.Text())
				}
				return false
			}
			return true
		})
	}

	return profile
}
