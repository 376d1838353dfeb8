package yahoo

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestParseProfileDoc(t *testing.T) {
	doc := docFromHTML(t, `<html><body>
		<h1>Apple Inc. (AAPL)</h1>
		<dl>
			<dt>Sector</dt><dd>Technology</dd>
			<dt>Industry</dt><dd>Consumer Electronics</dd>
		</dl>
	</body></html>`)

	profile := parseProfileDoc("AAPL", doc)
	assert.Equal(t, "AAPL", profile.Symbol)
	assert.Equal(t, "Apple Inc.", profile.Name)
	assert.Equal(t, "Technology", profile.Sector)
}

func TestParseProfileDoc_LegacyLayout(t *testing.T) {
	doc := docFromHTML(t, `<html><body>
		<h1>Iberdrola, S.A. (IBE.MC)</h1>
		<p><span>Sector(s)</span>: <span>Utilities</span></p>
	</body></html>`)

	profile := parseProfileDoc("IBE.MC", doc)
	assert.Equal(t, "Iberdrola, S.A.", profile.Name)
	assert.Equal(t, "Utilities", profile.Sector)
}

func TestParseProfileDoc_NameWithoutTicker(t *testing.T) {
	doc := docFromHTML(t, `<html><body><h1>Plain Name Co</h1></body></html>`)

	profile := parseProfileDoc("PLN", doc)
	assert.Equal(t, "Plain Name Co", profile.Name)
	assert.Empty(t, profile.Sector)
}

func TestParseProfileDoc_Empty(t *testing.T) {
	doc := docFromHTML(t, `<html><body><div>nothing here</div></body></html>`)

	profile := parseProfileDoc("XYZ", doc)
	assert.Empty(t, profile.Name)
	assert.Empty(t, profile.Sector)
}
