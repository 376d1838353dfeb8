package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkets_FixedOrder(t *testing.T) {
	all := Markets()
	require.Len(t, all, 4)

	ids := make([]string, 0, len(all))
	for _, m := range all {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{IBEX35, Nasdaq, SP500, SpainMidCap}, ids)
}

func TestMarkets_SymbolCounts(t *testing.T) {
	counts := map[string]int{
		IBEX35:      35,
		Nasdaq:      25,
		SP500:       25,
		SpainMidCap: 25,
	}
	for _, m := range Markets() {
		assert.Len(t, m.Symbols, counts[m.ID], "market %s", m.ID)
	}
	assert.Equal(t, 110, TotalSymbols())
}

func TestMarkets_SchemaNames(t *testing.T) {
	for _, m := range Markets() {
		assert.NotEmpty(t, m.Schema, "market %s", m.ID)
		assert.Contains(t, m.Schema, "market_", "market %s", m.ID)
	}
}

func TestByID(t *testing.T) {
	m, ok := ByID(IBEX35)
	require.True(t, ok)
	assert.Equal(t, "IBEX 35", m.Name)
	assert.Equal(t, "market_ibex35", m.Schema)

	_, ok = ByID("ftse100")
	assert.False(t, ok)
}

func TestSector(t *testing.T) {
	ibex, ok := ByID(IBEX35)
	require.True(t, ok)
	assert.Equal(t, "Banca", Sector(ibex, "SAN.MC"))
	assert.Equal(t, "Utilities", Sector(ibex, "IBE.MC"))
	assert.Equal(t, SectorOther, Sector(ibex, "ZZZ.MC"))

	nasdaq, ok := ByID(Nasdaq)
	require.True(t, ok)
	assert.Equal(t, "Technology", Sector(nasdaq, "AAPL"))
}

func TestSector_EveryTickerResolvable(t *testing.T) {
	// Every catalog ticker must have a non-empty sector label, even
	// if it is only the fallback.
	for _, m := range Markets() {
		for ticker := range m.Symbols {
			assert.NotEmpty(t, Sector(m, ticker), "market %s ticker %s", m.ID, ticker)
		}
	}
}
