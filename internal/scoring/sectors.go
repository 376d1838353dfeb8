package scoring

import "github.com/ivalero/marketlens/internal/contracts"

// SectorAdjustment is the per-sector tweak applied after the base
// score. Exactly one of the fields is set per sector.
type SectorAdjustment struct {
	// PETolerance adds points when the trailing P/E is under 30,
	// compensating sectors that structurally trade at higher multiples.
	PETolerance int

	// DividendBonus adds points when the dividend yield exceeds 3%,
	// rewarding sectors where payout is the main return driver.
	DividendBonus int

	// VolatilityTolerance adds points back when annualized volatility
	// exceeds 35%, softening the risk penalty for cyclical sectors.
	VolatilityTolerance int
}

// DefaultSectorAdjustments covers the sector labels used by the
// built-in market catalogs. Spanish and US labels coexist here since
// records from every market flow through the same scorer.
var DefaultSectorAdjustments = map[string]SectorAdjustment{
	"Technology": {PETolerance: 5},
	"Healthcare": {PETolerance: 3},
	"Media":      {PETolerance: 3},

	"Utilities": {DividendBonus: 2},
	"Banca":     {DividendBonus: 2},
	"Financial": {DividendBonus: 2},
	"Seguros":   {DividendBonus: 2},

	"Energy":       {VolatilityTolerance: 3},
	"Industrial":   {VolatilityTolerance: 2},
	"Construcción": {VolatilityTolerance: 2},
	"Automotive":   {VolatilityTolerance: 2},
}

func sectorBonus(rec contracts.Record, sector string, adjustments map[string]SectorAdjustment) int {
	adj, ok := adjustments[sector]
	if !ok {
		return 0
	}

	bonus := 0
	if adj.PETolerance > 0 && rec.TrailingPE < 30 {
		bonus += adj.PETolerance
	}
	if adj.DividendBonus > 0 && rec.DividendYieldPct > 3 {
		bonus += adj.DividendBonus
	}
	if adj.VolatilityTolerance > 0 && rec.VolatilityPct > 35 {
		bonus += adj.VolatilityTolerance
	}
	return bonus
}
