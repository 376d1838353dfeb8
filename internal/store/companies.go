package store

import (
	"context"
	"fmt"
)

// UpsertCompany writes one catalog entry with replace-by-ticker
// semantics. The update timestamp always moves forward.
func (s *Store) UpsertCompany(ctx context.Context, ticker, name, sector string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s.companies (ticker, name, sector, market, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (ticker) DO UPDATE SET
			name = EXCLUDED.name,
			sector = EXCLUDED.sector,
			market = EXCLUDED.market,
			updated_at = NOW()`, s.schema)

	if _, err := s.db.Pool.Exec(ctx, query, ticker, name, sector, s.market.ID); err != nil {
		return &IOError{Op: "upsert company", Err: err}
	}
	return nil
}
