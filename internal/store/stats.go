package store

import (
	"context"
	"fmt"
	"time"
)

// Stats summarizes one market's store contents. SchemaExists false
// means the market was never initialized; every count is zero then.
type Stats struct {
	Market             string     `json:"market"`
	SchemaExists       bool       `json:"schema_exists"`
	Companies          int64      `json:"companies"`
	FundamentalsRows   int64      `json:"fundamentals_rows"`
	PriceBars          int64      `json:"price_bars"`
	Alerts             int64      `json:"alerts"`
	LatestFundamentals *time.Time `json:"latest_fundamentals,omitempty"`
}

// Stats reports row counts and the newest snapshot timestamp. A
// missing schema is reported as a state, never as an error.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{Market: s.market.ID}

	exists, err := s.schemaExists(ctx)
	if err != nil {
		return stats, &IOError{Op: "stats", Err: err}
	}
	if !exists {
		return stats, nil
	}
	stats.SchemaExists = true

	query := fmt.Sprintf(`
		SELECT
			(SELECT COUNT(*) FROM %s.companies),
			(SELECT COUNT(*) FROM %s.fundamentals),
			(SELECT COUNT(*) FROM %s.price_history),
			(SELECT COUNT(*) FROM %s.validation_alerts),
			(SELECT MAX(created_at) FROM %s.fundamentals)`,
		s.schema, s.schema, s.schema, s.schema, s.schema)

	err = s.db.Pool.QueryRow(ctx, query).Scan(
		&stats.Companies, &stats.FundamentalsRows, &stats.PriceBars,
		&stats.Alerts, &stats.LatestFundamentals,
	)
	if err != nil {
		return stats, &IOError{Op: "stats", Err: err}
	}
	return stats, nil
}
