package store

import (
	"context"
	"fmt"

	"github.com/ivalero/marketlens/internal/contracts"
)

// AppendAlert records one validation or fetch alert. Insert-only.
func (s *Store) AppendAlert(ctx context.Context, ticker, message string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s.validation_alerts (ticker, message) VALUES ($1, $2)`, s.schema)

	if _, err := s.db.Pool.Exec(ctx, query, ticker, message); err != nil {
		return &IOError{Op: "append alert", Err: err}
	}
	return nil
}

// RecentAlerts returns the newest alerts first, capped at limit.
// A missing schema yields an empty result.
func (s *Store) RecentAlerts(ctx context.Context, limit int) ([]contracts.Alert, error) {
	exists, err := s.schemaExists(ctx)
	if err != nil {
		return nil, &IOError{Op: "recent alerts", Err: err}
	}
	if !exists {
		return []contracts.Alert{}, nil
	}

	query := fmt.Sprintf(`
		SELECT ticker, message, created_at
		FROM %s.validation_alerts
		ORDER BY id DESC
		LIMIT $1`, s.schema)

	rows, err := s.db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, &IOError{Op: "recent alerts", Err: err}
	}
	defer rows.Close()

	var alerts []contracts.Alert
	for rows.Next() {
		var a contracts.Alert
		if err := rows.Scan(&a.Ticker, &a.Message, &a.CreatedAt); err != nil {
			return nil, &IOError{Op: "recent alerts", Err: err}
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, &IOError{Op: "recent alerts", Err: err}
	}
	return alerts, nil
}
