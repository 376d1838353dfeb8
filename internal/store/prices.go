package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ivalero/marketlens/internal/contracts"
)

// UpsertPriceBars writes daily bars with one-row-per-(ticker, date)
// semantics; the latest write for a date wins. Malformed bars (zero
// date or non-positive close) are skipped without aborting the batch.
func (s *Store) UpsertPriceBars(ctx context.Context, ticker string, bars []contracts.PriceBar) error {
	if len(bars) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s.price_history (ticker, bar_date, open, high, low, close, volume)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (ticker, bar_date) DO UPDATE SET
			open = EXCLUDED.open,
			high = EXCLUDED.high,
			low = EXCLUDED.low,
			close = EXCLUDED.close,
			volume = EXCLUDED.volume`, s.schema)

	batch := &pgx.Batch{}
	queued := 0
	for _, bar := range bars {
		if bar.Date.IsZero() || bar.Close <= 0 {
			continue
		}
		batch.Queue(query, ticker, bar.Date, bar.Open, bar.High, bar.Low, bar.Close, bar.Volume)
		queued++
	}
	if queued == 0 {
		return nil
	}

	results := s.db.Pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < queued; i++ {
		if _, err := results.Exec(); err != nil {
			return &IOError{Op: "upsert price bars", Err: err}
		}
	}
	return nil
}

// PriceHistory returns bars for one ticker from since onward,
// ascending by date. A missing schema yields an empty result.
func (s *Store) PriceHistory(ctx context.Context, ticker string, since time.Time) ([]contracts.PriceBar, error) {
	exists, err := s.schemaExists(ctx)
	if err != nil {
		return nil, &IOError{Op: "price history", Err: err}
	}
	if !exists {
		return []contracts.PriceBar{}, nil
	}

	query := fmt.Sprintf(`
		SELECT ticker, bar_date, open, high, low, close, volume
		FROM %s.price_history
		WHERE ticker = $1 AND bar_date >= $2
		ORDER BY bar_date ASC`, s.schema)

	rows, err := s.db.Pool.Query(ctx, query, ticker, since)
	if err != nil {
		return nil, &IOError{Op: "price history", Err: err}
	}
	defer rows.Close()

	var bars []contracts.PriceBar
	for rows.Next() {
		var bar contracts.PriceBar
		if err := rows.Scan(&bar.Ticker, &bar.Date, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume); err != nil {
			return nil, &IOError{Op: "price history", Err: err}
		}
		bars = append(bars, bar)
	}
	if err := rows.Err(); err != nil {
		return nil, &IOError{Op: "price history", Err: err}
	}
	return bars, nil
}
