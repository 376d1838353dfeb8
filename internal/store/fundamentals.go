package store

import (
	"context"
	"fmt"

	"github.com/ivalero/marketlens/internal/contracts"
)

// AppendFundamentals inserts one snapshot row. Rows are never
// updated; the surrogate key orders snapshots causally and the latest
// row per ticker is the view's source of truth.
func (s *Store) AppendFundamentals(ctx context.Context, ticker string, rec contracts.Record) error {
	query := fmt.Sprintf(`
		INSERT INTO %s.fundamentals (
			ticker, price, target_mean, target_high, target_low,
			upside_pct, dividend_yield_pct, total_return_pct,
			trailing_pe, forward_pe, price_book, market_cap_b,
			roe_pct, roa_pct, revenue_growth_pct, profit_margin_pct, payout_ratio,
			beta, volatility_pct, num_analysts, recommendation, score
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22
		)`, s.schema)

	_, err := s.db.Pool.Exec(ctx, query,
		ticker, rec.Price, rec.TargetMean, rec.TargetHigh, rec.TargetLow,
		rec.UpsidePct, rec.DividendYieldPct, rec.TotalReturnPct,
		rec.TrailingPE, rec.ForwardPE, rec.PriceBook, rec.MarketCapB,
		rec.ROEPct, rec.ROAPct, rec.RevenueGrowthPct, rec.ProfitMarginPct, rec.PayoutRatio,
		rec.Beta, rec.VolatilityPct, rec.NumAnalysts, rec.Recommendation, rec.Score,
	)
	if err != nil {
		return &IOError{Op: "append fundamentals", Err: err}
	}
	return nil
}

// LatestFundamentals returns one row per catalog ticker joined to its
// most recent snapshot, ordered by score descending. Tickers without
// any snapshot yet appear with a nil Record. A missing schema yields
// an empty result.
func (s *Store) LatestFundamentals(ctx context.Context) ([]contracts.StockRow, error) {
	exists, err := s.schemaExists(ctx)
	if err != nil {
		return nil, &IOError{Op: "latest fundamentals", Err: err}
	}
	if !exists {
		return []contracts.StockRow{}, nil
	}

	query := fmt.Sprintf(`
		SELECT
			c.ticker, c.name, c.sector, c.market, c.updated_at,
			f.price, f.target_mean, f.target_high, f.target_low,
			f.upside_pct, f.dividend_yield_pct, f.total_return_pct,
			f.trailing_pe, f.forward_pe, f.price_book, f.market_cap_b,
			f.roe_pct, f.roa_pct, f.revenue_growth_pct, f.profit_margin_pct, f.payout_ratio,
			f.beta, f.volatility_pct, f.num_analysts, f.recommendation, f.score
		FROM %s.companies c
		LEFT JOIN LATERAL (
			SELECT * FROM %s.fundamentals
			WHERE ticker = c.ticker
			ORDER BY id DESC
			LIMIT 1
		) f ON TRUE
		ORDER BY f.score DESC NULLS LAST, c.ticker ASC`, s.schema, s.schema)

	rows, err := s.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, &IOError{Op: "latest fundamentals", Err: err}
	}
	defer rows.Close()

	var result []contracts.StockRow
	for rows.Next() {
		var row contracts.StockRow
		var rec contracts.Record
		var price, targetMean, targetHigh, targetLow *float64
		var upside, dividend, totalReturn *float64
		var trailingPE, forwardPE, priceBook, marketCap *float64
		var roe, roa, growth, margin, payout, beta, volatility *float64
		var numAnalysts, score *int
		var recommendation *string

		err := rows.Scan(
			&row.Ticker, &row.Company, &row.Sector, &row.Market, &row.UpdatedAt,
			&price, &targetMean, &targetHigh, &targetLow,
			&upside, &dividend, &totalReturn,
			&trailingPE, &forwardPE, &priceBook, &marketCap,
			&roe, &roa, &growth, &margin, &payout,
			&beta, &volatility, &numAnalysts, &recommendation, &score,
		)
		if err != nil {
			return nil, &IOError{Op: "latest fundamentals", Err: err}
		}

		if price != nil {
			rec.Price = *price
			rec.TargetMean = deref(targetMean)
			rec.TargetHigh = deref(targetHigh)
			rec.TargetLow = deref(targetLow)
			rec.UpsidePct = deref(upside)
			rec.DividendYieldPct = deref(dividend)
			rec.TotalReturnPct = deref(totalReturn)
			rec.TrailingPE = deref(trailingPE)
			rec.ForwardPE = deref(forwardPE)
			rec.PriceBook = deref(priceBook)
			rec.MarketCapB = deref(marketCap)
			rec.ROEPct = deref(roe)
			rec.ROAPct = deref(roa)
			rec.RevenueGrowthPct = deref(growth)
			rec.ProfitMarginPct = deref(margin)
			rec.PayoutRatio = payout
			rec.Beta = deref(beta)
			rec.VolatilityPct = deref(volatility)
			if numAnalysts != nil {
				rec.NumAnalysts = *numAnalysts
			}
			if recommendation != nil {
				rec.Recommendation = *recommendation
			}
			if score != nil {
				rec.Score = *score
			}
			row.Record = &rec
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &IOError{Op: "latest fundamentals", Err: err}
	}
	return result, nil
}

// PurgeStaleFundamentals deletes every snapshot that is not the most
// recent for its ticker and returns the number of deleted rows.
func (s *Store) PurgeStaleFundamentals(ctx context.Context) (int64, error) {
	exists, err := s.schemaExists(ctx)
	if err != nil {
		return 0, &IOError{Op: "purge stale fundamentals", Err: err}
	}
	if !exists {
		return 0, ErrNoSchema
	}

	query := fmt.Sprintf(`
		DELETE FROM %s.fundamentals f
		WHERE f.id NOT IN (
			SELECT MAX(id) FROM %s.fundamentals GROUP BY ticker
		)`, s.schema, s.schema)

	tag, err := s.db.Pool.Exec(ctx, query)
	if err != nil {
		return 0, &IOError{Op: "purge stale fundamentals", Err: err}
	}

	deleted := tag.RowsAffected()
	if deleted > 0 {
		s.logger.WithField("deleted", deleted).Info("Purged stale fundamentals")
	}
	return deleted, nil
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
