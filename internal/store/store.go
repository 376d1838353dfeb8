// Package store is the per-market persistence layer. Each market owns
// one Postgres schema holding four tables: companies (catalog,
// upsert), fundamentals (snapshots, append-only), price_history
// (daily bars, upsert by ticker+date) and validation_alerts
// (append-only). Scoping each market to its own schema keeps refresh
// cycles for different markets fully independent.
package store

import (
	"context"
	"fmt"

	"github.com/ivalero/marketlens/internal/catalog"
	"github.com/ivalero/marketlens/pkg/database"
	"github.com/ivalero/marketlens/pkg/logger"
)

// Store exposes the persistence operations for one market. All
// statements are qualified with the market's schema; a Store never
// touches another market's tables.
type Store struct {
	db     *database.DB
	market catalog.Market
	schema string
	logger *logger.Logger
}

// New binds a store to one market. It performs no I/O; call
// EnsureSchema before the first write.
func New(db *database.DB, market catalog.Market, log *logger.Logger) *Store {
	return &Store{
		db:     db,
		market: market,
		schema: market.Schema,
		logger: log.WithField("market", market.ID),
	}
}

// Market returns the market this store is bound to.
func (s *Store) Market() catalog.Market { return s.market }

// EnsureSchema idempotently creates the market schema and its four
// tables. Safe to call on every startup; existing data is untouched.
func (s *Store) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, s.schema),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s.companies (
				ticker     TEXT PRIMARY KEY,
				name       TEXT NOT NULL,
				sector     TEXT NOT NULL DEFAULT 'Other',
				market     TEXT NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, s.schema),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s.fundamentals (
				id                 BIGSERIAL PRIMARY KEY,
				ticker             TEXT NOT NULL,
				price              DOUBLE PRECISION NOT NULL DEFAULT 0,
				target_mean        DOUBLE PRECISION NOT NULL DEFAULT 0,
				target_high        DOUBLE PRECISION NOT NULL DEFAULT 0,
				target_low         DOUBLE PRECISION NOT NULL DEFAULT 0,
				upside_pct         DOUBLE PRECISION NOT NULL DEFAULT 0,
				dividend_yield_pct DOUBLE PRECISION NOT NULL DEFAULT 0,
				total_return_pct   DOUBLE PRECISION NOT NULL DEFAULT 0,
				trailing_pe        DOUBLE PRECISION NOT NULL DEFAULT 0,
				forward_pe         DOUBLE PRECISION NOT NULL DEFAULT 0,
				price_book         DOUBLE PRECISION NOT NULL DEFAULT 0,
				market_cap_b       DOUBLE PRECISION NOT NULL DEFAULT 0,
				roe_pct            DOUBLE PRECISION NOT NULL DEFAULT 0,
				roa_pct            DOUBLE PRECISION NOT NULL DEFAULT 0,
				revenue_growth_pct DOUBLE PRECISION NOT NULL DEFAULT 0,
				profit_margin_pct  DOUBLE PRECISION NOT NULL DEFAULT 0,
				payout_ratio       DOUBLE PRECISION,
				beta               DOUBLE PRECISION NOT NULL DEFAULT 1,
				volatility_pct     DOUBLE PRECISION NOT NULL DEFAULT 0,
				num_analysts       INTEGER NOT NULL DEFAULT 0,
				recommendation     TEXT NOT NULL DEFAULT 'N/A',
				score              INTEGER NOT NULL DEFAULT 0,
				created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, s.schema),
		fmt.Sprintf(`
			CREATE INDEX IF NOT EXISTS fundamentals_ticker_id_idx
				ON %s.fundamentals (ticker, id DESC)`, s.schema),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s.price_history (
				ticker   TEXT NOT NULL,
				bar_date DATE NOT NULL,
				open     DOUBLE PRECISION NOT NULL DEFAULT 0,
				high     DOUBLE PRECISION NOT NULL DEFAULT 0,
				low      DOUBLE PRECISION NOT NULL DEFAULT 0,
				close    DOUBLE PRECISION NOT NULL DEFAULT 0,
				volume   BIGINT NOT NULL DEFAULT 0,
				PRIMARY KEY (ticker, bar_date)
			)`, s.schema),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s.validation_alerts (
				id         BIGSERIAL PRIMARY KEY,
				ticker     TEXT NOT NULL,
				message    TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, s.schema),
	}

	for _, stmt := range stmts {
		if _, err := s.db.Pool.Exec(ctx, stmt); err != nil {
			return &SchemaError{Market: s.market.ID, Err: err}
		}
	}

	s.logger.Debug("Schema ensured")
	return nil
}

// MigrateIfNeeded detects the legacy companies layout, which predates
// the market column, and rebuilds the table without losing rows:
// create new, copy with the market ID as default, drop old, rename.
func (s *Store) MigrateIfNeeded(ctx context.Context) error {
	exists, err := s.schemaExists(ctx)
	if err != nil {
		return &SchemaError{Market: s.market.ID, Err: err}
	}
	if !exists {
		return nil
	}

	var hasMarket bool
	err = s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.columns
			WHERE table_schema = $1 AND table_name = 'companies' AND column_name = 'market'
		)`, s.schema).Scan(&hasMarket)
	if err != nil {
		return &SchemaError{Market: s.market.ID, Err: err}
	}
	if hasMarket {
		return nil
	}

	s.logger.Warn("Legacy companies table detected, migrating")

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return &SchemaError{Market: s.market.ID, Err: err}
	}
	defer tx.Rollback(ctx)

	stmts := []string{
		fmt.Sprintf(`
			CREATE TABLE %s.companies_new (
				ticker     TEXT PRIMARY KEY,
				name       TEXT NOT NULL,
				sector     TEXT NOT NULL DEFAULT 'Other',
				market     TEXT NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, s.schema),
		fmt.Sprintf(`
			INSERT INTO %s.companies_new (ticker, name, sector, market, updated_at)
			SELECT ticker, name, sector, '%s', updated_at FROM %s.companies`,
			s.schema, s.market.ID, s.schema),
		fmt.Sprintf(`DROP TABLE %s.companies`, s.schema),
		fmt.Sprintf(`ALTER TABLE %s.companies_new RENAME TO companies`, s.schema),
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return &SchemaError{Market: s.market.ID, Err: err}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return &SchemaError{Market: s.market.ID, Err: err}
	}

	s.logger.Info("Companies table migrated")
	return nil
}

func (s *Store) schemaExists(ctx context.Context) (bool, error) {
	var exists bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.schemata WHERE schema_name = $1
		)`, s.schema).Scan(&exists)
	return exists, err
}
