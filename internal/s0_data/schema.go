package s0_data

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaDDL creates everything the pipeline writes. Idempotent; safe to run
// on every startup.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS securities (
	stock_code   TEXT PRIMARY KEY,
	stock_name   TEXT NOT NULL,
	market       TEXT NOT NULL,
	industry     TEXT DEFAULT '',
	product      TEXT DEFAULT '',
	listed_date  TEXT DEFAULT '',
	is_active    BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS investor_flow (
	stock_code            TEXT NOT NULL,
	trade_date            TEXT NOT NULL,
	close_price           BIGINT NOT NULL DEFAULT 0,
	price_change          BIGINT NOT NULL DEFAULT 0,
	change_direction      TEXT NOT NULL DEFAULT '',
	change_rate           DOUBLE PRECISION NOT NULL DEFAULT 0,
	foreign_net           BIGINT NOT NULL DEFAULT 0,
	foreign_hold_ratio    DOUBLE PRECISION NOT NULL DEFAULT 0,
	institution_net       BIGINT NOT NULL DEFAULT 0,
	individual_net        BIGINT NOT NULL DEFAULT 0,
	volume                BIGINT NOT NULL DEFAULT 0,
	net_institutional_buy BIGINT NOT NULL DEFAULT 0,
	supply_demand_balance BIGINT NOT NULL DEFAULT 0,
	PRIMARY KEY (stock_code, trade_date)
);

CREATE INDEX IF NOT EXISTS idx_flow_stock_date ON investor_flow (stock_code, trade_date DESC);
CREATE INDEX IF NOT EXISTS idx_flow_foreign ON investor_flow (foreign_net);
CREATE INDEX IF NOT EXISTS idx_flow_institution ON investor_flow (institution_net);

CREATE TABLE IF NOT EXISTS trend_snapshots (
	stock_code           TEXT NOT NULL,
	analysis_date        TEXT NOT NULL,
	period_type          TEXT NOT NULL,
	window_days          INT NOT NULL DEFAULT 0,
	foreign_trend        TEXT NOT NULL,
	foreign_streak       INT NOT NULL DEFAULT 0,
	foreign_total        BIGINT NOT NULL DEFAULT 0,
	institution_trend    TEXT NOT NULL,
	institution_streak   INT NOT NULL DEFAULT 0,
	institution_total    BIGINT NOT NULL DEFAULT 0,
	individual_trend     TEXT NOT NULL,
	individual_streak    INT NOT NULL DEFAULT 0,
	individual_total     BIGINT NOT NULL DEFAULT 0,
	supply_score         INT NOT NULL DEFAULT 0,
	recommendation       TEXT NOT NULL,
	PRIMARY KEY (stock_code, analysis_date, period_type)
);
`

// EnsureSchema creates the tables and indexes if they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
