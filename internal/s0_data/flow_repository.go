package s0_data

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/sugup/internal/contracts"
	"github.com/wonny/sugup/pkg/logger"
)

// FlowRepository implements contracts.FlowRepository
// ⭐ SSOT: 수급 데이터 저장소는 여기서만
type FlowRepository struct {
	pool   *pgxpool.Pool
	logger *logger.Logger
}

// NewFlowRepository creates a new investor flow repository
func NewFlowRepository(pool *pgxpool.Pool, log *logger.Logger) *FlowRepository {
	return &FlowRepository{pool: pool, logger: log}
}

// Upsert replaces the row for (code, date). Last write wins; no history of
// corrections is kept.
func (r *FlowRepository) Upsert(ctx context.Context, record *contracts.FlowRecord) error {
	query := `
		INSERT INTO investor_flow (
			stock_code, trade_date, close_price, price_change, change_direction, change_rate,
			foreign_net, foreign_hold_ratio, institution_net, individual_net, volume,
			net_institutional_buy, supply_demand_balance
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (stock_code, trade_date) DO UPDATE SET
			close_price = EXCLUDED.close_price,
			price_change = EXCLUDED.price_change,
			change_direction = EXCLUDED.change_direction,
			change_rate = EXCLUDED.change_rate,
			foreign_net = EXCLUDED.foreign_net,
			foreign_hold_ratio = EXCLUDED.foreign_hold_ratio,
			institution_net = EXCLUDED.institution_net,
			individual_net = EXCLUDED.individual_net,
			volume = EXCLUDED.volume,
			net_institutional_buy = EXCLUDED.net_institutional_buy,
			supply_demand_balance = EXCLUDED.supply_demand_balance
	`

	_, err := r.pool.Exec(ctx, query,
		record.Code, record.Date, record.ClosePrice, record.PriceChange,
		record.ChangeDirection, record.ChangeRate,
		record.ForeignNet, record.ForeignHoldRatio, record.InstitutionNet,
		record.IndividualNet, record.Volume,
		record.NetInstitutional, record.SupplyBalance,
	)
	if err != nil {
		return fmt.Errorf("upsert flow %s/%s: %w", record.Code, record.Date, err)
	}
	return nil
}

// UpsertBatch upserts record by record. A failing record is logged and
// skipped; each upsert is independently durable, so an interrupted batch
// leaves a valid partial data set.
func (r *FlowRepository) UpsertBatch(ctx context.Context, records []*contracts.FlowRecord) (int, error) {
	saved := 0
	for _, record := range records {
		if err := r.Upsert(ctx, record); err != nil {
			r.logger.WithError(err).WithFields(map[string]interface{}{
				"stock_code": record.Code,
				"trade_date": record.Date,
			}).Error("Failed to upsert flow record")
			continue
		}
		saved++
	}
	return saved, nil
}

// GetRecent returns up to limit records for code, most-recent-first.
// ISO dates sort lexicographically, so TEXT ordering is date ordering.
func (r *FlowRepository) GetRecent(ctx context.Context, code string, limit int) ([]*contracts.FlowRecord, error) {
	query := `
		SELECT stock_code, trade_date, close_price, price_change, change_direction, change_rate,
		       foreign_net, foreign_hold_ratio, institution_net, individual_net, volume,
		       net_institutional_buy, supply_demand_balance
		FROM investor_flow
		WHERE stock_code = $1
		ORDER BY trade_date DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, code, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent flows %s: %w", code, err)
	}
	defer rows.Close()

	var records []*contracts.FlowRecord
	for rows.Next() {
		var f contracts.FlowRecord
		if err := rows.Scan(
			&f.Code, &f.Date, &f.ClosePrice, &f.PriceChange, &f.ChangeDirection, &f.ChangeRate,
			&f.ForeignNet, &f.ForeignHoldRatio, &f.InstitutionNet, &f.IndividualNet, &f.Volume,
			&f.NetInstitutional, &f.SupplyBalance,
		); err != nil {
			return nil, fmt.Errorf("scan flow record: %w", err)
		}
		records = append(records, &f)
	}
	return records, rows.Err()
}

// SumNetBuys aggregates per-security foreign and institution net-buy sums
// over the last lookbackDays, keeping only securities where both sums are
// strictly positive (동반 매수). The caller orders the result; SQL ordering
// is not relied on for tie-breaks.
func (r *FlowRepository) SumNetBuys(ctx context.Context, lookbackDays int) ([]contracts.FlowAggregate, error) {
	query := `
		SELECT f.stock_code,
		       COALESCE(s.stock_name, ''),
		       SUM(f.foreign_net)     AS foreign_total,
		       SUM(f.institution_net) AS institution_total
		FROM investor_flow f
		LEFT JOIN securities s ON s.stock_code = f.stock_code
		WHERE f.trade_date >= to_char(CURRENT_DATE - $1::int, 'YYYY-MM-DD')
		GROUP BY f.stock_code, s.stock_name
		HAVING SUM(f.foreign_net) > 0 AND SUM(f.institution_net) > 0
		ORDER BY f.stock_code
	`

	rows, err := r.pool.Query(ctx, query, lookbackDays)
	if err != nil {
		return nil, fmt.Errorf("sum net buys: %w", err)
	}
	defer rows.Close()

	var aggs []contracts.FlowAggregate
	for rows.Next() {
		var a contracts.FlowAggregate
		if err := rows.Scan(&a.Code, &a.Name, &a.ForeignTotal, &a.InstitutionTotal); err != nil {
			return nil, fmt.Errorf("scan flow aggregate: %w", err)
		}
		aggs = append(aggs, a)
	}
	return aggs, rows.Err()
}
