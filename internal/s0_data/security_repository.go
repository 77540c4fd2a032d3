package s0_data

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/sugup/internal/contracts"
	"github.com/wonny/sugup/pkg/logger"
)

// SecurityRepository implements contracts.SecurityRepository
// ⭐ SSOT: 종목 마스터 저장소는 여기서만
type SecurityRepository struct {
	pool   *pgxpool.Pool
	logger *logger.Logger
}

// NewSecurityRepository creates a new security repository
func NewSecurityRepository(pool *pgxpool.Pool, log *logger.Logger) *SecurityRepository {
	return &SecurityRepository{pool: pool, logger: log}
}

// Upsert inserts or replaces one security keyed by code.
func (r *SecurityRepository) Upsert(ctx context.Context, sec *contracts.Security) error {
	query := `
		INSERT INTO securities (stock_code, stock_name, market, industry, product, listed_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (stock_code) DO UPDATE SET
			stock_name = EXCLUDED.stock_name,
			market = EXCLUDED.market,
			industry = EXCLUDED.industry,
			product = EXCLUDED.product,
			listed_date = EXCLUDED.listed_date,
			is_active = EXCLUDED.is_active
	`

	_, err := r.pool.Exec(ctx, query,
		sec.Code, sec.Name, sec.Market, sec.Industry, sec.Product, sec.ListedDate, sec.Active,
	)
	if err != nil {
		return fmt.Errorf("upsert security %s: %w", sec.Code, err)
	}
	return nil
}

// UpsertBatch upserts securities one by one. A failing row is logged and
// skipped; the rest of the batch continues.
func (r *SecurityRepository) UpsertBatch(ctx context.Context, secs []*contracts.Security) (int, error) {
	saved := 0
	for _, sec := range secs {
		if err := r.Upsert(ctx, sec); err != nil {
			r.logger.WithError(err).WithField("stock_code", sec.Code).Error("Failed to upsert security")
			continue
		}
		saved++
	}
	return saved, nil
}

// ListTracked returns all active securities ordered by code.
func (r *SecurityRepository) ListTracked(ctx context.Context) ([]*contracts.Security, error) {
	query := `
		SELECT stock_code, stock_name, market, industry, product, listed_date, is_active
		FROM securities
		WHERE is_active
		ORDER BY stock_code
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tracked securities: %w", err)
	}
	defer rows.Close()

	var secs []*contracts.Security
	for rows.Next() {
		var s contracts.Security
		if err := rows.Scan(&s.Code, &s.Name, &s.Market, &s.Industry, &s.Product, &s.ListedDate, &s.Active); err != nil {
			return nil, fmt.Errorf("scan security: %w", err)
		}
		secs = append(secs, &s)
	}
	return secs, rows.Err()
}

// Deactivate marks a security inactive. Rows are never deleted.
func (r *SecurityRepository) Deactivate(ctx context.Context, code string) error {
	_, err := r.pool.Exec(ctx, `UPDATE securities SET is_active = FALSE WHERE stock_code = $1`, code)
	if err != nil {
		return fmt.Errorf("deactivate security %s: %w", code, err)
	}
	return nil
}
