package s0_data

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/sugup/internal/contracts"
)

// SnapshotRepository implements contracts.SnapshotRepository
// ⭐ SSOT: 트렌드 분석 결과 저장소는 여기서만
type SnapshotRepository struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository creates a new trend snapshot repository
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}

// Upsert replaces the snapshot for (code, analysis date, period type).
// A prior snapshot for the same key is overwritten, never merged.
func (r *SnapshotRepository) Upsert(ctx context.Context, snap *contracts.TrendSnapshot) error {
	query := `
		INSERT INTO trend_snapshots (
			stock_code, analysis_date, period_type, window_days,
			foreign_trend, foreign_streak, foreign_total,
			institution_trend, institution_streak, institution_total,
			individual_trend, individual_streak, individual_total,
			supply_score, recommendation
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (stock_code, analysis_date, period_type) DO UPDATE SET
			window_days = EXCLUDED.window_days,
			foreign_trend = EXCLUDED.foreign_trend,
			foreign_streak = EXCLUDED.foreign_streak,
			foreign_total = EXCLUDED.foreign_total,
			institution_trend = EXCLUDED.institution_trend,
			institution_streak = EXCLUDED.institution_streak,
			institution_total = EXCLUDED.institution_total,
			individual_trend = EXCLUDED.individual_trend,
			individual_streak = EXCLUDED.individual_streak,
			individual_total = EXCLUDED.individual_total,
			supply_score = EXCLUDED.supply_score,
			recommendation = EXCLUDED.recommendation
	`

	_, err := r.pool.Exec(ctx, query,
		snap.Code, snap.AnalysisDate, snap.PeriodType, snap.WindowDays,
		snap.Foreign.Label, snap.Foreign.Streak, snap.Foreign.Total,
		snap.Institution.Label, snap.Institution.Streak, snap.Institution.Total,
		snap.Individual.Label, snap.Individual.Streak, snap.Individual.Total,
		snap.Score, snap.Recommendation,
	)
	if err != nil {
		return fmt.Errorf("upsert snapshot %s/%s: %w", snap.Code, snap.AnalysisDate, err)
	}
	return nil
}

const snapshotColumns = `
	t.stock_code, COALESCE(s.stock_name, ''), t.analysis_date, t.period_type, t.window_days,
	t.foreign_trend, t.foreign_streak, t.foreign_total,
	t.institution_trend, t.institution_streak, t.institution_total,
	t.individual_trend, t.individual_streak, t.individual_total,
	t.supply_score, t.recommendation
`

// GetLatest returns the most recent snapshot for a code, or nil when the
// security has never been analyzed.
func (r *SnapshotRepository) GetLatest(ctx context.Context, code string) (*contracts.TrendSnapshot, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM trend_snapshots t
		LEFT JOIN securities s ON s.stock_code = t.stock_code
		WHERE t.stock_code = $1
		ORDER BY t.analysis_date DESC
		LIMIT 1
	`

	snap, err := scanSnapshot(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest snapshot %s: %w", code, err)
	}
	return snap, nil
}

// ListByDate returns all snapshots for one analysis date, highest score first.
func (r *SnapshotRepository) ListByDate(ctx context.Context, analysisDate string) ([]*contracts.TrendSnapshot, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM trend_snapshots t
		LEFT JOIN securities s ON s.stock_code = t.stock_code
		WHERE t.analysis_date = $1
		ORDER BY t.supply_score DESC, t.stock_code
	`

	rows, err := r.pool.Query(ctx, query, analysisDate)
	if err != nil {
		return nil, fmt.Errorf("list snapshots %s: %w", analysisDate, err)
	}
	defer rows.Close()

	var snaps []*contracts.TrendSnapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (*contracts.TrendSnapshot, error) {
	var s contracts.TrendSnapshot
	err := row.Scan(
		&s.Code, &s.Name, &s.AnalysisDate, &s.PeriodType, &s.WindowDays,
		&s.Foreign.Label, &s.Foreign.Streak, &s.Foreign.Total,
		&s.Institution.Label, &s.Institution.Streak, &s.Institution.Total,
		&s.Individual.Label, &s.Individual.Streak, &s.Individual.Total,
		&s.Score, &s.Recommendation,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
