package contracts

import "context"

// SecurityRepository persists the tracked universe.
// ⭐ SSOT: 종목 마스터 저장소 인터페이스는 여기서만 정의
type SecurityRepository interface {
	// Upsert inserts or replaces one security keyed by code.
	Upsert(ctx context.Context, sec *Security) error

	// UpsertBatch upserts securities one by one and returns the saved count;
	// a failed row is logged by the caller and does not abort the batch.
	UpsertBatch(ctx context.Context, secs []*Security) (int, error)

	// ListTracked returns all active securities.
	ListTracked(ctx context.Context) ([]*Security, error)

	// Deactivate marks a security inactive. Securities are never deleted.
	Deactivate(ctx context.Context, code string) error
}

// FlowRepository persists canonical daily flow records.
type FlowRepository interface {
	// Upsert replaces the row for (record.Code, record.Date). Last write wins.
	Upsert(ctx context.Context, record *FlowRecord) error

	// UpsertBatch upserts record by record, returning how many succeeded.
	// One failing record does not abort the rest.
	UpsertBatch(ctx context.Context, records []*FlowRecord) (int, error)

	// GetRecent returns up to limit records for code, most-recent-first.
	GetRecent(ctx context.Context, code string, limit int) ([]*FlowRecord, error)

	// SumNetBuys aggregates foreign and institution net-buy sums per security
	// over the last lookbackDays, restricted to securities where both sums
	// are strictly positive.
	SumNetBuys(ctx context.Context, lookbackDays int) ([]FlowAggregate, error)
}

// SnapshotRepository persists derived trend snapshots.
type SnapshotRepository interface {
	// Upsert replaces the snapshot for (code, analysis date, period type).
	Upsert(ctx context.Context, snap *TrendSnapshot) error

	// GetLatest returns the most recent snapshot for code, or nil.
	GetLatest(ctx context.Context, code string) (*TrendSnapshot, error)

	// ListByDate returns all snapshots for one analysis date.
	ListByDate(ctx context.Context, analysisDate string) ([]*TrendSnapshot, error)
}
