package domain

import (
	"context"
	"time"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Analyze(ctx context.Context, in AnalyzeInput) (Analysis, error)
	AnalyzeUpload(ctx context.Context, up Upload) (Analysis, error)
	Report(ctx context.Context, id string) (StoredReport, error)
	Recent(ctx context.Context, limit int) ([]ReportSummary, error)
	Daily(ctx context.Context, id string) ([]DailyCount, error)
}

// ArchiveRow is the persisted form of a report
type ArchiveRow struct {
	ID            string
	CreatedAt     time.Time
	TotalMessages int
	TotalUsers    int
	Report        []byte
}

// ArchiveRepo persists reports in postgres and day counts in clickhouse
// Rollup methods return ErrRollupDisabled when no clickhouse is wired
type ArchiveRepo interface {
	EnsureSchema(ctx context.Context) error
	Insert(ctx context.Context, row ArchiveRow) error
	Get(ctx context.Context, id string) (ArchiveRow, error)
	Recent(ctx context.Context, limit int) ([]ArchiveRow, error)

	InsertDaily(ctx context.Context, reportID string, days []DailyCount) error
	Daily(ctx context.Context, reportID string) ([]DailyCount, error)
}
