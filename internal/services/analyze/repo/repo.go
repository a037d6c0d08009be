// Package repo persists archived reports
// - Postgres keeps the full report as jsonb
// - ClickHouse keeps the per day message counts for rollups
package repo

import (
	"context"
	"time"

	"chatstats/internal/modkit/repokit"
	perr "chatstats/internal/platform/errors"
	"chatstats/internal/platform/store"
	"chatstats/internal/services/analyze/domain"

	"github.com/google/uuid"
)

const (
	schemaPG = `
CREATE TABLE IF NOT EXISTS reports (
	id             uuid PRIMARY KEY,
	created_at     timestamptz NOT NULL DEFAULT now(),
	total_messages integer NOT NULL,
	total_users    integer NOT NULL,
	report         jsonb NOT NULL
)`
	schemaCH = `
CREATE TABLE IF NOT EXISTS report_daily (
	report_id UUID,
	day       Date,
	messages  UInt32
) ENGINE = MergeTree
ORDER BY (report_id, day)`

	tableDaily = "report_daily"
)

// NewHybrid returns a binder over postgres for reports and ch for the daily rollup; ch may be nil
func NewHybrid(ch store.Clickhouse) repokit.Binder[domain.ArchiveRepo] {
	return repokit.BindFunc[domain.ArchiveRepo](func(q repokit.Queryer) domain.ArchiveRepo {
		return &hybrid{pg: q, ch: ch}
	})
}

type hybrid struct {
	pg repokit.Queryer
	ch store.Clickhouse
}

func (h *hybrid) EnsureSchema(ctx context.Context) error {
	if _, err := h.pg.Exec(ctx, schemaPG); err != nil {
		return perr.FromPostgres(err, "create reports table")
	}
	if h.ch == nil {
		return nil
	}
	if err := h.ch.Exec(ctx, schemaCH); err != nil {
		return perr.FromClickHouse(err, "create report_daily table")
	}
	return nil
}

func (h *hybrid) Insert(ctx context.Context, row domain.ArchiveRow) error {
	err := store.ExecOne(ctx, h.pg, `
INSERT INTO reports (id, created_at, total_messages, total_users, report)
VALUES ($1, $2, $3, $4, $5)`,
		row.ID, row.CreatedAt.UTC(), row.TotalMessages, row.TotalUsers, row.Report,
	)
	if err != nil {
		return perr.FromPostgres(err, "insert report")
	}
	return nil
}

func (h *hybrid) Get(ctx context.Context, id string) (domain.ArchiveRow, error) {
	row, err := store.One(ctx, h.pg, scanFull, `
SELECT id::text, created_at, total_messages, total_users, report
FROM reports
WHERE id = $1`, id)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.ArchiveRow{}, perr.NotFoundf("report %s not found", id)
		}
		return domain.ArchiveRow{}, perr.FromPostgres(err, "get report")
	}
	return row, nil
}

func (h *hybrid) Recent(ctx context.Context, limit int) ([]domain.ArchiveRow, error) {
	rows, err := store.Many(ctx, h.pg, scanSummary, `
SELECT id::text, created_at, total_messages, total_users
FROM reports
ORDER BY created_at DESC, id
LIMIT $1`, limit)
	if err != nil {
		return nil, perr.FromPostgres(err, "list reports")
	}
	return rows, nil
}

func (h *hybrid) InsertDaily(ctx context.Context, reportID string, days []domain.DailyCount) error {
	if h.ch == nil {
		return domain.ErrRollupDisabled
	}
	if len(days) == 0 {
		return nil
	}
	rid, err := uuid.Parse(reportID)
	if err != nil {
		return perr.InvalidArgf("bad report id %q", reportID)
	}
	batch := make([][]any, 0, len(days))
	for _, d := range days {
		day, err := time.Parse(time.DateOnly, d.Day)
		if err != nil {
			return perr.InvalidArgf("bad day %q", d.Day)
		}
		batch = append(batch, []any{rid, day, d.Messages})
	}
	if err := h.ch.Insert(ctx, tableDaily, batch); err != nil {
		return perr.FromClickHouse(err, "insert report_daily")
	}
	return nil
}

func (h *hybrid) Daily(ctx context.Context, reportID string) ([]domain.DailyCount, error) {
	if h.ch == nil {
		return nil, domain.ErrRollupDisabled
	}
	rows, err := h.ch.Query(ctx, `
SELECT toString(day), sum(messages)
FROM report_daily
WHERE report_id = toUUID(?)
GROUP BY day
ORDER BY day`, reportID)
	if err != nil {
		return nil, perr.FromClickHouse(err, "query report_daily")
	}
	defer rows.Close()

	out := []domain.DailyCount{}
	for rows.Next() {
		var (
			d domain.DailyCount
			n uint64
		)
		if err := rows.Scan(&d.Day, &n); err != nil {
			return nil, perr.FromClickHouse(err, "scan report_daily")
		}
		d.Messages = uint32(n)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.FromClickHouse(err, "read report_daily")
	}
	return out, nil
}

func scanFull(r store.Row) (domain.ArchiveRow, error) {
	var a domain.ArchiveRow
	err := r.Scan(&a.ID, &a.CreatedAt, &a.TotalMessages, &a.TotalUsers, &a.Report)
	return a, err
}

func scanSummary(r store.Row) (domain.ArchiveRow, error) {
	var a domain.ArchiveRow
	err := r.Scan(&a.ID, &a.CreatedAt, &a.TotalMessages, &a.TotalUsers)
	return a, err
}
