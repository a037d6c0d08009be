// Package service runs analyses and manages the optional report archive
package service

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"chatstats/internal/core/analyzer"
	"chatstats/internal/core/chatlog"
	"chatstats/internal/core/report"
	"chatstats/internal/modkit/repokit"
	perr "chatstats/internal/platform/errors"
	"chatstats/internal/platform/logger"
	pnet "chatstats/internal/platform/net"
	"chatstats/internal/services/analyze/domain"

	"github.com/google/uuid"
)

// Service defines the analyze service contract
type Service interface {
	domain.ServicePort
	EnsureSchema(ctx context.Context) error
}

// Config controls the engine and the archive
type Config struct {
	DateOrder      chatlog.DateOrder
	Workers        int
	MaxUploadBytes int64
	// Archive stores every report when a TxRunner is wired
	Archive bool
}

// Svc implements Service
type Svc struct {
	cfg    Config
	db     repokit.TxRunner
	binder repokit.Binder[domain.ArchiveRepo]
	log    *logger.Logger

	// engines keyed by date order; an Analyzer is immutable and safe to share
	engines map[chatlog.DateOrder]*analyzer.Analyzer

	// seams for tests
	now   func() time.Time
	newID func() string
}

// New constructs the service; db may be nil, which disables the archive
func New(db repokit.TxRunner, binder repokit.Binder[domain.ArchiveRepo], cfg Config, log *logger.Logger) *Svc {
	if binder == nil {
		panic("analyze.Service requires a non nil Repo binder")
	}
	if log == nil {
		log = logger.Named("analyze")
	}
	s := &Svc{
		cfg:     cfg,
		db:      db,
		binder:  binder,
		log:     log,
		engines: map[chatlog.DateOrder]*analyzer.Analyzer{},
		now:     time.Now,
		newID:   func() string { return uuid.NewString() },
	}
	for _, o := range []chatlog.DateOrder{chatlog.DayFirst, chatlog.MonthFirst} {
		s.engines[o] = analyzer.New(
			analyzer.WithDateOrder(o),
			analyzer.WithWorkers(cfg.Workers),
			analyzer.WithLogger(log),
		)
	}
	return s
}

// archiving reports whether reports are persisted
func (s *Svc) archiving() bool { return s.cfg.Archive && s.db != nil }

// repo binds the archive repo to the pool
func (s *Svc) repo() domain.ArchiveRepo { return repokit.MustBind(s.binder, s.db) }

// EnsureSchema creates the archive tables; a no-op when archiving is off
func (s *Svc) EnsureSchema(ctx context.Context) error {
	if !s.archiving() {
		return nil
	}
	return s.repo().EnsureSchema(ctx)
}

// Analyze runs the engine over raw export text
func (s *Svc) Analyze(ctx context.Context, in domain.AnalyzeInput) (domain.Analysis, error) {
	order, err := s.order(in.DateOrder)
	if err != nil {
		return domain.Analysis{}, err
	}
	return s.run(ctx, in.Text, order)
}

// AnalyzeUpload checks an uploaded export and analyzes it in memory
func (s *Svc) AnalyzeUpload(ctx context.Context, up domain.Upload) (domain.Analysis, error) {
	if err := s.checkUpload(up); err != nil {
		return domain.Analysis{}, err
	}
	order, err := s.order(up.DateOrder)
	if err != nil {
		return domain.Analysis{}, err
	}
	ctx = logger.WithUpload(ctx, up.Filename)
	return s.run(ctx, string(up.Body), order)
}

// order resolves a request date order; empty means the configured default
func (s *Svc) order(v string) (chatlog.DateOrder, error) {
	if strings.TrimSpace(v) == "" {
		v = string(s.cfg.DateOrder)
	}
	o, err := chatlog.ParseDateOrder(v)
	if err != nil {
		return "", perr.WithField(perr.Validationf("date_order must be one of dmy mdy"), "date_order")
	}
	return o, nil
}

// checkUpload accepts .txt files whose declared and sniffed type is text/plain
func (s *Svc) checkUpload(up domain.Upload) error {
	if up.Filename == "" {
		return domain.ErrNoFile
	}
	if s.cfg.MaxUploadBytes > 0 && int64(len(up.Body)) > s.cfg.MaxUploadBytes {
		return perr.TooLargef("file exceeds %d bytes", s.cfg.MaxUploadBytes)
	}
	if !strings.EqualFold(filepath.Ext(up.Filename), ".txt") {
		return perr.UnsupportedMediaf("only .txt files are allowed")
	}
	if ct := mediaType(up.ContentType); ct != "" && ct != "text/plain" {
		return perr.UnsupportedMediaf("only .txt files are allowed")
	}
	if !sniffsText(up.Body) {
		return perr.UnsupportedMediaf("file is not text")
	}
	return nil
}

// mediaType strips parameters from a Content-Type header; unparsable values pass through lowercased
func mediaType(ct string) string {
	if ct == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(ct))
	}
	return mt
}

// sniffsText runs the net/http content sniffer over the head of b
func sniffsText(b []byte) bool {
	return strings.HasPrefix(http.DetectContentType(b[:min(len(b), 512)]), "text/")
}

func (s *Svc) run(ctx context.Context, text string, order chatlog.DateOrder) (domain.Analysis, error) {
	res, err := s.engines[order].Run(ctx, text)
	if err != nil {
		return domain.Analysis{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "analysis canceled")
	}
	out := domain.Analysis{Report: res.Report, Summary: summaryOf(res.Summary)}

	if s.archiving() {
		id, err := s.archive(ctx, res.Report)
		if err != nil {
			// the caller still gets the report
			logger.C(ctx).Error().Err(err).Stringer("code", perr.CodeOf(err)).Bool("retryable", perr.Retryable(err)).Msg("report archive failed")
		} else {
			out.ID = id
		}
	}
	return out, nil
}

// archive writes the report row then the day counts; a rollup failure keeps the row
func (s *Svc) archive(ctx context.Context, rep report.Report) (string, error) {
	raw, err := json.Marshal(rep)
	if err != nil {
		return "", err
	}
	id := s.newID()
	// logs and sql traces of this write carry the report id
	ctx = pnet.WithRequest(logger.WithRequest(ctx, "", id), "", id)

	row := domain.ArchiveRow{
		ID:            id,
		CreatedAt:     s.now(),
		TotalMessages: rep.TotalMessages,
		TotalUsers:    rep.TotalUsers,
		Report:        raw,
	}
	err = repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		return repokit.MustBind(s.binder, q).Insert(ctx, row)
	})
	if err != nil {
		return "", err
	}

	days := make([]domain.DailyCount, 0, len(rep.MessagesByDate.Labels))
	for i, day := range rep.MessagesByDate.Labels {
		days = append(days, domain.DailyCount{Day: day, Messages: uint32(rep.MessagesByDate.Data[i])})
	}
	if err := s.repo().InsertDaily(ctx, id, days); err != nil && !errors.Is(err, domain.ErrRollupDisabled) {
		logger.C(ctx).Warn().Err(err).Stringer("code", perr.CodeOf(err)).Msg("daily rollup insert failed")
	}
	return id, nil
}

// Report loads an archived report
func (s *Svc) Report(ctx context.Context, id string) (domain.StoredReport, error) {
	if !s.archiving() {
		return domain.StoredReport{}, domain.ErrArchiveDisabled
	}
	if _, err := uuid.Parse(id); err != nil {
		return domain.StoredReport{}, perr.NotFoundf("report %s not found", id)
	}
	row, err := s.repo().Get(ctx, id)
	if err != nil {
		return domain.StoredReport{}, err
	}
	var rep report.Report
	if err := json.Unmarshal(row.Report, &rep); err != nil {
		return domain.StoredReport{}, perr.Wrapf(err, perr.ErrorCodeDB, "decode report %s", id)
	}
	return domain.StoredReport{ID: row.ID, CreatedAt: row.CreatedAt, Report: rep}, nil
}

// Recent lists the newest archived reports; limit is clamped to [1,100]
func (s *Svc) Recent(ctx context.Context, limit int) ([]domain.ReportSummary, error) {
	if !s.archiving() {
		return nil, domain.ErrArchiveDisabled
	}
	limit = min(max(limit, 1), 100)
	rows, err := s.repo().Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ReportSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.ReportSummary{
			ID:            r.ID,
			CreatedAt:     r.CreatedAt,
			TotalMessages: r.TotalMessages,
			TotalUsers:    r.TotalUsers,
		})
	}
	return out, nil
}

// Daily returns the rollup day counts of an archived report
func (s *Svc) Daily(ctx context.Context, id string) ([]domain.DailyCount, error) {
	if !s.archiving() {
		return nil, domain.ErrArchiveDisabled
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, perr.NotFoundf("report %s not found", id)
	}
	return s.repo().Daily(ctx, id)
}

func summaryOf(s analyzer.Summary) domain.RunSummary {
	return domain.RunSummary{
		Lines:         s.Lines,
		Notices:       s.Notices,
		Messages:      s.Messages,
		Continuations: s.Continuations,
		Dropped:       s.Dropped,
		Undated:       s.Undated,
		Untimed:       s.Untimed,
	}
}
