// Package http provides http transport for analyze
package http

import (
	"errors"
	"io"
	stdhttp "net/http"
	"strconv"
	"strings"

	"chatstats/internal/modkit/httpkit"
	perr "chatstats/internal/platform/errors"
	"chatstats/internal/services/analyze/domain"

	"github.com/go-chi/chi/v5"
)

// FileField is the multipart field carrying the export
const FileField = "chatFile"

// Limits bounds request bodies
type Limits struct {
	// MaxUploadBytes caps both the JSON text body and the uploaded file
	MaxUploadBytes int64
}

// Register mounts the analyze and reports endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort, lim Limits) {
	h := &handlers{svc: s, lim: lim}

	jsonOpts := httpkit.DefaultJSONOptions()
	if lim.MaxUploadBytes > 0 {
		// room for the JSON envelope around the text
		jsonOpts.MaxBytes = lim.MaxUploadBytes + 4<<10
	}

	r.Route("/analyze", func(ar httpkit.Router) {
		httpkit.PostJSONWith[domain.AnalyzeInput](ar, "/", jsonOpts, h.analyze)
		httpkit.Post(ar, "/upload", h.upload)
	})
	r.Route("/reports", func(rr httpkit.Router) {
		httpkit.Get(rr, "/", h.recent)
		httpkit.Get(rr, "/{id}", h.report)
		httpkit.Get(rr, "/{id}/daily", h.daily)
	})
}

type handlers struct {
	svc domain.ServicePort
	lim Limits
}

// swagger:route POST /analyze Analyze analyzeText
// @Summary Analyze export text
// @Tags Analyze
// @Accept json
// @Produce json
// @Param payload body domain.AnalyzeInput true "Export"
// @Success 200 {object} domain.Analysis "ok"
// @Router /analyze [post]
func (h *handlers) analyze(r *stdhttp.Request, in domain.AnalyzeInput) (any, error) {
	return h.svc.Analyze(r.Context(), in)
}

// swagger:route POST /analyze/upload Analyze analyzeUpload
// @Summary Analyze an uploaded .txt export
// @Tags Analyze
// @Accept multipart/form-data
// @Produce json
// @Param chatFile formData file true "WhatsApp .txt export"
// @Success 200 {object} domain.Analysis "ok"
// @Router /analyze/upload [post]
func (h *handlers) upload(r *stdhttp.Request) (any, error) {
	up, err := h.readUpload(r)
	if err != nil {
		return nil, err
	}
	return h.svc.AnalyzeUpload(r.Context(), up)
}

// readUpload streams the multipart body and keeps the file part in memory only
func (h *handlers) readUpload(r *stdhttp.Request) (domain.Upload, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return domain.Upload{}, domain.ErrNoFile
	}
	var up domain.Upload
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.Upload{}, perr.Wrap(err, perr.ErrorCodeValidation, "malformed multipart body")
		}
		switch part.FormName() {
		case FileField:
			if up.Filename != "" {
				return domain.Upload{}, perr.WithField(perr.Validationf("only one file per request"), FileField)
			}
			body, err := readCapped(part, h.lim.MaxUploadBytes)
			if err != nil {
				return domain.Upload{}, err
			}
			up.Filename = part.FileName()
			up.ContentType = part.Header.Get("Content-Type")
			up.Body = body
		case "date_order":
			v, err := readCapped(part, 16)
			if err != nil {
				return domain.Upload{}, perr.WithField(perr.Validationf("date_order must be one of dmy mdy"), "date_order")
			}
			up.DateOrder = strings.TrimSpace(string(v))
		}
		_ = part.Close()
	}
	if up.Filename == "" {
		return domain.Upload{}, domain.ErrNoFile
	}
	return up, nil
}

// readCapped reads at most limit bytes and fails with 413 past it; limit <= 0 reads all
func readCapped(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeValidation, "read upload")
	}
	if int64(len(b)) > limit {
		return nil, perr.TooLargef("file exceeds %d bytes", limit)
	}
	return b, nil
}

// swagger:route GET /reports Reports listReports
// @Summary Recently archived reports
// @Tags Reports
// @Produce json
// @Param limit query int false "1..100, default 20"
// @Success 200 {array} domain.ReportSummary "ok"
// @Router /reports [get]
func (h *handlers) recent(r *stdhttp.Request) (any, error) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, perr.WithField(perr.Validationf("limit must be a number"), "limit")
		}
		limit = n
	}
	return h.svc.Recent(r.Context(), limit)
}

// swagger:route GET /reports/{id} Reports getReport
// @Summary Archived report
// @Tags Reports
// @Produce json
// @Param id path string true "report id"
// @Success 200 {object} domain.StoredReport "ok"
// @Router /reports/{id} [get]
func (h *handlers) report(r *stdhttp.Request) (any, error) {
	return h.svc.Report(r.Context(), chi.URLParam(r, "id"))
}

// swagger:route GET /reports/{id}/daily Reports getReportDaily
// @Summary Per day message counts from the rollup
// @Tags Reports
// @Produce json
// @Param id path string true "report id"
// @Success 200 {array} domain.DailyCount "ok"
// @Router /reports/{id}/daily [get]
func (h *handlers) daily(r *stdhttp.Request) (any, error) {
	return h.svc.Daily(r.Context(), chi.URLParam(r, "id"))
}
