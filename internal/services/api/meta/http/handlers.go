// Package http serves the /meta routes: liveness, readiness, build info and the active rule pack
package http

import (
	"context"
	"net/http"
	"time"

	"chatstats/internal/core/rulepack"
	"chatstats/internal/core/version"
	"chatstats/internal/modkit/httpkit"
	"chatstats/internal/platform/store"
)

// readyTimeout bounds all backend pings of one /ready call
const readyTimeout = 2 * time.Second

// Deps are what the meta routes report on
type Deps struct {
	ServiceName string
	StartedAt   time.Time

	// Backends are pinged by /ready. Nil seams report as skipped
	Backends []store.Backend

	// Now is the clock; nil means time.Now
	Now func() time.Time
}

type handlers struct{ Deps }

// Register mounts the meta routes on r
func Register(r httpkit.Router, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	h := &handlers{d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/rules", h.rules)
}

// HealthResponse answers /meta/health
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Started string `json:"started"`
	Now     string `json:"now"`
}

// ReadyCheck is one backend's ping result: ok, fail, skipped or unknown
type ReadyCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// ReadyResponse answers /meta/ready. Status is ok, degraded or fail
type ReadyResponse struct {
	Status string       `json:"status"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"`
}

// ServiceResponse answers /meta/service; Uptime is in seconds
type ServiceResponse struct {
	Name    string `json:"name"`
	Started string `json:"started"`
	Uptime  int64  `json:"uptime"`
}

// RulesResponse describes the embedded rule pack the engine runs with
type RulesResponse struct {
	Version         int      `json:"version"`
	MediaCategories []string `json:"media_categories"`
	SystemNotices   int      `json:"system_notices"`
	MinWordLength   int      `json:"min_word_length"`
	TopWords        int      `json:"top_words"`
	TopEmojis       int      `json:"top_emojis"`
}

func (h *handlers) stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func (h *handlers) health(*http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.ServiceName,
		Started: h.stamp(h.StartedAt),
		Now:     h.stamp(h.Now()),
	}, nil
}

// ready treats skipped backends as healthy since the archive is optional
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	res := ReadyResponse{Status: "ok", Now: h.stamp(h.Now())}
	for _, p := range store.Probe(ctx, h.Backends...) {
		c := ReadyCheck{Name: p.Name, Status: p.Status}
		if p.Err != nil {
			c.Error = p.Err.Error()
		}
		switch {
		case p.Status == store.HealthFail:
			res.Status = "fail"
		case p.Status == store.HealthUnknown && res.Status == "ok":
			res.Status = "degraded"
		}
		res.Checks = append(res.Checks, c)
	}
	if res.Checks == nil {
		res.Checks = []ReadyCheck{}
	}
	return res, nil
}

func (h *handlers) version(*http.Request) (any, error) { return version.Info(), nil }

func (h *handlers) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.ServiceName,
		Started: h.stamp(h.StartedAt),
		Uptime:  int64(h.Now().Sub(h.StartedAt) / time.Second),
	}, nil
}

func (h *handlers) rules(*http.Request) (any, error) {
	p := rulepack.MustLoad()
	return RulesResponse{
		Version:         p.Version,
		MediaCategories: p.Categories(),
		SystemNotices:   len(p.SystemNotices),
		MinWordLength:   p.MinWordLength,
		TopWords:        p.TopWords,
		TopEmojis:       p.TopEmojis,
	}, nil
}
