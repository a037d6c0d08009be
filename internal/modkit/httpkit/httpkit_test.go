package httpkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"chatstats/internal/platform/config"
	perr "chatstats/internal/platform/errors"
	phttp "chatstats/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

type pingIn struct {
	Name string `json:"name" validate:"required"`
}

func newRouter() Router { return phttp.AdaptChi(chi.NewRouter()) }

func do(t *testing.T, r Router, method, path, body string) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, req)

	var env Envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %q: %v", rec.Body.String(), err)
		}
	}
	return rec, env
}

func TestSugar_Routes(t *testing.T) {
	r := newRouter()
	Get(r, "/get", func(*http.Request) (any, error) { return "got", nil })
	Post(r, "/post", func(*http.Request) (any, error) { return nil, perr.NotFoundf("no such report") })
	PostJSON(r, "/json", func(_ *http.Request, in pingIn) (any, error) { return "hi " + in.Name, nil })
	PostJSONWith(r, "/small", JSONOptions{MaxBytes: 8}, func(_ *http.Request, in pingIn) (any, error) { return in.Name, nil })
	r.Get("/created", Handle(func(*http.Request) Response { return Created("new") }))
	r.Get("/empty", Handle(func(*http.Request) Response { return NoContent() }))

	cases := []struct {
		name, method, path, body string
		status                   int
		data                     any
	}{
		{"get", http.MethodGet, "/get", "", http.StatusOK, "got"},
		{"error maps", http.MethodPost, "/post", "", http.StatusNotFound, nil},
		{"json ok", http.MethodPost, "/json", `{"name":"ada"}`, http.StatusOK, "hi ada"},
		{"json invalid", http.MethodPost, "/json", `{}`, http.StatusBadRequest, nil},
		{"body too large", http.MethodPost, "/small", `{"name":"a long name"}`, http.StatusRequestEntityTooLarge, nil},
		{"created", http.MethodGet, "/created", "", http.StatusCreated, "new"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, env := do(t, r, tc.method, tc.path, tc.body)
			if rec.Code != tc.status || env.StatusCode != tc.status {
				t.Fatalf("status = %d/%d, want %d (%s)", rec.Code, env.StatusCode, tc.status, rec.Body.String())
			}
			if tc.data != nil && env.Data != tc.data {
				t.Fatalf("data = %#v, want %#v", env.Data, tc.data)
			}
		})
	}

	rec, _ := do(t, r, http.MethodGet, "/empty", "")
	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("no content = %d %q", rec.Code, rec.Body.String())
	}
}

func TestError_Response(t *testing.T) {
	r := newRouter()
	r.Get("/e", Handle(func(*http.Request) Response {
		return Error(perr.WithField(perr.Validationf("date order must be dmy or mdy"), "date_order"))
	}))
	rec, env := do(t, r, http.MethodGet, "/e", "")
	if rec.Code != http.StatusBadRequest || env.Field != "date_order" {
		t.Fatalf("got %d %+v", rec.Code, env)
	}
}

func TestMountAPIV1_AppliesStack(t *testing.T) {
	r := newRouter()
	var hits int
	count := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			hits++
			next.ServeHTTP(w, req)
		})
	}
	MountAPIV1(r, []func(http.Handler) http.Handler{count}, func(api Router) {
		Get(api, "/ping", func(*http.Request) (any, error) { return "pong", nil })
	})
	MountAPI(r, "/v2/", nil, func(api Router) {
		Get(api, "/ping", func(*http.Request) (any, error) { return "pong2", nil })
	})

	if rec, env := do(t, r, http.MethodGet, "/api/v1/ping", ""); rec.Code != http.StatusOK || env.Data != "pong" {
		t.Fatalf("v1 = %d %+v", rec.Code, env)
	}
	if hits != 1 {
		t.Fatalf("middleware hits = %d", hits)
	}
	if rec, env := do(t, r, http.MethodGet, "/api/v2/ping", ""); rec.Code != http.StatusOK || env.Data != "pong2" {
		t.Fatalf("v2 = %d %+v", rec.Code, env)
	}
	if hits != 1 {
		t.Fatalf("v1 stack leaked into v2")
	}
}

func TestStackFrom(t *testing.T) {
	t.Setenv("TEST_API_CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("TEST_API_REQUEST_TIMEOUT", "5s")

	o := StackFrom(config.New().Prefix("TEST_API_"))
	if len(o.CORSOrigins) != 2 || o.CORSOrigins[1] != "http://b.test" {
		t.Fatalf("origins = %v", o.CORSOrigins)
	}
	if o.Timeout != 5*time.Second || o.SlowRequest != 2*time.Second {
		t.Fatalf("durations = %v/%v", o.Timeout, o.SlowRequest)
	}
	if len(CommonStack(StackOptions{})) != 4 {
		t.Fatalf("stack size changed")
	}
}

func TestCommonStack_StripsSlashAndCORS(t *testing.T) {
	r := newRouter()
	MountAPIV1(r, CommonStack(StackOptions{CORSOrigins: []string{"http://app.test"}}), func(api Router) {
		Get(api, "/ping", func(*http.Request) (any, error) { return "pong", nil })
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping/", nil)
	req.Header.Set("Origin", "http://app.test")
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://app.test" {
		t.Fatalf("allow origin = %q", got)
	}
}
