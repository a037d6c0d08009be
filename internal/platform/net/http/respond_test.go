package http

import (
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	perr "chatstats/internal/platform/errors"
	pnet "chatstats/internal/platform/net"
)

func request(rid, reportID string) *stdhttp.Request {
	req := httptest.NewRequest(stdhttp.MethodPost, "/api/v1/analyze", nil)
	return req.WithContext(pnet.WithRequest(req.Context(), rid, reportID))
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal %q: %v", rr.Body.String(), err)
	}
	return env
}

func TestRespondOK_CarriesIDs(t *testing.T) {
	rr := httptest.NewRecorder()
	RespondOK(rr, request("rid-1", "rep-1"), map[string]int{"totalMessages": 3})

	if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content-type = %q", ct)
	}
	env := decode(t, rr)
	if env.StatusCode != 200 || env.Status != "OK" || env.RequestID != "rid-1" || env.ReportID != "rep-1" {
		t.Fatalf("bad envelope: %+v", env)
	}
	if m, ok := env.Data.(map[string]any); !ok || m["totalMessages"] != float64(3) {
		t.Fatalf("data = %#v", env.Data)
	}
}

func TestRespondError_Table(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		code  int
		field string
	}{
		{"validation with field", perr.WithField(perr.Validationf("text is required"), "text"), 400, "text"},
		{"too large", perr.TooLargef("file exceeds 10 bytes"), 413, ""},
		{"unsupported", perr.UnsupportedMediaf("only .txt files are accepted"), 415, ""},
		{"not found", perr.NotFoundf("report not found"), 404, ""},
		{"plain", errors.New("boom"), 500, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			RespondError(rr, request("rid-2", "rep-ignored"), tc.err)
			if rr.Code != tc.code {
				t.Fatalf("status = %d, want %d", rr.Code, tc.code)
			}
			env := decode(t, rr)
			if env.StatusCode != tc.code || env.Field != tc.field || env.Error == "" || env.RequestID != "rid-2" {
				t.Fatalf("bad envelope: %+v", env)
			}
			if env.ReportID != "" || env.Data != nil {
				t.Fatalf("error envelope leaked success fields: %+v", env)
			}
		})
	}
}

func TestHandle_ReturnStyle(t *testing.T) {
	cases := []struct {
		name string
		resp Response
		code int
	}{
		{"ok", OK("x"), 200},
		{"created", Created("x"), 201},
		{"zero status", Response{Body: "x"}, 200},
		{"error wins over status", Response{Status: 201, Body: perr.NotFoundf("nope")}, 404},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			Handle(func(*stdhttp.Request) Response { return tc.resp })(rr, request("", ""))
			if rr.Code != tc.code || decode(t, rr).StatusCode != tc.code {
				t.Fatalf("status = %d, want %d", rr.Code, tc.code)
			}
		})
	}

	rr := httptest.NewRecorder()
	Handle(func(*stdhttp.Request) Response {
		r := NoContent()
		r.Header = stdhttp.Header{"X-Extra": []string{"1"}}
		return r
	})(rr, request("", ""))
	if rr.Code != 204 || rr.Body.Len() != 0 || rr.Header().Get("X-Extra") != "1" {
		t.Fatalf("no content => %d len=%d hdr=%q", rr.Code, rr.Body.Len(), rr.Header().Get("X-Extra"))
	}
}
