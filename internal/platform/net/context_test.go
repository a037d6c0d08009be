package net_test

import (
	"context"
	"testing"

	pnet "chatstats/internal/platform/net"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestWithRequest(t *testing.T) {
	cases := []struct {
		name, req, rep string
	}{
		{"request and report", "host/abc-000001", "0b8e6c5e-2f5a-4a8e-9a55-3c1d2f4f9e01"},
		{"report after upload", "", "rep-7"},
		{"request only", "host/abc-000002", ""},
	}
	for _, tc := range cases {
		ctx := pnet.WithRequest(context.Background(), tc.req, tc.rep)
		if got := pnet.RequestID(ctx); got != tc.req {
			t.Fatalf("%s: RequestID = %q, want %q", tc.name, got, tc.req)
		}
		if got := pnet.ReportID(ctx); got != tc.rep {
			t.Fatalf("%s: ReportID = %q, want %q", tc.name, got, tc.rep)
		}
	}
}

func TestWithRequest_NothingToAdd(t *testing.T) {
	base := context.Background()
	if pnet.WithRequest(base, "", "") != base {
		t.Fatalf("empty ids should return ctx untouched")
	}
}

func TestRequestID_SharesChiKey(t *testing.T) {
	ctx := pnet.WithRequest(context.Background(), "rid-1", "")
	if got := chimw.GetReqID(ctx); got != "rid-1" {
		t.Fatalf("chi sees %q", got)
	}
}
