package net_test

import (
	"errors"
	"net/http"
	"testing"

	perr "chatstats/internal/platform/errors"
	pnet "chatstats/internal/platform/net"
)

func TestError_Table(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   perr.ErrorCode
		msg    string
	}{
		{"nil", nil, http.StatusOK, perr.ErrorCodeUnknown, ""},
		{"panic", perr.PanicErrf("panic recovered"), http.StatusInternalServerError, perr.ErrorCodePanic, "panic recovered"},
		{"too large", perr.TooLargef("too big"), http.StatusRequestEntityTooLarge, perr.ErrorCodeTooLarge, "too big"},
		{"plain", errors.New("boom"), http.StatusInternalServerError, perr.ErrorCodeUnknown, "boom"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, w := pnet.Error(tc.err, "rid")
			if status != tc.status || w.StatusCode != tc.status || w.Status != http.StatusText(tc.status) {
				t.Fatalf("status %d wire %+v", status, w)
			}
			if w.Code != tc.code || w.Error != tc.msg || w.RequestID != "rid" {
				t.Fatalf("wire = %+v", w)
			}
		})
	}
}
