package net

import (
	"encoding/json"
	"net/http"

	perr "chatstats/internal/platform/errors"
)

// Wire is the error body for writers that run outside the handler layer, such as panic recovery
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
}

// Error maps err to its status and body. A nil err is a plain 200
func Error(err error, reqID string) (int, Wire) {
	status := http.StatusOK
	body := Wire{RequestID: reqID}
	if err != nil {
		status = perr.HTTPStatus(err)
		pw := perr.WireFrom(err)
		body.Code, body.Error, body.Field = pw.Code, pw.Message, pw.Field
	}
	body.StatusCode, body.Status = status, http.StatusText(status)
	return status, body
}

// WriteJSON sends v as the whole response
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
