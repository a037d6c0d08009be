// Package http writes every response in one JSON envelope and adapts return-style handlers to net/http
package http

import (
	stdhttp "net/http"

	perr "chatstats/internal/platform/errors"
	pnet "chatstats/internal/platform/net"
)

// Envelope is the body of every JSON response. Data is set on success, Code and Error on failure
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	ReportID   string         `json:"report_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// JSON writes v with status
func JSON(w stdhttp.ResponseWriter, status int, v any) { pnet.WriteJSON(w, status, v) }

func envelope(r *stdhttp.Request, status int) Envelope {
	return Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		RequestID:  pnet.RequestID(r.Context()),
	}
}

// RespondOK writes data in a 200 envelope
func RespondOK(w stdhttp.ResponseWriter, r *stdhttp.Request, data any) {
	respond(w, r, stdhttp.StatusOK, data)
}

// RespondError writes err with the status its code maps to. The report id is left off
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	env := envelope(r, perr.HTTPStatus(err))
	wire := perr.WireFrom(err)
	env.Code, env.Error, env.Field = wire.Code, wire.Message, wire.Field
	JSON(w, env.StatusCode, env)
}

func respond(w stdhttp.ResponseWriter, r *stdhttp.Request, status int, data any) {
	env := envelope(r, status)
	env.ReportID = pnet.ReportID(r.Context())
	env.Data = data
	JSON(w, status, env)
}

// Response is what return-style handlers produce. An error Body picks its own status
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

func OK(data any) Response      { return Response{Status: stdhttp.StatusOK, Body: data} }
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }
func NoContent() Response       { return Response{Status: stdhttp.StatusNoContent} }
func Error(err error) Response  { return Response{Body: err} }

// Handle adapts a Response returning func to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).writeTo(w, r)
	}
}

func (resp Response) writeTo(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	if err, ok := resp.Body.(error); ok && err != nil {
		RespondError(w, r, err)
		return
	}
	switch resp.Status {
	case stdhttp.StatusNoContent:
		w.WriteHeader(stdhttp.StatusNoContent)
	case 0:
		respond(w, r, stdhttp.StatusOK, resp.Body)
	default:
		respond(w, r, resp.Status, resp.Body)
	}
}
