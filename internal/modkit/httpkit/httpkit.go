// Package httpkit is the routing surface modules see.
// Modules import it instead of internal/platform/net/http
package httpkit

import (
	"net/http"

	phttp "chatstats/internal/platform/net/http"
	"chatstats/internal/platform/net/http/bind"
)

type (
	Envelope    = phttp.Envelope
	Response    = phttp.Response
	Handler     = phttp.Handler
	Router      = phttp.Router
	JSONOptions = bind.JSONOptions
)

// Created wraps data in a 201
func Created(data any) Response { return phttp.Created(data) }

// NoContent is an empty 204
func NoContent() Response { return phttp.NoContent() }

// Error maps err to its status and error envelope
func Error(err error) Response { return phttp.Error(err) }

// Handle adapts a func that builds its own Response
func Handle(fn func(*http.Request) Response) Handler { return phttp.Handle(fn) }

// DefaultJSONOptions returns the platform body limits
func DefaultJSONOptions() JSONOptions { return bind.DefaultJSONOptions() }

// Get mounts h under GET; the result lands in the data envelope
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, phttp.JSONHandlerNoBody(h))
}

// Post mounts a handler that reads the body itself, e.g. a multipart upload
func Post(r Router, path string, h func(*http.Request) (any, error)) {
	r.Post(path, phttp.JSONHandlerNoBody(h))
}

// PostJSON decodes and validates a T body with default limits before h runs
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}

// PostJSONWith is PostJSON with explicit body limits
func PostJSONWith[T any](r Router, path string, opts JSONOptions, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandlerWith(opts, h))
}
