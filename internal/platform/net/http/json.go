package http

import (
	"net/http"

	"chatstats/internal/platform/net/http/bind"
)

// JSONHandler binds a T body with the default limits, then calls fn
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return JSONHandlerWith(bind.DefaultJSONOptions(), fn)
}

// JSONHandlerWith binds a T body under opts, then calls fn
func JSONHandlerWith[T any](opts bind.JSONOptions, fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r, opts)
		if err != nil {
			return Error(err)
		}
		return toResponse(fn(r, in))
	})
}

// JSONHandlerNoBody leaves the body to fn
func JSONHandlerNoBody(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response { return toResponse(fn(r)) })
}

// GetJSON mounts fn under GET
func GetJSON(r Router, path string, fn func(*http.Request) (any, error)) {
	r.Get(path, JSONHandlerNoBody(fn))
}

// PostJSON mounts fn under POST with a bound T body
func PostJSON[T any](r Router, path string, fn func(*http.Request, T) (any, error)) {
	r.Post(path, JSONHandler(fn))
}

// PostJSONWith is PostJSON with explicit body limits
func PostJSONWith[T any](r Router, path string, opts bind.JSONOptions, fn func(*http.Request, T) (any, error)) {
	r.Post(path, JSONHandlerWith(opts, fn))
}

// toResponse lets fn return a ready Response or a bare payload for a 200
func toResponse(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}
