package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	perr "chatstats/internal/platform/errors"
	"chatstats/internal/platform/logger"
)

// JSONOptions controls ParseJSON
type JSONOptions struct {
	MaxBytes        int64 // 0 means unlimited
	DisallowUnknown bool
	AllowEmptyBody  bool
}

// DefaultJSONOptions allow 1 MiB, reject unknown fields and require a body
func DefaultJSONOptions() JSONOptions {
	return JSONOptions{MaxBytes: 1 << 20, DisallowUnknown: true}
}

// jsonMore is a seam over Decoder.More
var jsonMore = func(dec *json.Decoder) bool { return dec.More() }

// ParseJSON decodes one JSON value into T and validates it.
// Bodies over MaxBytes fail with ErrorCodeTooLarge, malformed ones with ErrorCodeJSON
func ParseJSON[T any](r *http.Request, opts ...JSONOptions) (T, error) {
	var zero, dst T
	o := DefaultJSONOptions()
	if len(opts) > 0 {
		o = opts[0]
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.Named("bind").Warn().Err(err).Msg("close request body")
		}
	}()

	body, empty := peek(r.Body)
	if empty && !o.AllowEmptyBody {
		if bodyless(r.Method) {
			return zero, nil
		}
		return zero, perr.JSONErrf("empty body")
	}

	// read one byte past the cap so a body of exactly MaxBytes still fits
	var lim *io.LimitedReader
	if o.MaxBytes > 0 {
		lim = &io.LimitedReader{R: body, N: o.MaxBytes + 1}
		body = lim
	}
	tooLarge := func() error {
		if lim != nil && lim.N <= 0 {
			return perr.TooLargef("request body exceeds %d bytes", o.MaxBytes)
		}
		return nil
	}

	dec := json.NewDecoder(body)
	if o.DisallowUnknown {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&dst); err != nil {
		if big := tooLarge(); big != nil {
			return zero, big
		}
		if o.AllowEmptyBody && errors.Is(err, io.EOF) {
			return dst, nil
		}
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if jsonMore(dec) {
		if big := tooLarge(); big != nil {
			return zero, big
		}
		return zero, perr.JSONErrf("unexpected trailing data")
	}

	if err := Validate(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

// peek reads one byte to learn whether rc is empty and hands back a reader that replays it
func peek(rc io.Reader) (io.Reader, bool) {
	var b [1]byte
	n, _ := rc.Read(b[:])
	if n == 0 {
		return rc, true
	}
	return io.MultiReader(bytes.NewReader(b[:n]), rc), false
}

// bodyless methods may arrive without a body
func bodyless(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodDelete, http.MethodOptions:
		return true
	}
	return false
}
