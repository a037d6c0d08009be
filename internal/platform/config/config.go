// Package config reads settings from prefixed environment variables.
// Must* panics through the logger when a value is missing or malformed; May* falls back to a default
package config

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"chatstats/internal/platform/config/raw"
	"chatstats/internal/platform/logger"
)

// Conf is an env view under a prefix such as "CORE_API_"
type Conf struct{ env raw.Conf }

// New returns the unprefixed view
func New() Conf { return Conf{env: raw.New()} }

// Prefix narrows the view, e.g. New().Prefix("CORE_ANALYZE_")
func (c Conf) Prefix(p string) Conf { return Conf{env: c.env.Prefix(p)} }

func (c Conf) lookup(key string) string { return c.env.Get(key, "") }

func (c Conf) fail(key, value, msg string) {
	ev := logger.Get().Panic().Str("key", c.env.Key(key))
	if value != "" {
		ev = ev.Str("value", value)
	}
	ev.Msg(msg)
}

// must parses a required key
func must[T any](c Conf, key, kind string, parse func(string) (T, bool)) T {
	s := c.lookup(key)
	if s == "" {
		c.fail(key, "", "missing required env")
	}
	v, ok := parse(s)
	if !ok {
		c.fail(key, s, "invalid "+kind)
	}
	return v
}

// may parses an optional key; bad values warn and give def
func may[T any](c Conf, key, kind string, def T, parse func(string) (T, bool)) T {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	v, ok := parse(s)
	if !ok {
		logger.Get().Warn().Str("key", c.env.Key(key)).Str("value", s).Msgf("invalid %s; using default", kind)
		return def
	}
	return v
}

func parseString(s string) (string, bool) { return s, true }

func parseInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	return n, err == nil
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "yes", "on":
		return true, true
	case "no", "off":
		return false, true
	}
	b, err := strconv.ParseBool(s)
	return b, err == nil
}

func parseDuration(s string) (time.Duration, bool) {
	d, err := time.ParseDuration(s)
	return d, err == nil && d >= 0
}

func parseURL(s string) (*url.URL, bool) {
	u, err := url.Parse(s)
	return u, err == nil && u.IsAbs()
}

func parsePort(s string) (string, bool) {
	p, err := strconv.Atoi(strings.TrimPrefix(s, ":"))
	return ":" + strconv.Itoa(p), err == nil && p >= 1 && p <= 65535
}

// MustString returns a required non blank value
func (c Conf) MustString(key string) string { return must(c, key, "string", parseString) }

// MustInt returns a required integer
func (c Conf) MustInt(key string) int { return must(c, key, "int", parseInt) }

// MustBool returns a required bool (true/false, 1/0, yes/no, on/off)
func (c Conf) MustBool(key string) bool { return must(c, key, "bool", parseBool) }

// MustDuration returns a required non negative duration such as 250ms or 2s
func (c Conf) MustDuration(key string) time.Duration {
	return must(c, key, "duration", parseDuration)
}

// MustURL returns a required absolute URL
func (c Conf) MustURL(key string) *url.URL { return must(c, key, "absolute URL", parseURL) }

// MustPort returns a listen address ":N" for a port 1..65535, given as N or :N
func (c Conf) MustPort(key string) string { return must(c, key, "TCP port", parsePort) }

// Require panics on the first missing key
func (c Conf) Require(keys ...string) {
	for _, k := range keys {
		if c.lookup(k) == "" {
			c.fail(k, "", "missing required env")
		}
	}
}

// MayString returns the value or def
func (c Conf) MayString(key, def string) string { return may(c, key, "string", def, parseString) }

// MayInt returns the value or def
func (c Conf) MayInt(key string, def int) int { return may(c, key, "int", def, parseInt) }

// MayBool returns the value or def
func (c Conf) MayBool(key string, def bool) bool { return may(c, key, "bool", def, parseBool) }

// MayDuration returns the value or def
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, "duration", def, parseDuration)
}

// MayCSV splits a comma list, dropping blanks. An empty list gives def
func (c Conf) MayCSV(key string, def []string) []string {
	var out []string
	for _, p := range strings.Split(c.lookup(key), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the allowed spelling matching the value case-insensitively, or def when unset.
// A value outside allowed panics
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.lookup(key)
	if v == "" {
		return def
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return a
		}
	}
	logger.Get().Panic().Str("key", c.env.Key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
