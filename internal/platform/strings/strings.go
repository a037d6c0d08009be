// Package strings holds the small string and slice helpers the wiring code shares
package strings

import std "strings"

// IfEmpty falls back to def when in has no elements
func IfEmpty[T any](in, def []T) []T {
	if len(in) > 0 {
		return in
	}
	return def
}

// MustString returns s unless it is blank; name labels the panic
func MustString(s, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix turns " meta/" into "/meta". A prefix that is only slashes or blanks panics
func MustPrefix(s string) string {
	trimmed := std.Trim(s, " /")
	if trimmed == "" {
		panic("route prefix " + std.TrimSpace(s) + " is empty")
	}
	return "/" + trimmed
}

// Ptr is nil for "" and &s otherwise
func Ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
