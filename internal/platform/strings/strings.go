// Package strings has the few string helpers modules share.
package strings

import std "strings"

func blank(s string) bool { return std.TrimSpace(s) == "" }

// IfEmpty is def for a nil or empty in
func IfEmpty[T any](in, def []T) []T {
	if len(in) > 0 {
		return in
	}
	return def
}

// MustString guards wiring values; the panic names what is missing
func MustString(s, name string) string {
	if blank(s) {
		panic(name + " is required")
	}
	return s
}

// SQLNull sends blank optional text as NULL
func SQLNull(s string) any {
	if blank(s) {
		return nil
	}
	return s
}

// MustPrefix returns "/x" for "x", "/x/" or " /x"; a root or blank prefix panics
func MustPrefix(s string) string {
	trimmed := std.Trim(std.TrimSpace(s), "/")
	if trimmed == "" {
		panic("route prefix is required")
	}
	return "/" + trimmed
}
