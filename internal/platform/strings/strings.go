// Package strings holds the few string helpers shared across packages
package strings

import std "strings"

// IfEmpty returns def when in has no elements
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustString panics with "<name> is required" when s is blank
func MustString(s string, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalizes a route root like /meta or /labeling
// one leading slash, no trailing slash, panics when nothing is left
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// SplitList splits a comma separated config value, dropping blank items
func SplitList(s string) []string {
	var out []string
	for part := range std.SplitSeq(s, ",") {
		if p := std.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
