// Package time holds timestamp helpers for api payloads
package time

import "time"

// Ptr returns &t, or nil for the zero time so the field is omitted
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// Stamp renders t as RFC3339 in UTC
func Stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }
