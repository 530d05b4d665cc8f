// Package raw reads env values during bootstrap without importing the logger
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Conf is a prefixed env view, the logger package configures itself through it
type Conf struct{ prefix string }

// New returns a root view
func New() Conf { return Conf{} }

// Prefix returns a child view, e.g. Prefix("LOG_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) value(k string) string { return strings.TrimSpace(os.Getenv(c.prefix + k)) }

// Get returns the trimmed value or def when blank
func (c Conf) Get(key, def string) string {
	if v := c.value(key); v != "" {
		return v
	}
	return def
}

// GetBool treats 1, true and yes as true, any other non blank value as false
func (c Conf) GetBool(key string, def bool) bool {
	switch strings.ToLower(c.value(key)) {
	case "":
		return def
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

// GetInt accepts non negative decimal integers only
func (c Conf) GetInt(key string, def int) int {
	n, err := strconv.ParseUint(c.value(key), 10, 31)
	if err != nil {
		return def
	}
	return int(n)
}
