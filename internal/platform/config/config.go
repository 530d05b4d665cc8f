// Package config reads namespaced settings from the process environment
package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"labelit/internal/platform/logger"
)

// Conf is a prefixed view over environment variables
// New().Prefix("LABELIT_").Prefix("DB_") reads LABELIT_DB_*
type Conf struct{ prefix string }

// New creates a root Conf with no prefix
func New() Conf { return Conf{} }

// Prefix returns a child view with p appended to the current prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Key returns the fully qualified variable name for k
func (c Conf) Key(k string) string { return c.prefix + k }

func (c Conf) lookup(k string) string { return strings.TrimSpace(os.Getenv(c.Key(k))) }

// MustString panics when the variable is missing or blank
func (c Conf) MustString(key string) string {
	v := c.lookup(key)
	if v == "" {
		logger.Get().Panic().Str("key", c.Key(key)).Msg("missing required env")
	}
	return v
}

// MayString returns the trimmed value or def when blank
func (c Conf) MayString(key, def string) string {
	if v := c.lookup(key); v != "" {
		return v
	}
	return def
}

// MayInt returns the value or def, an unparsable value logs a warning and yields def
func (c Conf) MayInt(key string, def int) int {
	return may(c, key, def, "int", strconv.Atoi)
}

// MayBool accepts anything strconv.ParseBool does
func (c Conf) MayBool(key string, def bool) bool {
	return may(c, key, def, "bool", strconv.ParseBool)
}

// MayDuration accepts Go duration syntax such as 250ms or 30s
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, "duration", time.ParseDuration)
}

// MayURL returns an absolute http or https url, anything else falls back to def
func (c Conf) MayURL(key, def string) string {
	return may(c, key, def, "url", func(s string) (string, error) {
		u, err := url.Parse(s)
		if err != nil {
			return "", err
		}
		if !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return "", &url.Error{Op: "parse", URL: s, Err: errNotHTTP}
		}
		return s, nil
	})
}

type configError string

func (e configError) Error() string { return string(e) }

const errNotHTTP = configError("not an absolute http url")

func may[T any](c Conf, key string, def T, kind string, parse func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().
			Str("key", c.Key(key)).
			Str("value", s).
			Interface("default", def).
			Msgf("invalid %s; using default", kind)
		return def
	}
	return v
}
