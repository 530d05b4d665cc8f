package modkit

import (
	"net/http"

	"labelit/internal/modkit/httpkit"
)

// Option tweaks how a module is built
type Option func(*Built)

// WithName sets the module name used for the port registry and logs
func WithName(name string) Option {
	return func(b *Built) { b.Name = name }
}

// WithPrefix sets the route prefix under /api/v1
func WithPrefix(prefix string) Option {
	return func(b *Built) { b.Prefix = prefix }
}

// WithMiddlewares appends per module middlewares in order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts injects a port set the module knows how to consume
func WithPorts[T any](p T) Option {
	return func(b *Built) { b.Ports = p }
}

// WithRegister mounts extra endpoints after the module's own
func WithRegister(fn func(httpkit.Router)) Option {
	return func(b *Built) { b.Register = fn }
}
