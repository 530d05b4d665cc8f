// Package module shares port sets between modules during bootstrap
//
// The api mounts modules in order and registers each one's Ports under its
// name; handlers resolve peers lazily so mount order does not matter.
package module

// Provider is anything that exposes a named port set
type Provider interface {
	Name() string
	Ports() any
}
