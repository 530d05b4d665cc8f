package module

import "sync"

// reg maps a module name to the ports it published at mount time
var reg sync.Map

// Register publishes ports under name, replacing any earlier set
func Register(name string, ports any) { reg.Store(name, ports) }

// PortsAs looks name up and asserts its ports to T
// false when nothing is registered or the ports do not satisfy T
func PortsAs[T any](name string) (T, bool) {
	v, _ := reg.Load(name)
	out, ok := v.(T)
	return out, ok
}

// Reset forgets every registration
func Reset() { reg.Clear() }
