package module

import "reflect"

// PortsOf finds a T in p.Ports(), either the value itself or one of its exported struct fields
func PortsOf[T any](p Provider) (T, bool) {
	var zero T
	ports := p.Ports()
	if ports == nil {
		return zero, false
	}
	if v, ok := ports.(T); ok {
		return v, true
	}

	rv := reflect.ValueOf(ports)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return zero, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := range rv.NumField() {
		f := rv.Field(i)
		if !f.CanInterface() {
			continue
		}
		if v, ok := f.Interface().(T); ok {
			return v, true
		}
	}
	return zero, false
}
