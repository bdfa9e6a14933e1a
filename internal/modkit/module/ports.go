package module

import "reflect"

// PortsOf looks for a T in m.Ports(): the ports value itself, or the first
// exported field of a ports struct (or pointer to one) that holds a T
func PortsOf[T any](m Module) (T, bool) {
	var none T
	switch p := m.Ports().(type) {
	case nil:
		return none, false
	case T:
		return p, true
	}

	rv := reflect.Indirect(reflect.ValueOf(m.Ports()))
	if !rv.IsValid() || rv.Kind() != reflect.Struct {
		return none, false
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
	return none, false
}

// MustPortsOf panics when m lacks a T; only boot wiring calls it
func MustPortsOf[T any](m Module) T {
	v, ok := PortsOf[T](m)
	if !ok {
		panic("module: " + m.Name() + " does not expose " + reflect.TypeFor[T]().String())
	}
	return v
}
