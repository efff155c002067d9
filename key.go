package vesselx

import (
	"fmt"
	"reflect"
)

// Key identifies a registration. It is either a Go type (optionally with a
// name for disambiguation) or a plain container name.
//
// Keys are comparable and safe to use as map keys.
type Key struct {
	typ  reflect.Type
	name string
}

// KeyOf returns the type identity of T.
//
// Example:
//
//	vesselx.KeyOf[*Database]()
//	vesselx.KeyOf[io.Reader]()
func KeyOf[T any]() Key {
	return Key{typ: reflect.TypeFor[T]()}
}

// NamedKey returns the type identity of T qualified by name.
// Use it when the same type is registered more than once.
func NamedKey[T any](name string) Key {
	return Key{typ: reflect.TypeFor[T](), name: name}
}

// NameKey returns a key for a plain container name, matching services
// registered with vessel's string-based API.
func NameKey(name string) Key {
	return Key{name: name}
}

// KeyFor returns the key for a runtime type.
func KeyFor(t reflect.Type) Key {
	return Key{typ: t}
}

// Type returns the key's type, or nil for a plain name key.
func (k Key) Type() reflect.Type {
	return k.typ
}

// IsZero reports whether the key identifies nothing.
func (k Key) IsZero() bool {
	return k.typ == nil && k.name == ""
}

// Name returns the name the container stores the registration under.
func (k Key) Name() string {
	if k.typ == nil {
		return k.name
	}

	if k.name == "" {
		return typeName(k.typ)
	}

	return fmt.Sprintf("%s[name=%s]", typeName(k.typ), k.name)
}

// String returns a human-readable representation of the key.
func (k Key) String() string {
	if k.IsZero() {
		return "<nil>"
	}
	return k.Name()
}

// typeName qualifies named types with their package path so that two types
// sharing a short name never share a key.
func typeName(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Ptr:
		return "*" + typeName(t.Elem())
	case reflect.Slice:
		if t.Name() == "" {
			return "[]" + typeName(t.Elem())
		}
	case reflect.Map:
		if t.Name() == "" {
			return fmt.Sprintf("map[%s]%s", typeName(t.Key()), typeName(t.Elem()))
		}
	}

	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}

	return t.String()
}

// Keys returns the container names of keys in order.
func Keys(keys ...Key) []string {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.Name()
	}
	return names
}
