package vesselx

import (
	"reflect"

	"github.com/xraph/go-utils/di"
)

// serviceType is the lifecycle contract the container starts and stops.
var serviceType = reflect.TypeFor[di.Service]()

// Binding holds one registration: a factory bound under one or more keys.
//
// A binding with several keys must not be Scoped, and the instance it
// produces must not be a di.Service: the container would start such a
// service once per key. Keys are registered one by one, so a container that
// rejects a later key leaves the earlier ones bound; TryBind reports that as
// a PARTIAL_BINDING error.
type Binding struct {
	// Keys are checked and bound in order. The factory is bound under the
	// first key; the rest forward to it.
	Keys     []Key
	Factory  Factory
	Lifetime Lifetime
	// Options apply to the first key only.
	Options []RegisterOption
	// Type is the implementation type, when known before resolution.
	Type reflect.Type
}

// Bind creates a Binding for batch registration.
//
// Example:
//
//	vesselx.TryBindAll(c,
//	    vesselx.Bind(newDatabase, vesselx.Singleton, vesselx.NameKey("db")),
//	    vesselx.Bind(newCache, vesselx.Singleton, vesselx.NameKey("cache")),
//	)
func Bind(factory Factory, lifetime Lifetime, keys ...Key) Binding {
	return Binding{
		Keys:     keys,
		Factory:  factory,
		Lifetime: lifetime,
	}
}

// As returns a copy of b that records the implementation type t.
func (b Binding) As(t reflect.Type) Binding {
	b.Type = t
	return b
}

// WithOptions returns a copy of b with opts appended.
func (b Binding) WithOptions(opts ...RegisterOption) Binding {
	b.Options = append(append([]RegisterOption(nil), b.Options...), opts...)
	return b
}

// TryBind registers b unless any of its keys is already registered.
func TryBind(r Registry, b Binding) (bool, error) {
	if b.Factory == nil {
		return false, ErrInvalidFactory
	}

	if err := b.checkShared(); err != nil {
		return false, err
	}

	return Try(r, func() error {
		return bindAll(r, b)
	}, b.Keys...)
}

// TryBindAll try-registers each binding in order and reports which ones were
// registered. It stops at the first error.
func TryBindAll(r Registry, bindings ...Binding) ([]bool, error) {
	results := make([]bool, 0, len(bindings))
	for _, b := range bindings {
		ok, err := TryBind(r, b)
		if err != nil {
			return results, err
		}
		results = append(results, ok)
	}
	return results, nil
}

// checkShared rejects multi-key bindings the container cannot share
// correctly between keys.
func (b Binding) checkShared() error {
	if len(b.Keys) < 2 {
		return nil
	}

	if b.Lifetime == Scoped {
		return ErrScopedMultiKey(b.Keys)
	}

	if b.Type != nil && b.Type.Implements(serviceType) {
		return ErrSharedLifecycle(b.Keys[1], typeName(b.Type))
	}

	return nil
}

// forwardMetadataKey marks registrations that forward to another key.
const forwardMetadataKey = "vesselx.forward"

// bindAll registers the factory under the first key and a forwarding factory
// under every other key, so all keys share the first key's instance.
func bindAll(r Registry, b Binding) error {
	primary := b.Keys[0]

	opts := append([]RegisterOption{b.Lifetime.Option()}, b.Options...)
	if err := r.Register(primary.Name(), b.Factory, opts...); err != nil {
		return err
	}

	bound := []Key{primary}
	for _, k := range b.Keys[1:] {
		err := r.Register(k.Name(), forward(primary, k),
			b.Lifetime.Option(),
			WithMetadata(forwardMetadataKey, primary.Name()),
		)
		if err != nil {
			return ErrPartialBinding(bound, err)
		}
		bound = append(bound, k)
	}

	return nil
}

// forward resolves primary on behalf of alias. A di.Service is refused so the
// container never starts the primary's instance a second time under alias.
func forward(primary, alias Key) Factory {
	name := primary.Name()
	return func(c Vessel) (any, error) {
		instance, err := c.Resolve(name)
		if err != nil {
			return nil, err
		}

		if _, ok := instance.(di.Service); ok {
			return nil, ErrSharedLifecycle(alias, typeName(reflect.TypeOf(instance)))
		}

		return instance, nil
	}
}
