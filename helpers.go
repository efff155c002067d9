package vesselx

import (
	"reflect"
)

// TryRegister registers factory under the type identity of T with the given
// lifetime unless T is already registered.
//
// Example:
//
//	ok, err := vesselx.TryRegister(c, func(c vesselx.Vessel) (*Database, error) {
//	    return NewDatabase(), nil
//	}, vesselx.Singleton)
func TryRegister[T any](r Registry, factory func(Vessel) (T, error), lifetime Lifetime, opts ...RegisterOption) (bool, error) {
	if factory == nil {
		return false, ErrInvalidFactory
	}

	return TryBind(r, Bind(wrap(factory), lifetime, KeyOf[T]()).WithOptions(opts...))
}

// TryRegisterAs registers one implementation under each of keys, in order,
// unless any of them is already registered. T must be assignable to the type
// of every typed key. With more than one key, lifetime must not be Scoped and
// T must not be a di.Service.
//
// Example:
//
//	ok, err := vesselx.TryRegisterAs(c, newFileStore, vesselx.Singleton,
//	    vesselx.KeyOf[io.Reader](),
//	    vesselx.KeyOf[io.Writer](),
//	)
func TryRegisterAs[T any](r Registry, factory func(Vessel) (T, error), lifetime Lifetime, keys ...Key) (bool, error) {
	if factory == nil {
		return false, ErrInvalidFactory
	}

	if err := checkAssignable(reflect.TypeFor[T](), keys); err != nil {
		return false, err
	}

	return TryBind(r, Bind(wrap(factory), lifetime, keys...).As(reflect.TypeFor[T]()))
}

// TryRegisterType registers an untyped factory under key.
func TryRegisterType(r Registry, key Key, factory Factory, lifetime Lifetime, opts ...RegisterOption) (bool, error) {
	return TryBind(r, Bind(factory, lifetime, key).WithOptions(opts...))
}

// TryRegisterInstance registers a pre-built instance (always singleton) under
// the type identity of T.
func TryRegisterInstance[T any](r Registry, instance T) (bool, error) {
	return TryBind(r, Bind(value(instance), Singleton, KeyOf[T]()))
}

// TryRegisterInstanceAs registers a pre-built instance under each of keys
// unless any of them is already registered.
func TryRegisterInstanceAs[T any](r Registry, instance T, keys ...Key) (bool, error) {
	if err := checkAssignable(reflect.TypeFor[T](), keys); err != nil {
		return false, err
	}

	return TryBind(r, Bind(value(instance), Singleton, keys...).As(reflect.TypeOf(instance)))
}

// wrap adapts a typed factory to an untyped one.
func wrap[T any](factory func(Vessel) (T, error)) Factory {
	return func(c Vessel) (any, error) {
		return factory(c)
	}
}

func value[T any](instance T) Factory {
	return func(Vessel) (any, error) {
		return instance, nil
	}
}

// checkAssignable verifies impl can be stored under every typed key.
func checkAssignable(impl reflect.Type, keys []Key) error {
	for _, k := range keys {
		if k.typ == nil {
			continue
		}
		if !impl.AssignableTo(k.typ) {
			return ErrNotAssignable(k, typeName(impl))
		}
	}
	return nil
}
