package vesselx

import "reflect"

// TryRegisterFactory registers fn itself as a singleton instance keyed by its
// function type, so consumers can inject and call it. F must be a func type of
// any arity.
//
// Example:
//
//	ok, err := vesselx.TryRegisterFactory(c, func(id string) *Session {
//	    return &Session{ID: id}
//	})
//	newSession, _ := vessel.Resolve[func(string) *Session](c, vesselx.KeyOf[func(string) *Session]().Name())
func TryRegisterFactory[F any](r Registry, fn F) (bool, error) {
	if err := checkFunc(reflect.ValueOf(fn), fn); err != nil {
		return false, err
	}

	return TryRegisterInstance(r, fn)
}

// TryRegisterFactoryProvider registers provider, which builds the function F
// from the container, keyed by the type of F.
func TryRegisterFactoryProvider[F any](r Registry, provider func(Vessel) (F, error), lifetime Lifetime) (bool, error) {
	if provider == nil {
		return false, ErrInvalidFactory
	}

	if t := reflect.TypeFor[F](); t.Kind() != reflect.Func {
		var zero F
		return false, ErrInvalidFactoryType(zero)
	}

	return TryRegister(r, provider, lifetime)
}

func checkFunc(v reflect.Value, fn any) error {
	if !v.IsValid() {
		return ErrInvalidFactory
	}

	if v.Kind() != reflect.Func {
		return ErrInvalidFactoryType(fn)
	}

	if v.IsNil() {
		return ErrInvalidFactory
	}

	return nil
}
