package vesselx

// EntryPointGroup is the group every entry point joins. The container's own
// lifecycle (Start/Stop) drives entry points that implement di.Service.
const EntryPointGroup = "vesselx.entrypoints"

// AsEntryPoint marks a registration as an entry point.
func AsEntryPoint() RegisterOption {
	return WithGroup(EntryPointGroup)
}

// TryRegisterEntryPoint registers T as an entry point unless T is already
// registered. The zero Lifetime is Singleton.
//
// Example:
//
//	ok, err := vesselx.TryRegisterEntryPoint(c, func(c vesselx.Vessel) (*Ticker, error) {
//	    return NewTicker(time.Second), nil
//	}, vesselx.Singleton)
func TryRegisterEntryPoint[T any](r Registry, factory func(Vessel) (T, error), lifetime Lifetime) (bool, error) {
	return TryRegister(r, factory, lifetime, AsEntryPoint())
}

// EntryPointsBuilder registers entry points that share a lifetime.
type EntryPointsBuilder struct {
	registry Registry
	lifetime Lifetime
}

// NewEntryPointsBuilder creates an EntryPointsBuilder over r.
func NewEntryPointsBuilder(r Registry, lifetime Lifetime) *EntryPointsBuilder {
	return &EntryPointsBuilder{registry: r, lifetime: lifetime}
}

// Registry returns the registry entry points are added to.
func (b *EntryPointsBuilder) Registry() Registry {
	return b.registry
}

// Lifetime returns the lifetime given to every entry point.
func (b *EntryPointsBuilder) Lifetime() Lifetime {
	return b.lifetime
}

// TryAddEntryPoint registers T as an entry point with the builder's lifetime,
// also exposing it under the interface keys in as. Nothing is registered if T
// or any of as is already taken.
//
// Extra keys suit entry points the host drives itself through EntryPoints.
// A T the container starts (a di.Service) is registered under its own type
// only; passing as for it fails with SHARED_LIFECYCLE.
func TryAddEntryPoint[T any](b *EntryPointsBuilder, factory func(Vessel) (T, error), as ...Key) (bool, error) {
	if factory == nil {
		return false, ErrInvalidFactory
	}

	keys := append([]Key{KeyOf[T]()}, as...)
	if err := checkAssignable(KeyOf[T]().Type(), keys); err != nil {
		return false, err
	}

	return TryBind(b.registry, Bind(wrap(factory), b.lifetime, keys...).
		As(KeyOf[T]().Type()).
		WithOptions(AsEntryPoint()))
}
