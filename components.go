package vesselx

import "reflect"

const (
	// ComponentGroup is the group every component joins.
	ComponentGroup = "vesselx.components"

	// ParentMetadataKey records the node a component is attached under.
	ParentMetadataKey = "vesselx.parent"

	// ComponentNameMetadataKey records the name given to a new component.
	ComponentNameMetadataKey = "vesselx.component"
)

// Hierarchy locates components that already exist in a host's object tree.
// The tree itself belongs to the host; vesselx only searches it.
type Hierarchy interface {
	// Find returns a component assignable to t at or below parent.
	// The empty parent means the whole tree.
	Find(parent string, t reflect.Type) (any, bool)
}

// HierarchyFunc adapts a function to Hierarchy.
type HierarchyFunc func(parent string, t reflect.Type) (any, bool)

// Find implements Hierarchy.
func (f HierarchyFunc) Find(parent string, t reflect.Type) (any, bool) {
	return f(parent, t)
}

// Prototype is a component template that produces independent copies.
type Prototype[T any] interface {
	Clone() T
}

// ComponentOptions returns the register options that mark a component
// attached under parent. name may be empty.
func ComponentOptions(parent, name string) []RegisterOption {
	opts := []RegisterOption{
		WithGroup(ComponentGroup),
		WithMetadata(ParentMetadataKey, parent),
	}
	if name != "" {
		opts = append(opts, WithMetadata(ComponentNameMetadataKey, name))
	}
	return opts
}

// TryRegisterComponent registers an existing component instance under T.
func TryRegisterComponent[T any](r Registry, component T) (bool, error) {
	return addInstance(r, "", component)
}

// TryRegisterComponentInHierarchy registers T so that it resolves to the
// component h finds for it. The lookup runs at resolve time.
func TryRegisterComponentInHierarchy[T any](r Registry, h Hierarchy) (bool, error) {
	return addInHierarchy[T](r, "", h)
}

// TryRegisterComponentOnNew registers T as a newly constructed component
// called name.
func TryRegisterComponentOnNew[T any](r Registry, factory func(Vessel) (T, error), lifetime Lifetime, name string) (bool, error) {
	return addOnNew(r, "", factory, lifetime, name)
}

// TryRegisterComponentFromPrototype registers T as a fresh clone of proto.
// Singletons clone once; transients clone on every resolve.
func TryRegisterComponentFromPrototype[T Prototype[T]](r Registry, proto T, lifetime Lifetime) (bool, error) {
	return addFromPrototype(r, "", proto, lifetime)
}

// ComponentsBuilder registers components attached under one parent node.
type ComponentsBuilder struct {
	registry  Registry
	parent    string
	hierarchy Hierarchy
}

// NewComponentsBuilder creates a ComponentsBuilder. h may be nil when no
// in-hierarchy components are added.
func NewComponentsBuilder(r Registry, parent string, h Hierarchy) *ComponentsBuilder {
	return &ComponentsBuilder{registry: r, parent: parent, hierarchy: h}
}

// Registry returns the registry components are added to.
func (b *ComponentsBuilder) Registry() Registry {
	return b.registry
}

// Parent returns the node components are attached under.
func (b *ComponentsBuilder) Parent() string {
	return b.parent
}

// Hierarchy returns the hierarchy searched by TryAddInHierarchy.
func (b *ComponentsBuilder) Hierarchy() Hierarchy {
	return b.hierarchy
}

// TryAddInstance registers component under T, attached to the builder's parent.
func TryAddInstance[T any](b *ComponentsBuilder, component T) (bool, error) {
	return addInstance(b.registry, b.parent, component)
}

// TryAddInHierarchy registers T as the component found below the builder's parent.
func TryAddInHierarchy[T any](b *ComponentsBuilder) (bool, error) {
	return addInHierarchy[T](b.registry, b.parent, b.hierarchy)
}

// TryAddOnNew registers T as a new component called name under the builder's parent.
func TryAddOnNew[T any](b *ComponentsBuilder, factory func(Vessel) (T, error), lifetime Lifetime, name string) (bool, error) {
	return addOnNew(b.registry, b.parent, factory, lifetime, name)
}

// TryAddFromPrototype registers T as a clone of proto under the builder's parent.
func TryAddFromPrototype[T Prototype[T]](b *ComponentsBuilder, proto T, lifetime Lifetime) (bool, error) {
	return addFromPrototype(b.registry, b.parent, proto, lifetime)
}

func addInstance[T any](r Registry, parent string, component T) (bool, error) {
	return TryBind(r, Bind(value(component), Singleton, KeyOf[T]()).
		WithOptions(ComponentOptions(parent, "")...))
}

func addInHierarchy[T any](r Registry, parent string, h Hierarchy) (bool, error) {
	if h == nil {
		return false, ErrNoHierarchy
	}

	key := KeyOf[T]()
	find := func(Vessel) (any, error) {
		found, ok := h.Find(parent, key.Type())
		if !ok {
			return nil, ErrComponentNotFound(key, parent)
		}
		return found, nil
	}

	return TryBind(r, Bind(find, Singleton, key).
		WithOptions(ComponentOptions(parent, "")...))
}

func addOnNew[T any](r Registry, parent string, factory func(Vessel) (T, error), lifetime Lifetime, name string) (bool, error) {
	if factory == nil {
		return false, ErrInvalidFactory
	}

	return TryBind(r, Bind(wrap(factory), lifetime, KeyOf[T]()).
		WithOptions(ComponentOptions(parent, name)...))
}

func addFromPrototype[T Prototype[T]](r Registry, parent string, proto T, lifetime Lifetime) (bool, error) {
	clone := func(Vessel) (any, error) {
		return proto.Clone(), nil
	}

	return TryBind(r, Bind(clone, lifetime, KeyOf[T]()).
		WithOptions(ComponentOptions(parent, "")...))
}
