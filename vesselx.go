// Package vesselx adds idempotent ("try") registration to the vessel
// dependency injection container.
//
// Every Try* operation checks whether its key is already registered. If it is
// not, the operation delegates to the container and reports true. If it is,
// the operation reports false and leaves the container untouched.
package vesselx

import (
	"github.com/xraph/vessel"
)

// Vessel is the container the facade registers into.
type Vessel = vessel.Vessel

// Factory creates a service instance.
type Factory = vessel.Factory

// RegisterOption is a configuration option for service registration.
type RegisterOption = vessel.RegisterOption

// ServiceInfo contains diagnostic information.
type ServiceInfo = vessel.ServiceInfo

// Registry is the part of a container the facade consumes.
// Vessel and Builder both satisfy it.
type Registry interface {
	// Has reports whether name is registered.
	Has(name string) bool

	// Register adds a service factory under name.
	Register(name string, factory Factory, opts ...RegisterOption) error
}

// New creates a new vessel container.
func New() Vessel {
	return vessel.New()
}
