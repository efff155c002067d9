package vesselx

import (
	"fmt"
	"strings"

	"github.com/xraph/vessel"
)

// Lifetime controls how long the container reuses an instance.
// The zero value is Singleton.
type Lifetime int

const (
	// Singleton shares one instance for the container's lifetime.
	Singleton Lifetime = iota
	// Transient creates a new instance on each resolve.
	Transient
	// Scoped shares one instance per scope.
	Scoped
)

// String returns the lifecycle name vessel uses for the lifetime.
func (l Lifetime) String() string {
	switch l {
	case Singleton:
		return "singleton"
	case Transient:
		return "transient"
	case Scoped:
		return "scoped"
	default:
		return fmt.Sprintf("Lifetime(%d)", int(l))
	}
}

// Option returns the vessel register option for the lifetime.
func (l Lifetime) Option() RegisterOption {
	switch l {
	case Transient:
		return vessel.Transient()
	case Scoped:
		return vessel.Scoped()
	default:
		return vessel.Singleton()
	}
}

// Valid reports whether l is one of the declared lifetimes.
func (l Lifetime) Valid() bool {
	return l >= Singleton && l <= Scoped
}

// ParseLifetime parses a lifecycle name. The empty string is Singleton.
func ParseLifetime(s string) (Lifetime, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "singleton":
		return Singleton, nil
	case "transient":
		return Transient, nil
	case "scoped":
		return Scoped, nil
	default:
		return Singleton, fmt.Errorf("unknown lifetime %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l Lifetime) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid lifetime %d", int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Lifetime) UnmarshalText(text []byte) error {
	parsed, err := ParseLifetime(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// WithGroup adds the service to a named group.
func WithGroup(group string) RegisterOption {
	return vessel.WithGroup(group)
}

// WithMetadata adds diagnostic metadata to the registration.
func WithMetadata(key, value string) RegisterOption {
	return vessel.WithDIMetadata(key, value)
}
