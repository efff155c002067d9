package manifest

import (
	"sort"

	"github.com/xraph/vesselx"
)

// Catalog maps provider names used in manifests to factories.
type Catalog struct {
	providers map[string]vesselx.Factory
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{providers: make(map[string]vesselx.Factory)}
}

// Add registers a provider. Names are unique.
func (c *Catalog) Add(name string, factory vesselx.Factory) error {
	if factory == nil {
		return vesselx.ErrInvalidFactory
	}
	if _, exists := c.providers[name]; exists {
		return ErrProviderExists(name)
	}
	c.providers[name] = factory
	return nil
}

// MustAdd is like Add but panics on error. Use only during startup.
func (c *Catalog) MustAdd(name string, factory vesselx.Factory) *Catalog {
	if err := c.Add(name, factory); err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the factory for name.
func (c *Catalog) Lookup(name string) (vesselx.Factory, bool) {
	f, ok := c.providers[name]
	return f, ok
}

// Names returns the sorted provider names.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.providers))
	for name := range c.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
