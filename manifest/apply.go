package manifest

import (
	"sort"

	"github.com/xraph/vesselx"
)

// Entry records what Apply did with one binding.
type Entry struct {
	Section  string   `yaml:"section" json:"section"`
	Keys     []string `yaml:"keys" json:"keys"`
	Provider string   `yaml:"provider" json:"provider"`
	Lifetime string   `yaml:"lifetime" json:"lifetime"`
	Outcome  string   `yaml:"outcome" json:"outcome"`
	// Taken is the key that caused a skip.
	Taken string `yaml:"taken,omitempty" json:"taken,omitempty"`
}

// Report lists the outcome of every binding in document order.
type Report struct {
	Entries []Entry `yaml:"entries" json:"entries"`
}

// Registered returns the primary keys that were bound.
func (r *Report) Registered() []string {
	return r.keys(vesselx.OutcomeRegistered)
}

// Skipped returns the primary keys that were already taken.
func (r *Report) Skipped() []string {
	return r.keys(vesselx.OutcomeSkipped)
}

func (r *Report) keys(o vesselx.Outcome) []string {
	var keys []string
	for _, e := range r.Entries {
		if e.Outcome == o.String() {
			keys = append(keys, e.Keys[0])
		}
	}
	return keys
}

type planned struct {
	section  string
	provider string
	binding  vesselx.Binding
}

// Apply try-registers every binding of m into r in document order: services,
// then entry points, then components. Bindings whose keys are already taken,
// including by an earlier binding of the same manifest, are skipped.
//
// The manifest is validated and every provider resolved before anything is
// registered, so a bad manifest leaves r untouched. A container error stops
// Apply and is returned with the report so far.
func Apply(r vesselx.Registry, catalog *Catalog, m *Manifest) (*Report, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	plan, err := buildPlan(catalog, m)
	if err != nil {
		return nil, err
	}

	report := &Report{Entries: make([]Entry, 0, len(plan))}
	for _, p := range plan {
		entry := Entry{
			Section:  p.section,
			Keys:     vesselx.Keys(p.binding.Keys...),
			Provider: p.provider,
			Lifetime: p.binding.Lifetime.String(),
		}

		ok, err := vesselx.TryBind(r, p.binding)
		if err != nil {
			entry.Outcome = vesselx.OutcomeFailed.String()
			report.Entries = append(report.Entries, entry)
			return report, err
		}

		if ok {
			entry.Outcome = vesselx.OutcomeRegistered.String()
		} else {
			entry.Outcome = vesselx.OutcomeSkipped.String()
			if taken, found := vesselx.FirstTaken(r, p.binding.Keys...); found {
				entry.Taken = taken.Name()
			}
		}
		report.Entries = append(report.Entries, entry)
	}

	return report, nil
}

func buildPlan(catalog *Catalog, m *Manifest) ([]planned, error) {
	plan := make([]planned, 0, m.Len())

	add := func(section string, b Binding, extra []vesselx.RegisterOption) error {
		factory, ok := catalog.Lookup(b.Provider)
		if !ok {
			return ErrUnknownProvider(b.Provider, b.Key)
		}

		binding := vesselx.Bind(factory, b.Lifetime, keysOf(b)...).
			WithOptions(bindingOptions(b)...).
			WithOptions(extra...)

		plan = append(plan, planned{section: section, provider: b.Provider, binding: binding})
		return nil
	}

	for _, b := range m.Services {
		if err := add(SectionServices, b, nil); err != nil {
			return nil, err
		}
	}
	for _, b := range m.EntryPoints {
		if err := add(SectionEntryPoints, b, []vesselx.RegisterOption{vesselx.AsEntryPoint()}); err != nil {
			return nil, err
		}
	}
	for _, c := range m.Components {
		if err := add(SectionComponents, c.Binding, vesselx.ComponentOptions(c.Parent, c.Name)); err != nil {
			return nil, err
		}
	}

	return plan, nil
}

func keysOf(b Binding) []vesselx.Key {
	keys := []vesselx.Key{vesselx.NameKey(b.Key)}
	for _, as := range b.As {
		keys = append(keys, vesselx.NameKey(as))
	}
	return keys
}

func bindingOptions(b Binding) []vesselx.RegisterOption {
	var opts []vesselx.RegisterOption
	for _, g := range b.Groups {
		opts = append(opts, vesselx.WithGroup(g))
	}

	names := make([]string, 0, len(b.Metadata))
	for k := range b.Metadata {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		opts = append(opts, vesselx.WithMetadata(k, b.Metadata[k]))
	}

	return opts
}
