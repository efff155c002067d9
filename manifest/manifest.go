// Package manifest describes registrations declaratively and applies them to
// a container with try semantics, so a manifest can be applied on top of
// registrations made in code without clobbering them.
//
// A manifest names providers rather than constructors. Providers are looked
// up in a Catalog that the application fills in code.
//
//	include:
//	  - conf.d/**/*.yaml
//	services:
//	  - key: cache
//	    provider: redis-cache
//	    lifetime: singleton
//	    as: [kv]
//	entrypoints:
//	  - key: ticker
//	    provider: ticker
//	components:
//	  - key: hud
//	    provider: hud
//	    parent: ui/root
//	    name: HUD
package manifest

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/xraph/vesselx"
)

// Section names used in reports and errors.
const (
	SectionServices    = "services"
	SectionEntryPoints = "entrypoints"
	SectionComponents  = "components"
)

// json mirrors the YAML decoder's KnownFields: unknown keys are rejected.
var json = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	DisallowUnknownFields:  true,
}.Froze()

// Format is a manifest encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension. Anything other than
// .json is read as YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Binding declares one registration.
type Binding struct {
	// Key is the container name the provider is bound under.
	Key string `yaml:"key" json:"key"`
	// As lists extra names that resolve to the same instance.
	As       []string          `yaml:"as,omitempty" json:"as,omitempty"`
	Provider string            `yaml:"provider" json:"provider"`
	Lifetime vesselx.Lifetime  `yaml:"lifetime,omitempty" json:"lifetime,omitempty"`
	Groups   []string          `yaml:"groups,omitempty" json:"groups,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty" json:"metadata,omitempty"`
}

// Component declares a component attached under a parent node.
type Component struct {
	Binding `yaml:",inline"`
	Parent  string `yaml:"parent,omitempty" json:"parent,omitempty"`
	Name    string `yaml:"name,omitempty" json:"name,omitempty"`
}

// Manifest is a set of declarative registrations.
type Manifest struct {
	Include     []string    `yaml:"include,omitempty" json:"include,omitempty"`
	Services    []Binding   `yaml:"services,omitempty" json:"services,omitempty"`
	EntryPoints []Binding   `yaml:"entrypoints,omitempty" json:"entrypoints,omitempty"`
	Components  []Component `yaml:"components,omitempty" json:"components,omitempty"`
}

// Parse decodes a single manifest document. Includes are not followed.
func Parse(data []byte, format Format) (*Manifest, error) {
	m := &Manifest{}

	switch format {
	case FormatJSON:
		if len(bytes.TrimSpace(data)) == 0 {
			return m, nil
		}
		if err := json.Unmarshal(data, m); err != nil {
			return nil, ErrInvalidManifest(string(format), "decode", err)
		}
	case FormatYAML, "":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(m); err != nil && !errors.Is(err, io.EOF) {
			return nil, ErrInvalidManifest(string(FormatYAML), "decode", err)
		}
	default:
		return nil, ErrInvalidManifest(string(format), "unsupported format", nil)
	}

	return m, nil
}

// Load reads the manifest at path and every manifest it includes. Include
// patterns are doublestar globs relative to the including file; matches load
// in sorted order after the including file's own bindings. A file is loaded
// at most once, so include cycles are harmless.
func Load(path string) (*Manifest, error) {
	return load(path, make(map[string]bool))
}

func load(path string, visited map[string]bool) (*Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, ErrInvalidManifest(path, "resolve path", err)
	}

	if visited[abs] {
		return &Manifest{}, nil
	}
	visited[abs] = true

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, ErrInvalidManifest(path, "read", err)
	}

	m, err := Parse(data, FormatFromPath(abs))
	if err != nil {
		return nil, ErrInvalidManifest(path, "parse", err)
	}

	for _, pattern := range m.Include {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(filepath.Dir(abs), pattern)
		}

		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, ErrInvalidManifest(path, "include "+pattern, err)
		}
		sort.Strings(matches)

		for _, match := range matches {
			sub, err := load(match, visited)
			if err != nil {
				return nil, err
			}
			m.merge(sub)
		}
	}

	return m, nil
}

func (m *Manifest) merge(other *Manifest) {
	m.Services = append(m.Services, other.Services...)
	m.EntryPoints = append(m.EntryPoints, other.EntryPoints...)
	m.Components = append(m.Components, other.Components...)
}

// Validate reports the first malformed binding.
func (m *Manifest) Validate() error {
	for i, b := range m.Services {
		if err := b.validate(SectionServices, i); err != nil {
			return err
		}
	}
	for i, b := range m.EntryPoints {
		if err := b.validate(SectionEntryPoints, i); err != nil {
			return err
		}
	}
	for i, c := range m.Components {
		if err := c.validate(SectionComponents, i); err != nil {
			return err
		}
	}
	return nil
}

func (b Binding) validate(section string, index int) error {
	if strings.TrimSpace(b.Key) == "" {
		return ErrInvalidBinding(section, index, "key is required")
	}
	if strings.TrimSpace(b.Provider) == "" {
		return ErrInvalidBinding(section, index, "provider is required")
	}
	if !b.Lifetime.Valid() {
		return ErrInvalidBinding(section, index, "invalid lifetime")
	}
	if b.Lifetime == vesselx.Scoped && len(b.As) > 0 {
		return ErrInvalidBinding(section, index, "scoped bindings cannot have aliases")
	}

	seen := map[string]bool{b.Key: true}
	for _, as := range b.As {
		if strings.TrimSpace(as) == "" {
			return ErrInvalidBinding(section, index, "empty alias")
		}
		if seen[as] {
			return ErrInvalidBinding(section, index, "alias '"+as+"' repeats a key")
		}
		seen[as] = true
	}

	return nil
}

// Len returns the number of bindings across all sections.
func (m *Manifest) Len() int {
	return len(m.Services) + len(m.EntryPoints) + len(m.Components)
}
