// Package preset loads named One Euro parameter sets from TOML or YAML.
//
// A file maps preset names to parameter tables. Fields left out of a table
// keep their oneeuro.DefaultParams value:
//
//	[hand]
//	min_cutoff = 0.5
//	beta = 4.0
//
//	[head]
//	min_cutoff = 1.0
//	beta = 0.6
//	derivative_cutoff = 1.0
package preset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cwbudde/algo-smooth/dsp/filter/oneeuro"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format selects the preset file encoding.
type Format int

const (
	// FormatTOML decodes TOML tables.
	FormatTOML Format = iota
	// FormatYAML decodes a YAML mapping.
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// ErrUnknownPreset is returned by Set.Get for names that are not defined.
var ErrUnknownPreset = errors.New("preset: unknown preset")

// Set maps preset names to parameters.
type Set map[string]oneeuro.Params

// Get returns the parameters stored under name.
func (s Set) Get(name string) (oneeuro.Params, error) {
	p, ok := s[name]
	if !ok {
		return oneeuro.Params{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p, nil
}

// Names returns the preset names in sorted order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtin returns the presets shipped with the library.
func Builtin() Set {
	return Set{
		"default":    oneeuro.DefaultParams(),
		"hand":       {MinCutoff: 0.5, Beta: 4, DerivativeCutoff: 1},
		"head":       {MinCutoff: 1, Beta: 0.6, DerivativeCutoff: 1},
		"controller": {MinCutoff: 2, Beta: 2, DerivativeCutoff: 1},
	}
}

type entry struct {
	MinCutoff        *float64 `toml:"min_cutoff" yaml:"min_cutoff"`
	Beta             *float64 `toml:"beta" yaml:"beta"`
	DerivativeCutoff *float64 `toml:"derivative_cutoff" yaml:"derivative_cutoff"`
}

func (e entry) params() oneeuro.Params {
	p := oneeuro.DefaultParams()
	if e.MinCutoff != nil {
		p.MinCutoff = *e.MinCutoff
	}
	if e.Beta != nil {
		p.Beta = *e.Beta
	}
	if e.DerivativeCutoff != nil {
		p.DerivativeCutoff = *e.DerivativeCutoff
	}
	return p
}

// Decode reads presets from r. Unknown fields are rejected and every preset
// is validated.
func Decode(r io.Reader, format Format) (Set, error) {
	raw := map[string]entry{}

	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("preset: decode toml: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("preset: decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("preset: unsupported format: %d", format)
	}

	if len(raw) == 0 {
		return nil, errors.New("preset: no presets defined")
	}

	set := make(Set, len(raw))
	for name, e := range raw {
		if strings.TrimSpace(name) == "" {
			return nil, errors.New("preset: empty preset name")
		}
		p := e.params()
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
		set[name] = p
	}

	return set, nil
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("preset: unsupported file extension: %q", filepath.Ext(path))
	}
}

// LoadFile reads presets from path, choosing the format by extension.
func LoadFile(path string) (Set, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("preset: %w", err)
	}
	defer f.Close()

	return Decode(f, format)
}

// Merge returns a new set holding base overlaid with override.
func Merge(base, override Set) Set {
	out := make(Set, len(base)+len(override))
	for name, p := range base {
		out[name] = p
	}
	for name, p := range override {
		out[name] = p
	}
	return out
}
