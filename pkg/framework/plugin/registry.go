package plugin

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/justyntemme/pedalgo/pkg/framework/effect"
	"github.com/justyntemme/pedalgo/pkg/framework/param"
)

// Factory builds a new, uninitialized module instance.
type Factory func() effect.Module

// Entry is one registered module type.
type Entry struct {
	Info       Info
	Parameters []param.Descriptor
	Factory    Factory
}

// Registry maps module names to their factories.
type Registry struct {
	entries map[string]Entry
}

var errDuplicateModule = errors.New("duplicate module")

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds a module type. The descriptor table is validated so that no
// registered module ships duplicate knob or CC mappings.
func (r *Registry) Register(info Info, params []param.Descriptor, factory Factory) error {
	if err := info.Validate(); err != nil {
		return err
	}
	if factory == nil {
		return errors.New("nil factory")
	}
	if err := param.Validate(params); err != nil {
		return fmt.Errorf("module %s: %w", info.Name, err)
	}

	k := key(info.Name)
	if _, exists := r.entries[k]; exists {
		return fmt.Errorf("%w: %s", errDuplicateModule, info.Name)
	}

	r.entries[k] = Entry{Info: info, Parameters: params, Factory: factory}
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(info Info, params []param.Descriptor, factory Factory) {
	if err := r.Register(info, params, factory); err != nil {
		panic("plugin registry: " + err.Error())
	}
}

// Lookup returns the entry registered under name (case-insensitive).
func (r *Registry) Lookup(name string) (Entry, bool) {
	e, ok := r.entries[key(name)]
	return e, ok
}

// New instantiates the module registered under name.
func (r *Registry) New(name string) (effect.Module, error) {
	e, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown module %q", name)
	}
	return e.Factory(), nil
}

// Entries returns all entries sorted by name.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Info.Name < out[j].Info.Name
	})
	return out
}
