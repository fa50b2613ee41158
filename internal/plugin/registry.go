// SPDX-License-Identifier: MPL-2.0

package plugin

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// DefaultRegistry holds the builtin plugins compiled into the binary.
// Builtins are registered during package initialization.
var DefaultRegistry = NewRegistry()

type (
	// Builtin is a plugin compiled into the binary.
	Builtin struct {
		// Module is the module identifier, e.g. "action_greet".
		Module string
		// Doc becomes the catalog description.
		Doc string
		// Run is the plugin entry point.
		Run func(ctx context.Context, args []Value) (Value, error)
	}

	// Registry maps module identifiers to builtins.
	// It is safe for concurrent use.
	Registry struct {
		mu       sync.RWMutex
		builtins map[string]Builtin
	}
)

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		builtins: make(map[string]Builtin),
	}
}

// Register adds a builtin to the registry.
// Panics on an empty module name, a nil entry point or a duplicate module.
func (r *Registry) Register(b Builtin) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b.Module == "" {
		panic("plugin: cannot register builtin with empty module name")
	}
	if b.Run == nil {
		panic(fmt.Sprintf("plugin: builtin %q has no run entry point", b.Module))
	}
	if _, exists := r.builtins[b.Module]; exists {
		panic(fmt.Sprintf("plugin: builtin %q already registered", b.Module))
	}
	r.builtins[b.Module] = b
}

// Lookup retrieves a builtin by module identifier.
func (r *Registry) Lookup(module string) (Builtin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.builtins[module]
	return b, ok
}

// Modules returns the identifiers of all registered builtins in sorted order.
func (r *Registry) Modules() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	modules := make([]string, 0, len(r.builtins))
	for m := range r.builtins {
		modules = append(modules, m)
	}
	sort.Strings(modules)
	return modules
}

// RegisterDefault registers a builtin in the DefaultRegistry.
// This is typically called from init() functions of builtin plugin files.
func RegisterDefault(b Builtin) {
	DefaultRegistry.Register(b)
}
