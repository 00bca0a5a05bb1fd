// Package plugins keeps the registry of optional capabilities exposed
// through the CLI. Built-in capabilities register themselves at
// startup; external callers may add their own before Execute runs.
package plugins

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Plugin describes one registered capability.
type Plugin struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Version     string `yaml:"version" json:"version"`
	Description string `yaml:"description" json:"description"`
}

// Registry is a concurrency-safe plugin catalog.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]Plugin)}
}

// Register adds a plugin under its name. Registering the same name
// twice is an error; the ID is assigned here.
func (r *Registry) Register(name, version, description string) (Plugin, error) {
	if name == "" {
		return Plugin{}, fmt.Errorf("plugin name must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plugins[name]; exists {
		return Plugin{}, fmt.Errorf("plugin %q already registered", name)
	}

	p := Plugin{
		ID:          uuid.NewString(),
		Name:        name,
		Version:     version,
		Description: description,
	}
	r.plugins[name] = p
	return p, nil
}

// Get looks a plugin up by name.
func (r *Registry) Get(name string) (Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[name]
	return p, ok
}

// List returns all plugins sorted by name.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Plugin, 0, len(r.plugins))
	for _, p := range r.plugins {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Default returns a registry pre-loaded with the built-in capabilities.
// The built-in names are fixed, so a registration failure here is a
// programming error.
func Default(version string) *Registry {
	r := NewRegistry()
	builtins := []struct{ name, description string }{
		{"introspector", "Oracle data-dictionary metadata extraction"},
		{"ddl-generator", "CREATE/ALTER/DROP script generation from metadata"},
		{"optimizer", "heuristic SQL statement analysis"},
	}
	for _, b := range builtins {
		if _, err := r.Register(b.name, version, b.description); err != nil {
			panic(err)
		}
	}
	return r
}
