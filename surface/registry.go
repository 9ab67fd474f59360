// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"sort"
	"sync"

	"github.com/gogpu/fldraw"
)

// BackendFactory creates a backend for a surface of the given options.
// Implementations should validate options and return descriptive errors.
type BackendFactory func(opts Options) (fldraw.Backend, error)

// RegistryEntry represents a registered backend.
type RegistryEntry struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority determines selection order (higher = preferred).
	// Standard priorities:
	//   - 100: native screen backends
	//   - 50: printer and export backends
	//   - 10: in-memory backends
	Priority int

	// Factory creates backend instances.
	Factory BackendFactory

	// Available reports if the backend is available on this system.
	Available func() bool
}

// globalRegistry is the default registry.
var globalRegistry = &Registry{}

// Registry manages registered backends, so platform packages can provide
// one without changes to the drawing core.
//
// Example registration:
//
//	func init() {
//	    surface.Register("x11", 100, x11Factory, x11Available)
//	}
//
// Example usage:
//
//	s, err := surface.Open("x11", surface.Options{Width: 800, Height: 600, Scale: 1.5})
//	// or auto-select best available:
//	s, err := surface.OpenBest(surface.Options{Width: 800, Height: 600})
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// NewRegistry creates a new empty registry.
// Most code should use the global registry via Register and Open.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*RegistryEntry),
	}
}

// Register adds a backend to the global registry.
//
// If available is nil, the backend is assumed always available.
// Registering a name that already exists replaces the previous entry.
func Register(name string, priority int, factory BackendFactory, available func() bool) {
	globalRegistry.Register(name, priority, factory, available)
}

// Unregister removes a backend from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// List returns all registered backend names sorted by priority (highest first).
func List() []string {
	return globalRegistry.List()
}

// Available returns names of all available backends sorted by priority.
func Available() []string {
	return globalRegistry.Available()
}

// Get returns information about a specific backend.
func Get(name string) (*RegistryEntry, bool) {
	return globalRegistry.Get(name)
}

// Open creates a surface on the named backend of the global registry.
func Open(name string, opts Options, driverOpts ...fldraw.Option) (*Surface, error) {
	return globalRegistry.Open(name, opts, driverOpts...)
}

// OpenBest creates a surface on the best available backend of the global
// registry.
func OpenBest(opts Options, driverOpts ...fldraw.Option) (*Surface, error) {
	return globalRegistry.OpenBest(opts, driverOpts...)
}

// Register adds a backend to this registry.
func (r *Registry) Register(name string, priority int, factory BackendFactory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[string]*RegistryEntry)
	}
	if available == nil {
		available = func() bool { return true }
	}
	r.entries[name] = &RegistryEntry{
		Name:      name,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// Unregister removes a backend from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// List returns all registered backend names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(false)
}

// Available returns names of all available backends sorted by priority.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(true)
}

// Get returns information about a specific backend.
func (r *Registry) Get(name string) (*RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	// Return a copy to prevent modification
	entryCopy := *entry
	return &entryCopy, true
}

// OpenBest creates a surface using the best available backend.
func (r *Registry) OpenBest(opts Options, driverOpts ...fldraw.Option) (*Surface, error) {
	r.mu.RLock()
	available := r.sortedNames(true)
	r.mu.RUnlock()

	if len(available) == 0 {
		return nil, ErrNoBackendAvailable
	}
	var lastErr error
	for _, name := range available {
		s, err := r.Open(name, opts, driverOpts...)
		if err == nil {
			return s, nil
		}
		fldraw.Logger().Debug("surface: backend failed", "backend", name, "err", err)
		lastErr = err
	}
	return nil, lastErr
}

// Open creates a surface using a specific backend.
func (r *Registry) Open(name string, opts Options, driverOpts ...fldraw.Option) (*Surface, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}
	if !entry.Available() {
		return nil, &BackendUnavailableError{Name: name}
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	b, err := entry.Factory(opts)
	if err != nil {
		return nil, err
	}
	return New(b, opts.Scale, driverOpts...), nil
}

// sortedNames returns backend names sorted by priority (highest first),
// ties by name. If onlyAvailable is true, filters to available backends
// only. Must be called with lock held.
func (r *Registry) sortedNames(onlyAvailable bool) []string {
	if len(r.entries) == 0 {
		return nil
	}

	type entry struct {
		name     string
		priority int
	}

	entries := make([]entry, 0, len(r.entries))
	for name, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		entries = append(entries, entry{name: name, priority: e.Priority})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].priority != entries[j].priority {
			return entries[i].priority > entries[j].priority
		}
		return entries[i].name < entries[j].name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// Errors.
var (
	// ErrNoBackendAvailable is returned when no backends are registered
	// or available on the current system.
	ErrNoBackendAvailable = errors.New("surface: no backend available")

	// ErrInvalidOptions is returned for a non-positive size or scale.
	ErrInvalidOptions = errors.New("surface: invalid options")
)

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "surface: backend not found: " + e.Name
}

// BackendUnavailableError indicates a backend exists but is not available.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "surface: backend unavailable: " + e.Name
}

// init registers the built-in offscreen backend.
func init() {
	Register("offscreen", 10, func(opts Options) (fldraw.Backend, error) {
		return fldraw.NewOffscreen(opts.DeviceSize()), nil
	}, nil)
}
