package hystrix

import (
	"fmt"
	"sync"
)

// group bundles the per-dependency instances: settings, pool, and breaker
// (which owns the rolling window). Groups are built lazily on first use and
// live for the process lifetime.
type group struct {
	name     string
	settings Settings
	pool     *ExecutionPool
	breaker  *Breaker
}

// Registry holds the per-group isolation state. Each group's pool, breaker,
// and window are independent; the registry lock only guards the map itself.
type Registry struct {
	mu            sync.RWMutex
	groups        map[string]*group
	pending       map[string]Settings
	onStateChange StateChangeFunc
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithStateChangeCallback registers a callback invoked on every breaker
// transition in any group.
func WithStateChangeCallback(fn StateChangeFunc) RegistryOption {
	return func(r *Registry) { r.onStateChange = fn }
}

// NewRegistry creates an empty group registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		groups:  make(map[string]*group),
		pending: make(map[string]Settings),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Configure registers settings for a group before its first use. Defaults
// are applied to unset fields. Configuring a group that has already executed
// commands is an error: its pool and window are live and are not rebuilt.
func (r *Registry) Configure(name string, settings Settings) error {
	if name == "" {
		return fmt.Errorf("hystrix: group name must not be empty")
	}
	settings.ApplyDefaults()
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("hystrix: group %q: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, live := r.groups[name]; live {
		return fmt.Errorf("hystrix: group %q is already in use", name)
	}
	r.pending[name] = settings
	return nil
}

// Settings returns the effective settings for a group and whether the group
// was explicitly configured or already materialized.
func (r *Registry) Settings(name string) (Settings, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if g, ok := r.groups[name]; ok {
		return g.settings, true
	}
	if s, ok := r.pending[name]; ok {
		return s, true
	}
	return DefaultSettings(), false
}

// State returns the breaker state for a group, or closed for a group that
// has never run.
func (r *Registry) State(name string) State {
	if g := r.lookup(name); g != nil {
		return g.breaker.State()
	}
	return StateClosed
}

// Metrics returns the rolling-window aggregate for a group, or the zero
// value for a group that has never run.
func (r *Registry) Metrics(name string) Metrics {
	if g := r.lookup(name); g != nil {
		return g.breaker.Metrics()
	}
	return Metrics{}
}

func (r *Registry) lookup(name string) *group {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.groups[name]
}

// forGroup returns the group's live instances, materializing them on first
// use from configured or default settings.
func (r *Registry) forGroup(name string) *group {
	r.mu.RLock()
	g, ok := r.groups[name]
	r.mu.RUnlock()
	if ok {
		return g
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.groups[name]; ok {
		return g
	}

	settings, ok := r.pending[name]
	if !ok {
		settings = DefaultSettings()
	}
	delete(r.pending, name)

	g = &group{
		name:     name,
		settings: settings,
		pool:     NewExecutionPool(name, settings),
		breaker:  NewBreaker(name, settings),
	}
	if r.onStateChange != nil {
		g.breaker.SetStateChangeCallback(r.onStateChange)
	}
	r.groups[name] = g
	return g
}
