package provider

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Factory constructs an unconfigured provider.
type Factory func() Provider

// Registry maps provider names to their constructors
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	keyed     map[string]bool
}

// NewRegistry creates a new provider registry
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		keyed:     make(map[string]bool),
	}
}

// Register adds a provider constructor. requiresKey marks providers that
// refuse to work without an api_key.
func (r *Registry) Register(name string, factory Factory, requiresKey bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("provider %s already registered", name)
	}
	r.factories[name] = factory
	r.keyed[name] = requiresKey
	return nil
}

// Has reports whether name is registered
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// RequiresKey reports whether the named provider needs an api_key
func (r *Registry) RequiresKey(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.keyed[name]
}

// List returns all registered provider names, sorted
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds and configures the named provider
func (r *Registry) New(name string, config map[string]interface{}) (Provider, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("provider %s not found", name)
	}

	p := factory()
	if err := p.Configure(config); err != nil {
		return nil, fmt.Errorf("failed to configure provider %s: %w", name, err)
	}
	return p, nil
}

// Lazy returns a provider that is built and configured on first Fetch.
// Backends that log in during Configure stay offline for runs that never
// look anything up.
func (r *Registry) Lazy(name string, config map[string]interface{}) Provider {
	return &lazyProvider{name: name, build: func() (Provider, error) { return r.New(name, config) }}
}

type lazyProvider struct {
	name  string
	build func() (Provider, error)

	once sync.Once
	p    Provider
	err  error
}

func (l *lazyProvider) Name() string { return l.name }

func (l *lazyProvider) Description() string {
	if p, err := l.get(); err == nil {
		return p.Description()
	}
	return l.name
}

func (l *lazyProvider) Configure(map[string]interface{}) error {
	return fmt.Errorf("provider %s is configured on first use", l.name)
}

func (l *lazyProvider) Fetch(ctx context.Context, request FetchRequest) (*Metadata, error) {
	p, err := l.get()
	if err != nil {
		return nil, err
	}
	return p.Fetch(ctx, request)
}

func (l *lazyProvider) get() (Provider, error) {
	l.once.Do(func() { l.p, l.err = l.build() })
	return l.p, l.err
}
