package exchange

import (
	"fmt"
	"slices"
	"sync"

	"krexchange/pkg/core"
)

// Constructor builds an exchange client from a config.
type Constructor func(config *core.Config, opts ...ClientOption) (Exchange, error)

// Registry is a thread-safe map from exchange kind to constructor.
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

// NewRegistry creates and returns a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		constructors: make(map[string]Constructor),
	}
}

// Register adds a constructor under kind.
// If a constructor with the same kind exists, it will be overwritten.
func (r *Registry) Register(kind string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructors[kind] = ctor
}

// Lookup retrieves the constructor registered under kind.
func (r *Registry) Lookup(kind string) (Constructor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ctor, exists := r.constructors[kind]
	if !exists {
		return nil, core.NewExchangeError(kind, core.ErrorTypeConfiguration, 0,
			fmt.Sprintf("exchange %q not registered", kind)).
			WithCode(core.ErrCodeUnknownKind).Wrap(core.ErrUnknownExchange)
	}
	return ctor, nil
}

// New builds a client of the given kind from a copy of config whose Exchange
// field is set to kind. The caller's config is left untouched.
func (r *Registry) New(kind string, config *core.Config, opts ...ClientOption) (Exchange, error) {
	ctor, err := r.Lookup(kind)
	if err != nil {
		return nil, err
	}
	cfg := config.Clone()
	cfg.Exchange = kind
	return ctor(cfg, opts...)
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.constructors))
	for kind := range r.constructors {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	return kinds
}

// Unregister removes the constructor registered under kind.
func (r *Registry) Unregister(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.constructors, kind)
}

