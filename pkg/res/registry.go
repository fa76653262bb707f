package res

import (
	"sync"
)

// Registry caches one Engine per application symbol table, keyed by the
// table's package. It replaces a process-wide cache: independent registries
// hold independent engines.
type Registry struct {
	mu      sync.Mutex
	engines map[string]*Engine
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{engines: make(map[string]*Engine)}
}

// Engine returns the cached engine for local's package, creating it with
// system and cfg on first request. Later requests return the cached engine
// and ignore system and cfg.
func (r *Registry) Engine(local, system *SymbolTable, cfg Config) *Engine {
	key := ""
	if local != nil {
		key = local.Package
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.engines[key]; ok {
		return e
	}
	e := New(local, system, cfg)
	r.engines[key] = e
	return e
}

// Len returns the number of cached engines.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.engines)
}
