// internal/demos/registry.go
package demos

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

// ErrNotFound is returned by consumers that need an error for an unknown demo id.
var ErrNotFound = errors.New("demo not found")

// Registry maps demo ids to factories. Safe for concurrent use.
//
// Registration is permissive: an empty id is stored as-is and registering an id
// again replaces the previous entry without an error.
type Registry struct {
	mu      sync.RWMutex
	log     zerolog.Logger
	entries map[string]Entry
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide registry, creating it on first use.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = NewRegistry(zerolog.Nop())
	})
	return defaultReg
}

func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{
		log:     log.With().Str("component", "registry").Logger(),
		entries: map[string]Entry{},
	}
}

func (r *Registry) Register(id, displayName, description string, f Factory) {
	r.mu.Lock()
	_, replaced := r.entries[id]
	r.entries[id] = Entry{ID: id, DisplayName: displayName, Description: description, Factory: f}
	r.mu.Unlock()

	r.log.Debug().Str("id", id).Bool("replaced", replaced).Msg("demo registered")
}

// RegisterModules runs every module's registration in order.
func (r *Registry) RegisterModules(mods ...Module) {
	for _, m := range mods {
		m.Register(r)
	}
	r.log.Debug().Int("modules", len(mods)).Int("demos", r.Len()).Msg("modules registered")
}

// List returns a snapshot of all entries. Order is unspecified.
func (r *Registry) List() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	return out
}

func (r *Registry) Get(id string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	return e, ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Create builds a new demo for id. It reports false for unknown ids and for
// entries whose factory is nil or returns nil.
func (r *Registry) Create(id string) (Demo, bool) {
	e, ok := r.Get(id)
	if !ok || e.Factory == nil {
		return nil, false
	}
	d := e.Factory()
	if d == nil {
		return nil, false
	}
	return d, true
}
