package pipedef

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/kbukum/pipey/errors"
	"github.com/kbukum/pipey/pipeline"
)

// Params carries the arguments of one StageDef to its factory.
type Params struct {
	Args []int
	Seed *int
}

// Factory builds a stage from description parameters.
type Factory func(p Params) (pipeline.Stage, error)

type opKey struct {
	kind pipeline.Kind
	op   string
}

// Registry maps (kind, op) pairs to stage factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[opKey]Factory
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[opKey]Factory)}
}

// Register adds a factory, replacing any previous one for the same pair.
func (r *Registry) Register(kind pipeline.Kind, op string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[opKey{kind: kind, op: op}] = f
}

// Lookup returns the factory for kind and op, or a NOT_FOUND error.
func (r *Registry) Lookup(kind pipeline.Kind, op string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[opKey{kind: kind, op: op}]
	if !ok {
		return nil, errors.NotFound("operation", fmt.Sprintf("%s/%s", kind, op))
	}
	return f, nil
}

// List returns sorted "kind/op" names of all registered factories.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for k := range r.factories {
		names = append(names, k.kind.String()+"/"+k.op)
	}
	slices.SortFunc(names, strings.Compare)
	return names
}
