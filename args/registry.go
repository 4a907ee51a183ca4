package args

import (
	"errors"
	"sync"
)

// Predicate selects the types a Converter is responsible for.
type Predicate func(Type) bool

// Converter turns a raw token into the payload of a Value.
type Converter func(string) (any, error)

type converterEntry struct {
	predicate Predicate
	converter Converter
}

// Registry resolves types outside the built-in set. Lookup walks entries in
// registration order and the first matching predicate wins, so specific
// predicates must be registered before general ones.
type Registry struct {
	mu      sync.RWMutex
	entries []converterEntry
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Register(predicate Predicate, converter Converter) error {
	if predicate == nil || converter == nil {
		return errors.New("args: predicate and converter must not be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, converterEntry{
		predicate: predicate,
		converter: converter,
	})
	return nil
}

// RegisterType registers a converter for exactly one type.
func (r *Registry) RegisterType(t Type, converter Converter) error {
	return r.Register(func(other Type) bool { return other == t }, converter)
}

func (r *Registry) Lookup(t Type) (Converter, bool) {
	if r == nil {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, entry := range r.entries {
		if entry.predicate(t) {
			return entry.converter, true
		}
	}

	return nil, false
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}
