// Package kb holds the element registry: a read-mostly store of per-species
// crystallographic properties (atomic number, supported lattice families,
// default lattice constants, hcp c/a defaults).
package kb

import (
	"fmt"
	"sort"
	"sync"

	"github.com/materialsfoundry/crystal-generator/model"
)

// Registry is a thread-safe element store. It is seeded once at construction
// with the built-in species table; additional species can be registered for
// custom setups. Lookups return copies, so seeded entries cannot be mutated
// through the returned values.
type Registry struct {
	mu       sync.RWMutex
	elements map[string]model.ElementProperties
}

// NewRegistry constructs a registry seeded with the built-in species.
func NewRegistry() *Registry {
	r := &Registry{elements: make(map[string]model.ElementProperties, len(seed))}
	for _, p := range seed {
		r.elements[p.Symbol] = p
	}
	return r
}

// Element returns the properties for a species symbol (exact match, symbols
// are case-sensitive: "Cu", not "cu").
func (r *Registry) Element(symbol string) (model.ElementProperties, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.elements[symbol]
	if !ok {
		return model.ElementProperties{}, false
	}
	return p.Clone(), true
}

// Register adds a new species. It returns an error if the symbol already
// exists or the entry is malformed.
func (r *Registry) Register(p model.ElementProperties) error {
	if p.Symbol == "" {
		return fmt.Errorf("element symbol must not be empty")
	}
	if p.AtomicNumber < 1 {
		return fmt.Errorf("element %q has invalid atomic number %d", p.Symbol, p.AtomicNumber)
	}
	if len(p.LatticeConstants) == 0 {
		return fmt.Errorf("element %q supports no lattice families", p.Symbol)
	}
	for family, a := range p.LatticeConstants {
		if a <= 0 {
			return fmt.Errorf("element %q has non-positive lattice constant for %v", p.Symbol, family)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.elements[p.Symbol]; exists {
		return fmt.Errorf("element %q already registered", p.Symbol)
	}
	r.elements[p.Symbol] = p.Clone()
	return nil
}

// List returns a snapshot of all species, sorted by symbol.
func (r *Registry) List() []model.ElementProperties {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.ElementProperties, 0, len(r.elements))
	for _, p := range r.elements {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// Len returns the number of registered species.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.elements)
}
