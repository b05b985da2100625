// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package table

import (
	"fmt"
	"sync"
)

// Registry indexes definitions by name and by model.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	ordered []*Definition
	byName  map[string]*Definition
	byModel map[string]*Definition
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:  make(map[string]*Definition),
		byModel: make(map[string]*Definition),
	}
}

// Register adds definition. Names and models must be unique.
func (r *Registry) Register(definition *Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[definition.Name()]; exists {
		return fmt.Errorf("table: %s is already registered", definition.Name())
	}

	if model := definition.Model(); model != "" {
		if other, exists := r.byModel[model]; exists {
			return fmt.Errorf("table: model %q is already listed by %s", model, other.Name())
		}
		r.byModel[model] = definition
	}

	r.byName[definition.Name()] = definition
	r.ordered = append(r.ordered, definition)
	return nil
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	definition, ok := r.byName[name]
	return definition, ok
}

// ForModel returns the definition listing model.
func (r *Registry) ForModel(model string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	definition, ok := r.byModel[model]
	return definition, ok
}

// All returns the definitions in registration order.
func (r *Registry) All() []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]*Definition(nil), r.ordered...)
}
