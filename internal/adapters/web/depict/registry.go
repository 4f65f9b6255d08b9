package depict

import (
	"fmt"
	"sync"

	"github.com/jsamuelsen11/guise/internal/domain"
	"github.com/jsamuelsen11/guise/internal/domain/component"
)

// Factory creates a depictor for one component.
type Factory func() Depictor

// Registry maps component classes to depictor factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[*domain.Class]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[*domain.Class]Factory)}
}

// DefaultRegistry returns a registry with depictors for every component
// class of the component package.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(component.ClassComponent, func() Depictor { return &emptyDepictor{} })
	r.Register(component.ClassContainer, func() Depictor { return &panelDepictor{} })
	r.Register(component.ClassFrame, func() Depictor { return &frameDepictor{} })
	r.Register(component.ClassCardPanel, func() Depictor { return &cardPanelDepictor{} })
	r.Register(component.ClassLabel, func() Depictor { return &labelDepictor{} })
	r.Register(component.ClassMessage, func() Depictor { return &messageDepictor{} })
	r.Register(component.ClassImage, func() Depictor { return &imageDepictor{} })
	r.Register(component.ClassButton, func() Depictor { return &buttonDepictor{} })
	r.Register(component.ClassTextControl, func() Depictor { return &textDepictor{} })
	r.Register(component.ClassCheckControl, func() Depictor { return &checkDepictor{} })
	r.Register(component.ClassSelectControl, func() Depictor { return &tabDepictor{} })
	r.Register(component.ClassTable, func() Depictor { return &tableDepictor{} })
	r.Register(component.ClassResourceCollectControl, func() Depictor { return &resourceCollectDepictor{} })
	return r
}

// Register installs f for components of class and its descendants that have
// no more specific registration.
func (r *Registry) Register(class *domain.Class, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[class] = f
}

// Lookup returns the factory registered for the most specific class in the
// ancestry of class.
func (r *Registry) Lookup(class *domain.Class) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range class.Ancestry() {
		if f, ok := r.factories[c]; ok {
			return f, nil
		}
	}
	return nil, fmt.Errorf("no depictor for class %v: %w", class, domain.ErrNotFound)
}
