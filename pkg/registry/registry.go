package registry

import (
	"fmt"
	"sync"

	"github.com/aretw0/typo3docs/pkg/domain"
	"github.com/aretw0/typo3docs/pkg/ports"
)

// Entry pairs an operation declaration with its handler.
type Entry struct {
	Operation domain.Operation
	Handler   ports.Handler
}

// Registry manages the available operations.
// It is filled at startup and only read afterwards; Catalog preserves registration order.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
	order   []string
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]Entry),
	}
}

// Register adds an operation to the registry.
// Registering the same name twice is a programming error and is rejected.
func (r *Registry) Register(op domain.Operation, h ports.Handler) error {
	if op.Name == "" {
		return fmt.Errorf("register: operation name is empty")
	}
	if h == nil {
		return fmt.Errorf("register %s: handler is nil", op.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[op.Name]; exists {
		return fmt.Errorf("register %s: operation already registered", op.Name)
	}
	r.entries[op.Name] = Entry{Operation: op, Handler: h}
	r.order = append(r.order, op.Name)
	return nil
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (Entry, error) {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", domain.ErrUnknownOperation, name)
	}
	return e, nil
}

// Catalog returns the declared operations in registration order.
func (r *Registry) Catalog() []domain.Operation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ops := make([]domain.Operation, 0, len(r.order))
	for _, name := range r.order {
		ops = append(ops, r.entries[name].Operation)
	}
	return ops
}
