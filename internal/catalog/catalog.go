// Package catalog keeps the in-process product registry shared by the
// binaries. Products are handed out by reference, so a committed checkout
// is visible to every cart holding the same entry.
package catalog

import (
	"errors"
	"fmt"
	"sync"

	"github.com/shoplab/checkout-go/pkg/domain"
)

// ErrNotFound is returned when a requested product name is not registered.
var ErrNotFound = errors.New("product not found")

// Catalog is a name-keyed registry. Reads dominate after startup; a
// RWMutex is enough for the single-process model.
type Catalog struct {
	mu       sync.RWMutex
	order    []string
	products map[string]*domain.Product
}

func New() *Catalog {
	return &Catalog{products: make(map[string]*domain.Product)}
}

// Register adds a product under its name. Registering a name twice is
// rejected; restocking is out of scope here.
func (c *Catalog) Register(p *domain.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.products[p.Name()]; ok {
		return fmt.Errorf("%w: product %q already registered", domain.ErrInvalidArgument, p.Name())
	}
	c.order = append(c.order, p.Name())
	c.products[p.Name()] = p
	return nil
}

// Lookup resolves a product by name.
func (c *Catalog) Lookup(name string) (*domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[name]
	if !ok {
		return nil, fmt.Errorf("product %q: %w", name, ErrNotFound)
	}
	return p, nil
}

// List returns products in registration order.
func (c *Catalog) List() []*domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*domain.Product, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.products[name])
	}
	return out
}
