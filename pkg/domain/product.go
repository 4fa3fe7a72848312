package domain

import (
	"fmt"
	"strings"
	"time"
)

// Product is a catalog entry. Instances are shared by reference between
// the catalog and every cart that holds them, so a committed checkout is
// visible to all holders. Stock moves only through ReduceStock.
//
// Perishability and shippability are independent traits carried as
// optional fields rather than subtypes; dispatch happens on trait
// presence.
type Product struct {
	name  string
	price float64
	stock int

	expiresAt time.Time
	expiring  bool

	weightKg  float64
	shippable bool
}

// Option configures a capability trait at construction time.
type Option func(*Product) error

// ExpiresOn marks the product as perishable with the given use-by instant.
func ExpiresOn(t time.Time) Option {
	return func(p *Product) error {
		p.expiresAt = t
		p.expiring = true
		return nil
	}
}

// WithWeight marks the product as physically shippable. Weight is in
// kilograms and must be positive.
func WithWeight(kg float64) Option {
	return func(p *Product) error {
		if kg <= 0 {
			return fmt.Errorf("%w: weight must be positive, got %v", ErrInvalidArgument, kg)
		}
		p.weightKg = kg
		p.shippable = true
		return nil
	}
}

// NewProduct builds a catalog entry, rejecting malformed input.
func NewProduct(name string, price float64, stock int, opts ...Option) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrInvalidArgument)
	}
	if price < 0 {
		return nil, fmt.Errorf("%w: price must be non-negative, got %v", ErrInvalidArgument, price)
	}
	if stock < 0 {
		return nil, fmt.Errorf("%w: stock must be non-negative, got %d", ErrInvalidArgument, stock)
	}
	p := &Product{name: name, price: price, stock: stock}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Product) Name() string   { return p.name }
func (p *Product) Price() float64 { return p.price }
func (p *Product) Stock() int     { return p.stock }

// Available reports whether qty units can currently be sold.
func (p *Product) Available(qty int) bool { return qty <= p.stock }

// Expired is evaluated against the clock at call time, never cached, so a
// product can turn expired between being added to a cart and checkout.
// Non-perishable products never expire.
func (p *Product) Expired() bool {
	if !p.expiring {
		return false
	}
	return time.Now().After(p.expiresAt)
}

// Shippable reports whether the product requires physical shipment.
func (p *Product) Shippable() bool { return p.shippable }

// Weight returns the shipping weight in kilograms, zero when the product
// is not shippable.
func (p *Product) Weight() float64 { return p.weightKg }

// ReduceStock is the only stock mutator. Callers are expected to have
// validated availability; underflow is still rejected.
func (p *Product) ReduceStock(qty int) error {
	if qty > p.stock {
		return fmt.Errorf("%w: cannot take %d of %q, only %d in stock", ErrInvalidOperation, qty, p.name, p.stock)
	}
	p.stock -= qty
	return nil
}
