package domain

import "fmt"

// LineItem pairs a catalog product with the quantity held in a cart. The
// product is referenced, not copied, so stock checks always see the
// catalog's current count.
type LineItem struct {
	Product  *Product
	Quantity int
}

// Total is the line price: unit price times quantity.
func (li LineItem) Total() float64 { return li.Product.Price() * float64(li.Quantity) }

// ShippableUnit is one physical unit awaiting shipment.
type ShippableUnit struct {
	Name     string
	WeightKg float64
}

// Cart is an insertion-ordered sequence of line items, unique per product.
// A cart is owned by the caller that built it and is not safe for
// concurrent use.
type Cart struct {
	items []LineItem
}

func NewCart() *Cart { return &Cart{} }

// Add puts qty units of p in the cart. Adding a product that is already
// present merges the quantities and revalidates the combined amount
// against current stock, so duplicate adds cannot sneak past the limit.
// The merged line moves to the end of the insertion order, matching the
// receipt ordering of the reference system.
func (c *Cart) Add(p *Product, qty int) error {
	if p == nil {
		return fmt.Errorf("%w: product is required", ErrInvalidArgument)
	}
	if qty <= 0 {
		return fmt.Errorf("%w: quantity must be positive, got %d", ErrInvalidArgument, qty)
	}
	if !p.Available(qty) {
		return fmt.Errorf("product %q: %d requested, %d in stock: %w", p.Name(), qty, p.Stock(), ErrUnavailable)
	}
	if p.Expired() {
		return fmt.Errorf("product %q: %w", p.Name(), ErrExpired)
	}

	total := qty
	at := -1
	for i, li := range c.items {
		if li.Product == p {
			total += li.Quantity
			at = i
			break
		}
	}
	if at >= 0 {
		if !p.Available(total) {
			return fmt.Errorf("product %q: combined %d requested, %d in stock: %w", p.Name(), total, p.Stock(), ErrUnavailable)
		}
		c.items = append(c.items[:at], c.items[at+1:]...)
	}
	c.items = append(c.items, LineItem{Product: p, Quantity: total})
	return nil
}

// Subtotal sums price times quantity over all line items.
func (c *Cart) Subtotal() float64 {
	var sum float64
	for _, li := range c.items {
		sum += li.Total()
	}
	return sum
}

// Empty reports whether the cart has no line items.
func (c *Cart) Empty() bool { return len(c.items) == 0 }

// ValidateAvailability re-checks every line item against current stock and
// expiry. Availability at add time does not guarantee availability at
// checkout time, so this runs again as the first checkout stage. The first
// failing item aborts the scan.
func (c *Cart) ValidateAvailability() error {
	for _, li := range c.items {
		if !li.Product.Available(li.Quantity) {
			return fmt.Errorf("product %q: %d requested, %d in stock: %w",
				li.Product.Name(), li.Quantity, li.Product.Stock(), ErrUnavailable)
		}
		if li.Product.Expired() {
			return fmt.Errorf("product %q: %w", li.Product.Name(), ErrExpired)
		}
	}
	return nil
}

// ShippableUnits expands shippable line items into one unit per quantity;
// a line of three contributes three entries. Non-shippable products
// contribute nothing. The projection is computed on demand, there is no
// separate shippable list threaded through the cart.
func (c *Cart) ShippableUnits() []ShippableUnit {
	var units []ShippableUnit
	for _, li := range c.items {
		if !li.Product.Shippable() {
			continue
		}
		for i := 0; i < li.Quantity; i++ {
			units = append(units, ShippableUnit{Name: li.Product.Name(), WeightKg: li.Product.Weight()})
		}
	}
	return units
}

// Commit reduces stock for every line item. It performs no validation of
// its own; the orchestrator invokes it only after every check has passed.
func (c *Cart) Commit() error {
	for _, li := range c.items {
		if err := li.Product.ReduceStock(li.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// Items returns a copy of the line items in insertion order so callers
// cannot mutate the cart's sequence through the view.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Clear empties the cart.
func (c *Cart) Clear() { c.items = nil }
