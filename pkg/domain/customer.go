package domain

import (
	"fmt"
	"strings"
)

// Customer holds the purchasing funds for a checkout. The balance is
// mutated only by a successful commit and never goes negative.
type Customer struct {
	name    string
	balance float64
}

// NewCustomer builds a customer, rejecting an empty name or a negative
// opening balance.
func NewCustomer(name string, balance float64) (*Customer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: customer name is required", ErrInvalidArgument)
	}
	if balance < 0 {
		return nil, fmt.Errorf("%w: balance must be non-negative, got %v", ErrInvalidArgument, balance)
	}
	return &Customer{name: name, balance: balance}, nil
}

func (c *Customer) Name() string     { return c.name }
func (c *Customer) Balance() float64 { return c.balance }

// CanAfford reports whether the balance covers amount.
func (c *Customer) CanAfford(amount float64) bool { return c.balance >= amount }

// Deduct debits the balance. Overdraft is rejected even though the
// orchestrator checks affordability first.
func (c *Customer) Deduct(amount float64) error {
	if amount > c.balance {
		return fmt.Errorf("%w: cannot deduct %.2f from balance %.2f", ErrInvalidOperation, amount, c.balance)
	}
	c.balance -= amount
	return nil
}
