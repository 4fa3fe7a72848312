// Package checkout runs the staged settlement of a cart against a
// customer's funds and the catalog's stock.
package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shoplab/checkout-go/pkg/domain"
	"github.com/shoplab/checkout-go/pkg/logging"
	"github.com/shoplab/checkout-go/pkg/shipping"
)

// Stage names the phases of a checkout. The pipeline is linear with early
// exit and no retries; nothing is mutated at or before StageBalanceCheck.
type Stage string

const (
	StageValidating   Stage = "validating"
	StagePricing      Stage = "pricing"
	StageBalanceCheck Stage = "balance_check"
	StageShipping     Stage = "shipping"
	StageCommitting   Stage = "committing"
	StageDone         Stage = "done"
)

// Orchestrator composes cart validation, pricing, balance check, shipment
// reporting and commit into one all-or-nothing operation.
type Orchestrator struct {
	shipping *shipping.Calculator
	service  string
}

func NewOrchestrator(calc *shipping.Calculator) *Orchestrator {
	return &Orchestrator{shipping: calc, service: "checkout"}
}

// Checkout settles cart against customer. On failure the returned error
// wraps a domain sentinel and neither product stock nor the customer
// balance has changed. On success the receipt reflects the committed
// purchase and the cart is cleared.
func (o *Orchestrator) Checkout(ctx context.Context, customer *domain.Customer, cart *domain.Cart) (*Receipt, error) {
	start := time.Now()
	id := uuid.NewString()

	if cart.Empty() {
		return nil, o.abort(id, customer, StageValidating, start, fmt.Errorf("nothing to purchase: %w", domain.ErrEmptyCart))
	}
	if err := cart.ValidateAvailability(); err != nil {
		return nil, o.abort(id, customer, StageValidating, start, err)
	}
	o.logStage(id, customer, StageValidating, "")

	subtotal := cart.Subtotal()
	units := cart.ShippableUnits()
	fee := o.shipping.Cost(units)
	total := subtotal + fee
	o.logStage(id, customer, StagePricing, fmt.Sprintf("subtotal=%.2f shipping=%.2f total=%.2f", subtotal, fee, total))

	// Last point before mutation: everything up to here must leave stock
	// and balance untouched.
	if !customer.CanAfford(total) {
		return nil, o.abort(id, customer, StageBalanceCheck, start,
			fmt.Errorf("total %.2f exceeds balance %.2f: %w", total, customer.Balance(), domain.ErrInsufficientFunds))
	}
	o.logStage(id, customer, StageBalanceCheck, "")

	// Shipment is reporting only; no domain state moves here.
	manifest := o.shipping.Manifest(units)
	if len(manifest) > 0 {
		o.logStage(id, customer, StageShipping, fmt.Sprintf("%d units manifested", len(units)))
	}

	// Commit order is fixed: debit the balance, then reduce stock.
	if err := customer.Deduct(total); err != nil {
		return nil, o.abort(id, customer, StageCommitting, start, err)
	}
	if err := cart.Commit(); err != nil {
		// Unreachable after ValidateAvailability in the single-threaded
		// model; surfaced so a concurrent caller would still see it.
		return nil, o.abort(id, customer, StageCommitting, start, err)
	}

	receipt := buildReceipt(id, cart, subtotal, fee, total, customer.Balance(), manifest)
	cart.Clear()
	logging.Log(logging.Fields{
		Service:    o.service,
		CheckoutID: id,
		Customer:   customer.Name(),
		Stage:      string(StageDone),
		Status:     "committed",
		DurationMS: time.Since(start).Milliseconds(),
	})
	return receipt, nil
}

func (o *Orchestrator) logStage(id string, customer *domain.Customer, stage Stage, msg string) {
	logging.Log(logging.Fields{
		Service:    o.service,
		CheckoutID: id,
		Customer:   customer.Name(),
		Stage:      string(stage),
		Status:     "ok",
		Message:    msg,
	})
}

func (o *Orchestrator) abort(id string, customer *domain.Customer, stage Stage, start time.Time, err error) error {
	logging.Log(logging.Fields{
		Service:    o.service,
		CheckoutID: id,
		Customer:   customer.Name(),
		Stage:      string(stage),
		Status:     "aborted",
		DurationMS: time.Since(start).Milliseconds(),
		Message:    err.Error(),
	})
	return err
}
