package domain

import "errors"

// Failure taxonomy for the checkout flow. Every domain error wraps one of
// these sentinels so callers can classify failures with errors.Is while
// the message still names the product or amount involved.
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrUnavailable       = errors.New("quantity not available")
	ErrExpired           = errors.New("product expired")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidOperation  = errors.New("invalid operation")
)
