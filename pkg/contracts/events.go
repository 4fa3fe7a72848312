package contracts

import "time"

// Event is the envelope published to the reporting topic once a checkout
// attempt settles one way or the other.
type Event struct {
	EventID    string         `json:"event_id"`
	CheckoutID string         `json:"checkout_id"`
	Customer   string         `json:"customer"`
	CreatedAt  time.Time      `json:"created_at"`
	Type       string         `json:"type"`
	Payload    map[string]any `json:"payload"`
}

const (
	EventCheckoutCompleted = "checkout.completed"
	EventCheckoutRejected  = "checkout.rejected"
	EventShipmentManifest  = "shipping.manifest"
)
