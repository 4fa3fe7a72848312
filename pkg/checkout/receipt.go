package checkout

import (
	"time"

	"github.com/shoplab/checkout-go/pkg/domain"
)

// ReceiptLine is one purchased line item as it appears on the receipt, in
// cart insertion order.
type ReceiptLine struct {
	Quantity  int     `json:"quantity"`
	Name      string  `json:"name"`
	LineTotal float64 `json:"line_total"`
}

// Receipt summarizes a committed checkout for the reporting boundary.
// It is a plain value; nothing retains it after return.
type Receipt struct {
	ID           string        `json:"id"`
	Lines        []ReceiptLine `json:"lines"`
	Subtotal     float64       `json:"subtotal"`
	ShippingFee  float64       `json:"shipping_fee"`
	Total        float64       `json:"total"`
	BalanceAfter float64       `json:"balance_after"`
	Manifest     []string      `json:"manifest,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

func buildReceipt(id string, cart *domain.Cart, subtotal, fee, total, balanceAfter float64, manifest []string) *Receipt {
	items := cart.Items()
	lines := make([]ReceiptLine, 0, len(items))
	for _, li := range items {
		lines = append(lines, ReceiptLine{Quantity: li.Quantity, Name: li.Product.Name(), LineTotal: li.Total()})
	}
	return &Receipt{
		ID:           id,
		Lines:        lines,
		Subtotal:     subtotal,
		ShippingFee:  fee,
		Total:        total,
		BalanceAfter: balanceAfter,
		Manifest:     manifest,
		CreatedAt:    time.Now().UTC(),
	}
}
