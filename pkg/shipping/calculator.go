// Package shipping prices and documents the physical shipment of checkout
// units.
package shipping

import (
	"fmt"

	"github.com/shoplab/checkout-go/pkg/domain"
)

// DefaultRatePerKg is the reference shipping price of 2.0 per kilogram.
const DefaultRatePerKg = 2.0

// Calculator derives shipping fees from aggregate weight. The rate is
// configuration, not a constant baked into the math.
type Calculator struct {
	ratePerKg float64
}

func NewCalculator(ratePerKg float64) (*Calculator, error) {
	if ratePerKg < 0 {
		return nil, fmt.Errorf("%w: rate per kg must be non-negative, got %v", domain.ErrInvalidArgument, ratePerKg)
	}
	return &Calculator{ratePerKg: ratePerKg}, nil
}

// TotalWeight sums unit weights in kilograms.
func (c *Calculator) TotalWeight(units []domain.ShippableUnit) float64 {
	var total float64
	for _, u := range units {
		total += u.WeightKg
	}
	return total
}

// Cost is total weight times the configured rate.
func (c *Calculator) Cost(units []domain.ShippableUnit) float64 {
	return c.TotalWeight(units) * c.ratePerKg
}

// Manifest renders one line per unit plus a trailing total line. Units
// under a kilogram are reported in grams with two decimals, heavier units
// in whole kilograms; the total uses one decimal in kilograms. An empty
// input produces no manifest at all. The exact formatting is a contract
// with the reporting boundary.
func (c *Calculator) Manifest(units []domain.ShippableUnit) []string {
	if len(units) == 0 {
		return nil
	}
	lines := make([]string, 0, len(units)+1)
	for _, u := range units {
		if u.WeightKg < 1 {
			lines = append(lines, fmt.Sprintf("1x %s %.2fg", u.Name, u.WeightKg*1000))
		} else {
			lines = append(lines, fmt.Sprintf("1x %s %.0fkg", u.Name, u.WeightKg))
		}
	}
	lines = append(lines, fmt.Sprintf("Total package weight %.1fkg", c.TotalWeight(units)))
	return lines
}
