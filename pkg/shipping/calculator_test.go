package shipping_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplab/checkout-go/pkg/domain"
	"github.com/shoplab/checkout-go/pkg/shipping"
)

func TestNewCalculator_RejectsNegativeRate(t *testing.T) {
	_, err := shipping.NewCalculator(-0.5)
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func mixedUnits() []domain.ShippableUnit {
	return []domain.ShippableUnit{
		{Name: "Cheese", WeightKg: 0.2},
		{Name: "Cheese", WeightKg: 0.2},
		{Name: "Biscuits", WeightKg: 0.7},
		{Name: "TV", WeightKg: 15},
		{Name: "Mobile", WeightKg: 0.3},
	}
}

func TestCalculator_TotalWeight(t *testing.T) {
	calc, err := shipping.NewCalculator(shipping.DefaultRatePerKg)
	require.NoError(t, err)

	assert.InDelta(t, 16.4, calc.TotalWeight(mixedUnits()), 1e-9)
	assert.Equal(t, 0.0, calc.TotalWeight(nil))
}

func TestCalculator_CostUsesConfiguredRate(t *testing.T) {
	calc, err := shipping.NewCalculator(2.0)
	require.NoError(t, err)
	assert.InDelta(t, 32.8, calc.Cost(mixedUnits()), 1e-9)

	triple, err := shipping.NewCalculator(3.0)
	require.NoError(t, err)
	assert.InDelta(t, 49.2, triple.Cost(mixedUnits()), 1e-9)

	assert.Equal(t, 0.0, calc.Cost(nil))
}

func TestCalculator_Manifest_Formatting(t *testing.T) {
	calc, err := shipping.NewCalculator(shipping.DefaultRatePerKg)
	require.NoError(t, err)

	lines := calc.Manifest(mixedUnits())
	require.Equal(t, []string{
		"1x Cheese 200.00g",
		"1x Cheese 200.00g",
		"1x Biscuits 700.00g",
		"1x TV 15kg",
		"1x Mobile 300.00g",
		"Total package weight 16.4kg",
	}, lines)
}

func TestCalculator_Manifest_KilogramBoundary(t *testing.T) {
	calc, err := shipping.NewCalculator(shipping.DefaultRatePerKg)
	require.NoError(t, err)

	// Exactly one kilogram is reported in kilograms, just under in grams.
	lines := calc.Manifest([]domain.ShippableUnit{
		{Name: "Flour", WeightKg: 1},
		{Name: "Sugar", WeightKg: 0.999},
	})
	require.Equal(t, []string{
		"1x Flour 1kg",
		"1x Sugar 999.00g",
		"Total package weight 2.0kg",
	}, lines)
}

func TestCalculator_Manifest_EmptyInputProducesNothing(t *testing.T) {
	calc, err := shipping.NewCalculator(shipping.DefaultRatePerKg)
	require.NoError(t, err)

	assert.Nil(t, calc.Manifest(nil))
	assert.Nil(t, calc.Manifest([]domain.ShippableUnit{}))
}
