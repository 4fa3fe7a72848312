package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplab/checkout-go/pkg/domain"
)

func mustProduct(t *testing.T, name string, price float64, stock int, opts ...domain.Option) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct(name, price, stock, opts...)
	require.NoError(t, err)
	return p
}

func TestCart_Add_RejectsNonPositiveQuantity(t *testing.T) {
	cheese := mustProduct(t, "Cheese", 100, 10)
	cart := domain.NewCart()

	require.ErrorIs(t, cart.Add(cheese, 0), domain.ErrInvalidArgument)
	require.ErrorIs(t, cart.Add(cheese, -2), domain.ErrInvalidArgument)
	assert.True(t, cart.Empty())
}

func TestCart_Add_RejectsNilProduct(t *testing.T) {
	cart := domain.NewCart()
	require.ErrorIs(t, cart.Add(nil, 1), domain.ErrInvalidArgument)
}

func TestCart_Add_RejectsOverStock(t *testing.T) {
	cheese := mustProduct(t, "Cheese", 100, 10)
	cart := domain.NewCart()

	err := cart.Add(cheese, 50)
	require.ErrorIs(t, err, domain.ErrUnavailable)
	assert.True(t, cart.Empty())
	assert.Equal(t, 10, cheese.Stock())
}

func TestCart_Add_RejectsExpiredProduct(t *testing.T) {
	expired := mustProduct(t, "Expired Cheese", 50, 5, domain.ExpiresOn(time.Now().Add(-24*time.Hour)))
	cart := domain.NewCart()

	err := cart.Add(expired, 1)
	require.ErrorIs(t, err, domain.ErrExpired)
	assert.True(t, cart.Empty())
}

func TestCart_Add_MergesDuplicateProduct(t *testing.T) {
	cheese := mustProduct(t, "Cheese", 100, 10)
	cart := domain.NewCart()

	require.NoError(t, cart.Add(cheese, 2))
	require.NoError(t, cart.Add(cheese, 3))

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestCart_Add_MergeValidatesCombinedQuantity(t *testing.T) {
	cheese := mustProduct(t, "Cheese", 100, 4)
	cart := domain.NewCart()

	require.NoError(t, cart.Add(cheese, 3))

	// 3 more would pass on its own but the combined 6 exceeds stock.
	err := cart.Add(cheese, 3)
	require.ErrorIs(t, err, domain.ErrUnavailable)

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestCart_Add_MergeMovesLineToTail(t *testing.T) {
	cheese := mustProduct(t, "Cheese", 100, 10)
	tv := mustProduct(t, "TV", 500, 3)
	cart := domain.NewCart()

	require.NoError(t, cart.Add(cheese, 1))
	require.NoError(t, cart.Add(tv, 1))
	require.NoError(t, cart.Add(cheese, 1))

	items := cart.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "TV", items[0].Product.Name())
	assert.Equal(t, "Cheese", items[1].Product.Name())
	assert.Equal(t, 2, items[1].Quantity)
}

func TestCart_Subtotal(t *testing.T) {
	cheese := mustProduct(t, "Cheese", 100, 10)
	tv := mustProduct(t, "TV", 500, 3)
	cart := domain.NewCart()

	assert.Equal(t, 0.0, cart.Subtotal())

	require.NoError(t, cart.Add(cheese, 2))
	require.NoError(t, cart.Add(tv, 1))
	assert.Equal(t, 700.0, cart.Subtotal())
}

func TestCart_ValidateAvailability_DetectsStockDrop(t *testing.T) {
	cheese := mustProduct(t, "Cheese", 100, 5)
	cart := domain.NewCart()
	require.NoError(t, cart.Add(cheese, 3))

	// Another sale depletes the shared product after the add.
	require.NoError(t, cheese.ReduceStock(4))

	err := cart.ValidateAvailability()
	require.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestCart_ValidateAvailability_DetectsExpiry(t *testing.T) {
	cheese := mustProduct(t, "Cheese", 100, 5, domain.ExpiresOn(time.Now().Add(30*time.Millisecond)))
	cart := domain.NewCart()
	require.NoError(t, cart.Add(cheese, 1))

	time.Sleep(60 * time.Millisecond)

	err := cart.ValidateAvailability()
	require.ErrorIs(t, err, domain.ErrExpired)
}

func TestCart_ShippableUnits_ExpandsPerUnit(t *testing.T) {
	cheese := mustProduct(t, "Cheese", 100, 10, domain.WithWeight(0.2))
	tv := mustProduct(t, "TV", 500, 3, domain.WithWeight(15))
	card := mustProduct(t, "Mobile Scratch Card", 50, 20)
	cart := domain.NewCart()

	require.NoError(t, cart.Add(cheese, 3))
	require.NoError(t, cart.Add(tv, 1))
	require.NoError(t, cart.Add(card, 2))

	units := cart.ShippableUnits()
	require.Len(t, units, 4)
	assert.Equal(t, domain.ShippableUnit{Name: "Cheese", WeightKg: 0.2}, units[0])
	assert.Equal(t, domain.ShippableUnit{Name: "Cheese", WeightKg: 0.2}, units[1])
	assert.Equal(t, domain.ShippableUnit{Name: "Cheese", WeightKg: 0.2}, units[2])
	assert.Equal(t, domain.ShippableUnit{Name: "TV", WeightKg: 15.0}, units[3])
}

func TestCart_ShippableUnits_EmptyForDigitalOnlyCart(t *testing.T) {
	card := mustProduct(t, "Mobile Scratch Card", 50, 20)
	cart := domain.NewCart()
	require.NoError(t, cart.Add(card, 2))

	assert.Empty(t, cart.ShippableUnits())
}

func TestCart_Items_ReturnsDefensiveCopy(t *testing.T) {
	cheese := mustProduct(t, "Cheese", 100, 10)
	tv := mustProduct(t, "TV", 500, 3)
	cart := domain.NewCart()
	require.NoError(t, cart.Add(cheese, 1))
	require.NoError(t, cart.Add(tv, 1))

	items := cart.Items()
	items[0] = domain.LineItem{Product: tv, Quantity: 99}

	fresh := cart.Items()
	assert.Equal(t, "Cheese", fresh[0].Product.Name())
	assert.Equal(t, 1, fresh[0].Quantity)
}

func TestCart_Commit_ReducesEveryLine(t *testing.T) {
	cheese := mustProduct(t, "Cheese", 100, 10)
	tv := mustProduct(t, "TV", 500, 3)
	cart := domain.NewCart()
	require.NoError(t, cart.Add(cheese, 2))
	require.NoError(t, cart.Add(tv, 1))

	require.NoError(t, cart.Commit())
	assert.Equal(t, 8, cheese.Stock())
	assert.Equal(t, 2, tv.Stock())
}

func TestCart_Clear(t *testing.T) {
	cheese := mustProduct(t, "Cheese", 100, 10)
	cart := domain.NewCart()
	require.NoError(t, cart.Add(cheese, 1))

	cart.Clear()
	assert.True(t, cart.Empty())
	assert.Empty(t, cart.Items())
}
