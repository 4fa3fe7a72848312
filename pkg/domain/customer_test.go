package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplab/checkout-go/pkg/domain"
)

func TestNewCustomer_RejectsMalformedInput(t *testing.T) {
	_, err := domain.NewCustomer("", 100)
	require.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = domain.NewCustomer("Ahmed", -1)
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestCustomer_CanAfford(t *testing.T) {
	c, err := domain.NewCustomer("Ahmed", 100)
	require.NoError(t, err)

	assert.True(t, c.CanAfford(100))
	assert.False(t, c.CanAfford(100.01))
}

func TestCustomer_Deduct(t *testing.T) {
	c, err := domain.NewCustomer("Ahmed", 100)
	require.NoError(t, err)

	require.NoError(t, c.Deduct(40))
	assert.Equal(t, 60.0, c.Balance())

	err = c.Deduct(61)
	require.ErrorIs(t, err, domain.ErrInvalidOperation)
	assert.Equal(t, 60.0, c.Balance())
}
