package order_test

import (
	"testing"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	t.Run("should snapshot all line fields", func(t *testing.T) {
		item := testItem(t)

		require.NoError(t, item.Validate())
		assert.Equal(t, "Burger", item.Name())
		assert.Equal(t, 2, item.Quantity())
		assert.True(t, item.UnitPrice().IsEqual(mustMoney(t, "50.00")))
		assert.True(t, item.LineTotal().IsEqual(mustMoney(t, "110.00")))
		assert.Equal(t, "no onions", item.SpecialInstructions())
		require.Len(t, item.Modifiers(), 1)
		assert.Equal(t, "Extra cheese", item.Modifiers()[0].Name)
	})

	t.Run("should fail with empty name", func(t *testing.T) {
		_, err := order.NewItem(
			kernel.NewUUID(), kernel.NewUUID(), "", 1,
			mustMoney(t, "10.00"), nil, "", mustMoney(t, "10.00"),
		)

		require.Error(t, err)
	})

	t.Run("should fail with non-positive quantity", func(t *testing.T) {
		_, err := order.NewItem(
			kernel.NewUUID(), kernel.NewUUID(), "Soup", 0,
			mustMoney(t, "10.00"), nil, "", mustMoney(t, "0.00"),
		)

		require.Error(t, err)
	})

	t.Run("should fail with unnamed modifier", func(t *testing.T) {
		_, err := order.NewItem(
			kernel.NewUUID(), kernel.NewUUID(), "Soup", 1,
			mustMoney(t, "10.00"),
			[]order.Modifier{{PriceAdjustment: mustMoney(t, "1.00")}},
			"", mustMoney(t, "11.00"),
		)

		require.Error(t, err)
	})

	t.Run("should reject not constructed item", func(t *testing.T) {
		var item order.Item

		err := item.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrItemIsNotConstructed)
	})

	t.Run("should return copies of modifiers", func(t *testing.T) {
		item := testItem(t)

		item.Modifiers()[0].Name = "tampered"

		assert.Equal(t, "Extra cheese", item.Modifiers()[0].Name)
	})
}
