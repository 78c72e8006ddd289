package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func entry(productID uint, price float64, qty int) CartEntry {
	return CartEntry{ProductID: productID, Name: "p", Price: price, Qty: qty}
}

func TestCartAddMergesSameProduct(t *testing.T) {
	cart := Cart{}.Add(entry(1, 10, 2)).Add(entry(1, 10, 3))

	assert.Len(t, cart, 1)
	assert.Equal(t, 5, cart[0].Qty)
}

func TestCartAddClampsQtyToOne(t *testing.T) {
	cart := Cart{}.Add(entry(1, 10, 0)).Add(entry(2, 5, -3))

	assert.Equal(t, 1, cart[0].Qty)
	assert.Equal(t, 1, cart[1].Qty)
}

func TestCartUpdateZeroRemovesAndCompacts(t *testing.T) {
	cart := Cart{}.Add(entry(1, 10, 1)).Add(entry(2, 5, 1)).Add(entry(3, 2, 1))

	cart = cart.Update(1, 0)

	assert.Len(t, cart, 2)
	assert.Equal(t, uint(1), cart[0].ProductID)
	assert.Equal(t, uint(3), cart[1].ProductID)
}

func TestCartUpdateOutOfRangeIgnored(t *testing.T) {
	cart := Cart{}.Add(entry(1, 10, 1))

	assert.Len(t, cart.Update(-1, 5), 1)
	assert.Len(t, cart.Update(7, 5), 1)
	assert.Equal(t, 1, cart[0].Qty)
}

func TestCartRemoveCompacts(t *testing.T) {
	cart := Cart{}.Add(entry(1, 10, 1)).Add(entry(2, 5, 1))

	cart = cart.Remove(0)

	assert.Len(t, cart, 1)
	assert.Equal(t, uint(2), cart[0].ProductID)
}

func TestCartTotal(t *testing.T) {
	cart := Cart{}.Add(entry(1, 10, 2)).Add(entry(2, 2.5, 2))

	assert.InDelta(t, 25.0, cart.Total(), 0.001)
}

func TestCartQuantity(t *testing.T) {
	cart := Cart{}.Add(entry(1, 10, 2))

	assert.Equal(t, 2, cart.Quantity(1))
	assert.Equal(t, 0, cart.Quantity(9))
}
