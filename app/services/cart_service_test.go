package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aferchichi/stockshop/app/models"
	"github.com/aferchichi/stockshop/app/web"
	"github.com/aferchichi/stockshop/pkg/session"
	"github.com/aferchichi/stockshop/pkg/testkit"
)

func cartFixtures(t *testing.T) (*CartService, *web.State) {
	t.Helper()
	testkit.SetupDB(t, &models.Category{}, &models.Brand{}, &models.Product{})
	return NewCartService(), web.Over(session.NewDetached())
}

func TestCartServiceAddCachesDisplayFields(t *testing.T) {
	svc, state := cartFixtures(t)
	p := seedProduct(t, "Widget", 9.99, 5)

	require.NoError(t, svc.Add(state, p.ID, 2))

	cart := state.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, "Widget", cart[0].Name)
	assert.InDelta(t, 9.99, cart[0].Price, 0.001)
	assert.Equal(t, 2, cart[0].Qty)
}

func TestCartServiceAddRespectsStockAcrossCalls(t *testing.T) {
	svc, state := cartFixtures(t)
	p := seedProduct(t, "Widget", 10, 3)

	require.NoError(t, svc.Add(state, p.ID, 2))
	err := svc.Add(state, p.ID, 2)

	assert.ErrorIs(t, err, ErrStockConflict)
	assert.Equal(t, 2, state.Cart().Quantity(p.ID), "failed add must not change the cart")
}

func TestCartServiceAddUnknownProduct(t *testing.T) {
	svc, state := cartFixtures(t)

	err := svc.Add(state, 999, 1)

	assert.Error(t, err)
	assert.True(t, state.Cart().IsEmpty())
}

func TestCartServiceUpdateAndRemove(t *testing.T) {
	svc, state := cartFixtures(t)
	p1 := seedProduct(t, "Widget", 10, 5)
	p2 := seedProduct(t, "Gadget", 5, 5)
	require.NoError(t, svc.Add(state, p1.ID, 1))
	require.NoError(t, svc.Add(state, p2.ID, 1))

	svc.Update(state, 0, 3)
	assert.Equal(t, 3, state.Cart()[0].Qty)

	svc.Update(state, 0, 0)
	require.Len(t, state.Cart(), 1)
	assert.Equal(t, p2.ID, state.Cart()[0].ProductID)

	svc.Remove(state, 0)
	assert.True(t, state.Cart().IsEmpty())
}
