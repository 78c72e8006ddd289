package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aferchichi/stockshop/app/models"
	"github.com/aferchichi/stockshop/config"
	"github.com/aferchichi/stockshop/pkg/session"
)

func newState() *State {
	return Over(session.NewDetached())
}

func TestSignInClientDropsAdminKeys(t *testing.T) {
	s := newState()
	s.SignInAdmin(7, true)
	require.True(t, s.IsSuperadmin())

	s.SignInClient(3)

	id, ok := s.ClientID()
	require.True(t, ok)
	assert.Equal(t, uint(3), id)
	_, ok = s.AdminID()
	assert.False(t, ok, "admin identity must not survive a client sign-in")
	assert.False(t, s.IsSuperadmin())
}

func TestSignOutClearsEverything(t *testing.T) {
	s := newState()
	s.SignInClient(3)
	s.SetCart(models.Cart{}.Add(models.CartEntry{ProductID: 1, Qty: 1}))

	s.SignOut()

	_, ok := s.ClientID()
	assert.False(t, ok)
	assert.True(t, s.Cart().IsEmpty())
}

func TestCartRoundTrip(t *testing.T) {
	s := newState()
	cart := models.Cart{}.
		Add(models.CartEntry{ProductID: 1, Name: "Widget", Price: 9.99, Qty: 2}).
		Add(models.CartEntry{ProductID: 2, Name: "Gadget", Price: 5, Qty: 1})
	s.SetCart(cart)

	got := s.Cart()
	require.Len(t, got, 2)
	assert.Equal(t, "Widget", got[0].Name)
	assert.Equal(t, 2, got[0].Qty)
	assert.InDelta(t, 24.98, got.Total(), 0.001)
}

func TestDraftRoundTrip(t *testing.T) {
	s := newState()
	_, ok := s.Draft()
	require.False(t, ok)

	s.SetDraft(CheckoutDraft{Address: "1 Main St", Method: "card", Total: 10})

	draft, ok := s.Draft()
	require.True(t, ok)
	assert.Equal(t, "1 Main St", draft.Address)

	s.ClearDraft()
	_, ok = s.Draft()
	assert.False(t, ok)
}

func TestOrderCompletedIsOneShot(t *testing.T) {
	s := newState()
	s.SetOrderCompleted(OrderCompleted{OrderID: 42, Total: 10})

	got, ok := s.TakeOrderCompleted()
	require.True(t, ok)
	assert.Equal(t, uint(42), got.OrderID)

	_, ok = s.TakeOrderCompleted()
	assert.False(t, ok)
}

func TestLoginFailureCounterLocksAtThreshold(t *testing.T) {
	s := newState()

	for i := 1; i < config.MaxLoginAttempts(); i++ {
		assert.Equal(t, i, s.RegisterLoginFailure("signin", "a@example.com"))
		locked, _ := s.IsLockedOut("signin", "a@example.com")
		assert.False(t, locked, "must not lock before the threshold")
	}

	s.RegisterLoginFailure("signin", "a@example.com")
	locked, remaining := s.IsLockedOut("signin", "a@example.com")
	assert.True(t, locked)
	assert.Positive(t, remaining)

	// Another identifier is unaffected.
	locked, _ = s.IsLockedOut("signin", "b@example.com")
	assert.False(t, locked)

	s.ResetLoginFailures("signin", "a@example.com")
	locked, _ = s.IsLockedOut("signin", "a@example.com")
	assert.False(t, locked)
}
