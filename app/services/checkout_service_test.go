package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aferchichi/stockshop/app/models"
	"github.com/aferchichi/stockshop/app/web"
	"github.com/aferchichi/stockshop/pkg/database"
	"github.com/aferchichi/stockshop/pkg/session"
	"github.com/aferchichi/stockshop/pkg/testkit"
)

func checkoutFixtures(t *testing.T) (*CheckoutService, *web.State, models.Client) {
	t.Helper()
	testkit.SetupDB(t,
		&models.Client{}, &models.Category{}, &models.Brand{},
		&models.Product{}, &models.Order{}, &models.OrderLine{})

	client := models.Client{Person: models.Person{
		Name: "Ada", Surname: "Lovelace", Email: "ada@example.com", Password: "x",
	}}
	require.NoError(t, database.DB.Create(&client).Error)

	return NewCheckoutService(), web.Over(session.NewDetached()), client
}

func seedProduct(t *testing.T, name string, price float64, stock int) models.Product {
	t.Helper()
	p := models.Product{Name: name, Price: price, Stock: stock, CategoryID: 1, BrandID: 1}
	require.NoError(t, database.DB.Create(&p).Error)
	return p
}

func TestSubmitDetailsRejectsEmptyAddress(t *testing.T) {
	svc, state, _ := checkoutFixtures(t)

	errs, needsCard := svc.SubmitDetails(state, "   ", models.PaymentCard)

	assert.NotEmpty(t, errs)
	assert.False(t, needsCard)
	_, ok := state.Draft()
	assert.False(t, ok, "draft must not be stored on validation failure")
}

func TestSubmitDetailsRejectsUnknownMethod(t *testing.T) {
	svc, state, _ := checkoutFixtures(t)

	errs, _ := svc.SubmitDetails(state, "1 Main St", "paypal")

	assert.NotEmpty(t, errs)
}

func TestSubmitDetailsCardMethodNeedsCardStage(t *testing.T) {
	svc, state, _ := checkoutFixtures(t)

	errs, needsCard := svc.SubmitDetails(state, "1 Main St", models.PaymentCard)
	assert.Empty(t, errs)
	assert.True(t, needsCard)

	errs, needsCard = svc.SubmitDetails(state, "1 Main St", models.PaymentOnArrival)
	assert.Empty(t, errs)
	assert.False(t, needsCard)
}

func TestSubmitCardPANLength(t *testing.T) {
	svc, state, _ := checkoutFixtures(t)
	_, _ = svc.SubmitDetails(state, "1 Main St", models.PaymentCard)

	base := CardInput{Holder: "Ada Lovelace", Expiry: "12/29", CVV: "123"}

	short := base
	short.Number = "411111111111111" // 15 digits
	assert.NotEmpty(t, svc.SubmitCard(state, short))

	long := base
	long.Number = "41111111111111111" // 17 digits
	assert.NotEmpty(t, svc.SubmitCard(state, long))

	ok := base
	ok.Number = "4111 1111 1111 1111"
	assert.Empty(t, svc.SubmitCard(state, ok), "16 digits with spaces must pass")

	draft, has := state.Draft()
	require.True(t, has)
	assert.True(t, draft.CardOK)
	assert.Equal(t, "1111", draft.CardLast4)
	assert.NotContains(t, draft.SealedCard, "4111", "sealed card must not expose the PAN")
}

func TestSubmitCardRejectsBadExpiryAndCVV(t *testing.T) {
	svc, state, _ := checkoutFixtures(t)
	_, _ = svc.SubmitDetails(state, "1 Main St", models.PaymentCard)

	bad := CardInput{Number: "4111111111111111", Holder: "Ada", Expiry: "13/29", CVV: "123"}
	assert.NotEmpty(t, svc.SubmitCard(state, bad))

	bad.Expiry = "12/29"
	bad.CVV = "12"
	assert.NotEmpty(t, svc.SubmitCard(state, bad))
}

func TestPlaceOrderValidationFailureWritesNothing(t *testing.T) {
	svc, state, client := checkoutFixtures(t)

	// Empty cart, no draft.
	result := svc.PlaceOrder(state, client.ID)
	assert.Equal(t, ValidationFailed, result.Status)

	// Cart present but card stage skipped.
	p := seedProduct(t, "Widget", 10, 5)
	state.SetCart(models.Cart{}.Add(models.CartEntry{ProductID: p.ID, Price: p.Price, Qty: 1}))
	_, _ = svc.SubmitDetails(state, "1 Main St", models.PaymentCard)
	result = svc.PlaceOrder(state, client.ID)
	assert.Equal(t, ValidationFailed, result.Status)

	var count int64
	database.DB.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count, "no order may be written on validation failure")
	assert.False(t, state.Cart().IsEmpty(), "cart must survive a failed placement")
}

func TestPlaceOrderSuccess(t *testing.T) {
	svc, state, client := checkoutFixtures(t)
	p1 := seedProduct(t, "Widget", 10, 5)
	p2 := seedProduct(t, "Gadget", 2.5, 4)

	cart := models.Cart{}.
		Add(models.CartEntry{ProductID: p1.ID, Name: p1.Name, Price: p1.Price, Qty: 2}).
		Add(models.CartEntry{ProductID: p2.ID, Name: p2.Name, Price: p2.Price, Qty: 2})
	state.SetCart(cart)
	_, _ = svc.SubmitDetails(state, "1 Main St", models.PaymentOnArrival)

	result := svc.PlaceOrder(state, client.ID)
	require.Equal(t, Placed, result.Status)
	require.NotZero(t, result.OrderID)

	var order models.Order
	require.NoError(t, database.DB.Preload("Lines").First(&order, result.OrderID).Error)
	assert.InDelta(t, 25.0, order.Total, 0.001)
	assert.Len(t, order.Lines, 2)
	assert.Equal(t, client.ID, order.ClientID)

	var got models.Product
	require.NoError(t, database.DB.First(&got, p1.ID).Error)
	assert.Equal(t, 3, got.Stock, "stock must be decremented")

	assert.True(t, state.Cart().IsEmpty(), "cart must be cleared")
	_, hasDraft := state.Draft()
	assert.False(t, hasDraft, "draft must be cleared")

	payload, ok := state.TakeOrderCompleted()
	require.True(t, ok, "confirmation payload must be set")
	assert.Equal(t, result.OrderID, payload.OrderID)
	assert.InDelta(t, 25.0, payload.Total, 0.001)

	_, ok = state.TakeOrderCompleted()
	assert.False(t, ok, "confirmation payload is one-shot")
}

func TestPlaceOrderStockConflictRollsBack(t *testing.T) {
	svc, state, client := checkoutFixtures(t)
	p := seedProduct(t, "Widget", 10, 1)

	state.SetCart(models.Cart{}.Add(models.CartEntry{ProductID: p.ID, Name: p.Name, Price: p.Price, Qty: 3}))
	_, _ = svc.SubmitDetails(state, "1 Main St", models.PaymentOnArrival)

	result := svc.PlaceOrder(state, client.ID)
	assert.Equal(t, Conflict, result.Status)

	var orders, lines int64
	database.DB.Model(&models.Order{}).Count(&orders)
	database.DB.Model(&models.OrderLine{}).Count(&lines)
	assert.Zero(t, orders, "conflict must roll the order back")
	assert.Zero(t, lines, "conflict must roll the lines back")

	var got models.Product
	require.NoError(t, database.DB.First(&got, p.ID).Error)
	assert.Equal(t, 1, got.Stock, "stock must be untouched after rollback")
	assert.False(t, state.Cart().IsEmpty(), "cart must survive a conflict")
}
