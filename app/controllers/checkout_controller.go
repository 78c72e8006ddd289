package controllers

import (
	"net/http"

	"github.com/aferchichi/stockshop/app/services"
	"github.com/aferchichi/stockshop/app/views"
	"github.com/aferchichi/stockshop/app/web"
	"github.com/aferchichi/stockshop/pkg/response"
)

type CheckoutController struct {
	checkout *services.CheckoutService
	profile  *services.ProfileService
}

func NewCheckoutController() *CheckoutController {
	return &CheckoutController{
		checkout: services.NewCheckoutService(),
		profile:  services.NewProfileService(),
	}
}

// requireStage enforces the preconditions shared by every checkout stage: a
// signed-in client and a non-empty cart. Anonymous sessions go to sign-in,
// empty carts back to the shop. Returns false after redirecting.
func (c *CheckoutController) requireStage(w http.ResponseWriter, r *http.Request, state *web.State) bool {
	if _, ok := state.ClientID(); !ok {
		saveState(w, r, state)
		response.Redirect(w, r, "/signin")
		return false
	}
	if state.Cart().IsEmpty() {
		saveState(w, r, state)
		response.Redirect(w, r, "/")
		return false
	}
	return true
}

// Details renders the delivery form.
func (c *CheckoutController) Details(w http.ResponseWriter, r *http.Request) {
	state := web.FromRequest(r)
	if !c.requireStage(w, r, state) {
		return
	}

	draft, _ := state.Draft()
	data := page(state, "Checkout")
	data.Props["Total"] = state.Cart().Total()
	data.Props["Address"] = draft.Address
	data.Props["Method"] = draft.Method
	saveState(w, r, state)
	views.Render(w, http.StatusOK, "checkout_details", data)
}

// SubmitDetails stores the draft and moves to the card stage or straight to
// placement for pay-on-arrival.
func (c *CheckoutController) SubmitDetails(w http.ResponseWriter, r *http.Request) {
	state := web.FromRequest(r)
	if !c.requireStage(w, r, state) {
		return
	}
	if err := r.ParseForm(); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid form")
		return
	}

	errs, needsCard := c.checkout.SubmitDetails(state, r.FormValue("address"), r.FormValue("payment_method"))
	saveState(w, r, state)
	if len(errs) > 0 {
		data := page(state, "Checkout")
		data.Errors = errs
		data.Props["Total"] = state.Cart().Total()
		data.Props["Address"] = r.FormValue("address")
		data.Props["Method"] = r.FormValue("payment_method")
		views.Render(w, http.StatusUnprocessableEntity, "checkout_details", data)
		return
	}
	if needsCard {
		response.Redirect(w, r, "/checkout/card")
		return
	}
	c.place(w, r, state)
}

// Card renders the card form; reaching it without a card draft restarts
// checkout.
func (c *CheckoutController) Card(w http.ResponseWriter, r *http.Request) {
	state := web.FromRequest(r)
	if !c.requireStage(w, r, state) {
		return
	}
	draft, ok := state.Draft()
	if !ok || draft.Method != "card" {
		saveState(w, r, state)
		response.Redirect(w, r, "/checkout")
		return
	}

	data := page(state, "Card details")
	data.Props["Total"] = draft.Total
	saveState(w, r, state)
	views.Render(w, http.StatusOK, "checkout_card", data)
}

// SubmitCard validates the card and places the order.
func (c *CheckoutController) SubmitCard(w http.ResponseWriter, r *http.Request) {
	state := web.FromRequest(r)
	if !c.requireStage(w, r, state) {
		return
	}
	if err := r.ParseForm(); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid form")
		return
	}

	errs := c.checkout.SubmitCard(state, services.CardInput{
		Number: r.FormValue("card_number"),
		Holder: r.FormValue("card_holder"),
		Expiry: r.FormValue("card_expiry"),
		CVV:    r.FormValue("card_cvv"),
	})
	if len(errs) > 0 {
		draft, _ := state.Draft()
		data := page(state, "Card details")
		data.Errors = errs
		data.Props["Total"] = draft.Total
		saveState(w, r, state)
		views.Render(w, http.StatusUnprocessableEntity, "checkout_card", data)
		return
	}
	c.place(w, r, state)
}

// place runs the order placement and routes the result.
func (c *CheckoutController) place(w http.ResponseWriter, r *http.Request, state *web.State) {
	clientID, ok := state.ClientID()
	if !ok {
		saveState(w, r, state)
		response.Redirect(w, r, "/signin")
		return
	}

	result := c.checkout.PlaceOrder(state, clientID)
	saveState(w, r, state)

	switch result.Status {
	case services.Placed:
		response.Redirect(w, r, "/checkout/confirmation")
	case services.Conflict:
		data := page(state, "Cart")
		data.Errors = result.Errors
		cart := state.Cart()
		data.Props["Entries"] = cart
		data.Props["Total"] = cart.Total()
		views.Render(w, http.StatusConflict, "cart", data)
	case services.StoreUnavailable:
		response.Error(w, http.StatusServiceUnavailable, result.Errors[0])
	default:
		data := page(state, "Checkout")
		data.Errors = result.Errors
		data.Props["Total"] = state.Cart().Total()
		views.Render(w, http.StatusUnprocessableEntity, "checkout_details", data)
	}
}

// Confirmation renders the one-shot order summary. A refresh, with the
// payload already consumed, goes back to the shop.
func (c *CheckoutController) Confirmation(w http.ResponseWriter, r *http.Request) {
	state := web.FromRequest(r)
	payload, ok := state.TakeOrderCompleted()
	saveState(w, r, state)
	if !ok {
		response.Redirect(w, r, "/")
		return
	}

	data := page(state, "Order confirmed")
	data.Props["Order"] = payload
	views.Render(w, http.StatusOK, "confirmation", data)
}
