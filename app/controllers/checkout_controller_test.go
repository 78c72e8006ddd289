package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aferchichi/stockshop/app/models"
	"github.com/aferchichi/stockshop/app/web"
	"github.com/aferchichi/stockshop/pkg/session"
)

// runWithSession executes fn inside the session middleware so the handler
// under test sees the same state a browser request would.
func runWithSession(t *testing.T, target string, fn func(w http.ResponseWriter, r *http.Request, state *web.State)) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	h := session.Middleware(session.DefaultOptions())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fn(w, r, web.FromRequest(r))
	}))
	h.ServeHTTP(rec, req)
	return rec
}

func testCart() models.Cart {
	return models.Cart{{ProductID: 1, Name: "Widget", Price: 10, Qty: 2}}
}

func TestCheckoutStagesRedirectAnonymousToSignin(t *testing.T) {
	c := NewCheckoutController()

	stages := map[string]func(http.ResponseWriter, *http.Request){
		"details":        c.Details,
		"submit_details": c.SubmitDetails,
		"card":           c.Card,
		"submit_card":    c.SubmitCard,
	}

	for name, stage := range stages {
		t.Run(name, func(t *testing.T) {
			rec := runWithSession(t, "/checkout", func(w http.ResponseWriter, r *http.Request, state *web.State) {
				// A full cart alone must not grant access to checkout.
				state.SetCart(testCart())
				stage(w, r)
			})

			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/signin", rec.Header().Get("Location"))
		})
	}
}

func TestCheckoutDetailsWithEmptyCartGoesBackToShop(t *testing.T) {
	c := NewCheckoutController()

	rec := runWithSession(t, "/checkout", func(w http.ResponseWriter, r *http.Request, state *web.State) {
		state.SignInClient(7)
		c.Details(w, r)
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestCardStageWithoutCardDraftRestartsCheckout(t *testing.T) {
	c := NewCheckoutController()

	rec := runWithSession(t, "/checkout/card", func(w http.ResponseWriter, r *http.Request, state *web.State) {
		state.SignInClient(7)
		state.SetCart(testCart())
		c.Card(w, r)
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/checkout", rec.Header().Get("Location"))
}

func TestSaveStateToleratesFailedSessionWrite(t *testing.T) {
	s := session.NewDetached()
	s.Set("broken", make(chan int)) // not serializable, Save must fail

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)

	assert.NotPanics(t, func() {
		saveState(rec, req, web.Over(s))
	})
}
