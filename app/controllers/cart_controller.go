package controllers

import (
	"errors"
	"net/http"

	"github.com/aferchichi/stockshop/app/services"
	"github.com/aferchichi/stockshop/app/views"
	"github.com/aferchichi/stockshop/app/web"
	"github.com/aferchichi/stockshop/pkg/response"
)

type CartController struct {
	cart *services.CartService
}

func NewCartController() *CartController {
	return &CartController{cart: services.NewCartService()}
}

// Show renders the cart page.
func (c *CartController) Show(w http.ResponseWriter, r *http.Request) {
	state := web.FromRequest(r)
	cart := state.Cart()

	data := page(state, "Cart")
	data.Props["Entries"] = cart
	data.Props["Total"] = cart.Total()
	saveState(w, r, state)
	views.Render(w, http.StatusOK, "cart", data)
}

// Add puts a product in the cart and bounces back to the cart page. Stock
// shortfalls re-render the cart with a message instead of adding.
func (c *CartController) Add(w http.ResponseWriter, r *http.Request) {
	state := web.FromRequest(r)

	productID, ok := formUint(r, "product_id")
	if !ok {
		response.NotFound(w)
		return
	}
	qty := formInt(r, "qty", 1)

	if err := c.cart.Add(state, productID, qty); err != nil {
		saveState(w, r, state)
		if errors.Is(err, services.ErrStockConflict) {
			cart := state.Cart()
			data := page(state, "Cart")
			data.Errors = []string{"Not enough stock for that quantity."}
			data.Props["Entries"] = cart
			data.Props["Total"] = cart.Total()
			views.Render(w, http.StatusConflict, "cart", data)
			return
		}
		response.NotFound(w)
		return
	}

	saveState(w, r, state)
	response.Redirect(w, r, "/cart")
}

// Update changes a line quantity; zero removes the line.
func (c *CartController) Update(w http.ResponseWriter, r *http.Request) {
	state := web.FromRequest(r)
	c.cart.Update(state, formInt(r, "index", -1), formInt(r, "qty", 0))
	saveState(w, r, state)
	response.Redirect(w, r, "/cart")
}

// Remove drops a line from the cart.
func (c *CartController) Remove(w http.ResponseWriter, r *http.Request) {
	state := web.FromRequest(r)
	c.cart.Remove(state, formInt(r, "index", -1))
	saveState(w, r, state)
	response.Redirect(w, r, "/cart")
}
