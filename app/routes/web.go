// Package routes registers every HTTP endpoint on the application router.
package routes

import (
	"net/http"

	"github.com/aferchichi/stockshop/app/controllers"
	"github.com/aferchichi/stockshop/app/feed"
	"github.com/aferchichi/stockshop/pkg/router"
	"github.com/aferchichi/stockshop/pkg/session"
)

// Web mounts the storefront. Every route here runs under the session
// middleware so cart and sign-in state follow the browser.
func Web(r *router.Router, stockFeed *feed.InventoryFeed) {
	shop := controllers.NewShopController()
	cart := controllers.NewCartController()
	checkout := controllers.NewCheckoutController()
	auth := controllers.NewAuthController()
	profile := controllers.NewProfileController()

	sessions := session.Middleware(session.DefaultOptions())
	web := r.Group("/", sessions)

	web.Get("/", "shop.index", shop.Index)
	web.Get("/product/{id}", "shop.show", shop.Show)

	web.Get("/cart", "cart.show", cart.Show)
	web.Post("/cart/add", "cart.add", cart.Add)
	web.Post("/cart/update", "cart.update", cart.Update)
	web.Post("/cart/remove", "cart.remove", cart.Remove)

	web.Get("/checkout", "checkout.details", checkout.Details)
	web.Post("/checkout/details", "checkout.details.submit", checkout.SubmitDetails)
	web.Get("/checkout/card", "checkout.card", checkout.Card)
	web.Post("/checkout/card", "checkout.card.submit", checkout.SubmitCard)
	web.Get("/checkout/confirmation", "checkout.confirmation", checkout.Confirmation)

	web.Get("/signin", "auth.signin", auth.SigninForm)
	web.Post("/signin", "auth.signin.submit", auth.Signin)
	web.Get("/signup", "auth.signup", auth.SignupForm)
	web.Post("/signup", "auth.signup.submit", auth.Signup)
	web.Post("/logout", "auth.logout", auth.Logout)

	web.Get("/profile", "profile.show", profile.Show)
	web.Post("/profile", "profile.update", profile.Update)
	web.Post("/profile/image", "profile.image", profile.Image)
	web.Post("/profile/password", "profile.password", profile.Password)
	web.Get("/profile/orders", "profile.orders", profile.Orders)
	web.Get("/profile/orders/{id}", "profile.orders.show", profile.OrderDetail)

	// Admin dashboards watch stock move in real time.
	r.Handle("/admin/ws/inventory", http.HandlerFunc(stockFeed.Handler))
}
