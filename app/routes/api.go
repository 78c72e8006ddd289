package routes

import (
	"github.com/aferchichi/stockshop/app/controllers"
	"github.com/aferchichi/stockshop/app/graph"
	"github.com/aferchichi/stockshop/app/services"
	"github.com/aferchichi/stockshop/pkg/graphql"
	"github.com/aferchichi/stockshop/pkg/logger"
	"github.com/aferchichi/stockshop/pkg/middleware"
	"github.com/aferchichi/stockshop/pkg/rbac"
	"github.com/aferchichi/stockshop/pkg/router"
)

// API mounts the admin JSON API under /api and the public catalogue
// GraphQL endpoint at /api/graphql.
func API(r *router.Router) {
	apiAuth := controllers.NewAPIAuthController()
	products := controllers.NewAPIProductController()
	categories := controllers.NewAPICategoryController()
	brands := controllers.NewAPIBrandController()
	admins := controllers.NewAPIAdminController()
	orders := controllers.NewAPIOrderController()

	api := r.Group("/api")

	// Token issuance is the only unauthenticated API route.
	api.Post("/auth/token", "api.auth.token", apiAuth.Token)
	api.Post("/auth/refresh", "api.auth.refresh", apiAuth.Refresh)

	protected := api.Group("/", middleware.JWTAuth, rbac.HasRole("admin", "superadmin"))

	protected.Get("/products", "api.products.index", products.Index)
	protected.Get("/products/low-stock", "api.products.low_stock", products.LowStock)
	protected.Get("/products/{id}", "api.products.show", products.Show)
	protected.Post("/products", "api.products.create", products.Create)
	protected.Put("/products/{id}", "api.products.update", products.Update)
	protected.Delete("/products/{id}", "api.products.delete", products.Delete)

	protected.Get("/categories", "api.categories.index", categories.Index)
	protected.Post("/categories", "api.categories.create", categories.Create)
	protected.Put("/categories/{id}", "api.categories.update", categories.Update)
	protected.Delete("/categories/{id}", "api.categories.delete", categories.Delete)

	protected.Get("/brands", "api.brands.index", brands.Index)
	protected.Post("/brands", "api.brands.create", brands.Create)
	protected.Put("/brands/{id}", "api.brands.update", brands.Update)
	protected.Delete("/brands/{id}", "api.brands.delete", brands.Delete)

	protected.Get("/orders", "api.orders.index", orders.Index)

	// Admin account management needs the superadmin role.
	super := api.Group("/admins", middleware.JWTAuth, rbac.HasRole("superadmin"))
	super.Get("/", "api.admins.index", admins.Index)
	super.Post("/", "api.admins.create", admins.Create)
	super.Put("/{id}", "api.admins.update", admins.Update)
	super.Delete("/{id}", "api.admins.delete", admins.Delete)

	mountGraphQL(r)
}

// mountGraphQL builds the catalogue schema and serves it. A schema build
// failure is a programming error and aborts startup.
func mountGraphQL(r *router.Router) {
	schema, err := graph.NewSchema(services.NewCatalogService())
	if err != nil {
		logger.Error("routes: build graphql schema", "error", err)
		panic(err)
	}
	r.Handle("/api/graphql", graphql.Handler(schema))
}
