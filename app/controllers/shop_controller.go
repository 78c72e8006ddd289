package controllers

import (
	"net/http"
	"strconv"

	"github.com/aferchichi/stockshop/app/services"
	"github.com/aferchichi/stockshop/app/views"
	"github.com/aferchichi/stockshop/app/web"
	"github.com/aferchichi/stockshop/pkg/response"
)

type ShopController struct {
	catalog *services.CatalogService
}

func NewShopController() *ShopController {
	return &ShopController{catalog: services.NewCatalogService()}
}

// Index renders the shop page with the query-string filters applied.
func (c *ShopController) Index(w http.ResponseWriter, r *http.Request) {
	state := web.FromRequest(r)

	filter := services.CatalogFilter{Query: r.URL.Query().Get("q")}
	if n, err := strconv.ParseUint(r.URL.Query().Get("category"), 10, 32); err == nil {
		filter.CategoryID = uint(n)
	}
	if n, err := strconv.ParseUint(r.URL.Query().Get("brand"), 10, 32); err == nil {
		filter.BrandID = uint(n)
	}

	products, err := c.catalog.Shop(filter)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "catalog unavailable")
		return
	}
	categories, _ := c.catalog.Categories()
	brands, _ := c.catalog.Brands()

	data := page(state, "Shop")
	data.Props["Products"] = products
	data.Props["Categories"] = categories
	data.Props["Brands"] = brands
	data.Props["Query"] = filter.Query
	data.Props["CategoryID"] = filter.CategoryID
	data.Props["BrandID"] = filter.BrandID
	saveState(w, r, state)
	views.Render(w, http.StatusOK, "shop", data)
}

// Show renders one product's detail page.
func (c *ShopController) Show(w http.ResponseWriter, r *http.Request) {
	state := web.FromRequest(r)

	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}
	product, err := c.catalog.Detail(id)
	if err != nil {
		response.NotFound(w)
		return
	}

	data := page(state, product.Name)
	data.Props["Product"] = product
	saveState(w, r, state)
	views.Render(w, http.StatusOK, "product", data)
}
