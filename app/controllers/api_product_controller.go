package controllers

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/aferchichi/stockshop/app/models"
	"github.com/aferchichi/stockshop/app/repositories"
	"github.com/aferchichi/stockshop/pkg/bind"
	"github.com/aferchichi/stockshop/pkg/response"
)

// APIProductController is the admin CRUD surface for products.
type APIProductController struct {
	products *repositories.ProductRepository
}

func NewAPIProductController() *APIProductController {
	return &APIProductController{products: repositories.NewProductRepository()}
}

type productInput struct {
	Name        string  `json:"name"        validate:"required,max=255"`
	Description string  `json:"description" validate:"nullable,max=2000"`
	Price       float64 `json:"price"       validate:"required,gte=0"`
	Stock       int     `json:"stock"       validate:"gte=0"`
	Image       string  `json:"image"       validate:"nullable,max=255"`
	CategoryID  uint    `json:"category_id" validate:"required"`
	BrandID     uint    `json:"brand_id"    validate:"required"`
}

func (in productInput) apply(p *models.Product) {
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Stock = in.Stock
	p.Image = in.Image
	p.CategoryID = in.CategoryID
	p.BrandID = in.BrandID
}

// Index lists every product with relations preloaded.
func (c *APIProductController) Index(w http.ResponseWriter, r *http.Request) {
	products, err := c.products.All()
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not list products")
		return
	}
	response.Success(w, products)
}

// Show returns one product.
func (c *APIProductController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}
	product, err := c.products.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load product")
		return
	}
	response.Success(w, product)
}

// Create inserts a product.
func (c *APIProductController) Create(w http.ResponseWriter, r *http.Request) {
	var input productInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	var product models.Product
	input.apply(&product)
	if err := c.products.Create(&product); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not create product")
		return
	}
	response.Created(w, product)
}

// Update overwrites a product's fields.
func (c *APIProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	var input productInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.products.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load product")
		return
	}

	input.apply(&product)
	if err := c.products.Update(&product); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not update product")
		return
	}
	response.Success(w, product)
}

// Delete removes a product.
func (c *APIProductController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}
	if err := c.products.Delete(id); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not delete product")
		return
	}
	response.Success(w, map[string]uint{"deleted": id})
}

// LowStock lists products at or below the given threshold (default 5).
func (c *APIProductController) LowStock(w http.ResponseWriter, r *http.Request) {
	products, err := c.products.LowStock(formInt(r, "threshold", 5))
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not list low stock")
		return
	}
	response.Success(w, products)
}
