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

// APICategoryController and APIBrandController are the admin CRUD surfaces
// for the two catalogue taxonomies. They are intentionally symmetrical.

type APICategoryController struct {
	categories *repositories.CategoryRepository
}

func NewAPICategoryController() *APICategoryController {
	return &APICategoryController{categories: repositories.NewCategoryRepository()}
}

type nameInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (c *APICategoryController) Index(w http.ResponseWriter, r *http.Request) {
	categories, err := c.categories.All()
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not list categories")
		return
	}
	response.Success(w, categories)
}

func (c *APICategoryController) Create(w http.ResponseWriter, r *http.Request) {
	var input nameInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	category := models.Category{Name: input.Name}
	if err := c.categories.Create(&category); err != nil {
		response.Conflict(w, "category already exists")
		return
	}
	response.Created(w, category)
}

func (c *APICategoryController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	var input nameInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	category, err := c.categories.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load category")
		return
	}

	category.Name = input.Name
	if err := c.categories.Update(&category); err != nil {
		response.Conflict(w, "category name already in use")
		return
	}
	response.Success(w, category)
}

func (c *APICategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}
	if err := c.categories.Delete(id); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not delete category")
		return
	}
	response.Success(w, map[string]uint{"deleted": id})
}

type APIBrandController struct {
	brands *repositories.BrandRepository
}

func NewAPIBrandController() *APIBrandController {
	return &APIBrandController{brands: repositories.NewBrandRepository()}
}

func (c *APIBrandController) Index(w http.ResponseWriter, r *http.Request) {
	brands, err := c.brands.All()
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not list brands")
		return
	}
	response.Success(w, brands)
}

func (c *APIBrandController) Create(w http.ResponseWriter, r *http.Request) {
	var input nameInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	brand := models.Brand{Name: input.Name}
	if err := c.brands.Create(&brand); err != nil {
		response.Conflict(w, "brand already exists")
		return
	}
	response.Created(w, brand)
}

func (c *APIBrandController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	var input nameInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	brand, err := c.brands.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load brand")
		return
	}

	brand.Name = input.Name
	if err := c.brands.Update(&brand); err != nil {
		response.Conflict(w, "brand name already in use")
		return
	}
	response.Success(w, brand)
}

func (c *APIBrandController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}
	if err := c.brands.Delete(id); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not delete brand")
		return
	}
	response.Success(w, map[string]uint{"deleted": id})
}
