package services

import (
	"strings"

	"github.com/aferchichi/stockshop/app/models"
	"github.com/aferchichi/stockshop/app/repositories"
	"github.com/aferchichi/stockshop/pkg/collection"
)

// CatalogFilter narrows the shop page listing. Zero values mean "no filter".
type CatalogFilter struct {
	Query      string
	CategoryID uint
	BrandID    uint
}

// CatalogService serves the storefront's product views. Filtering happens in
// memory over the fetched list; the catalogue is small and unpaginated.
type CatalogService struct {
	products   *repositories.ProductRepository
	categories *repositories.CategoryRepository
	brands     *repositories.BrandRepository
}

func NewCatalogService() *CatalogService {
	return &CatalogService{
		products:   repositories.NewProductRepository(),
		categories: repositories.NewCategoryRepository(),
		brands:     repositories.NewBrandRepository(),
	}
}

// Shop returns the filtered product list: case-insensitive substring match
// on name and description, equality on category and brand.
func (s *CatalogService) Shop(filter CatalogFilter) ([]models.Product, error) {
	products, err := s.products.All()
	if err != nil {
		return nil, err
	}
	return FilterProducts(products, filter), nil
}

// FilterProducts applies filter to an already-fetched list. Split out so the
// matching rules are testable without a store.
func FilterProducts(products []models.Product, filter CatalogFilter) []models.Product {
	q := strings.ToLower(strings.TrimSpace(filter.Query))

	out := collection.Filter(products, func(p models.Product) bool {
		if filter.CategoryID != 0 && p.CategoryID != filter.CategoryID {
			return false
		}
		if filter.BrandID != 0 && p.BrandID != filter.BrandID {
			return false
		}
		if q == "" {
			return true
		}
		return strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q)
	})
	if out == nil {
		out = []models.Product{}
	}
	return out
}

// Detail returns one product for the detail page.
func (s *CatalogService) Detail(id uint) (models.Product, error) {
	return s.products.FindByID(id)
}

// Categories lists all categories for the filter sidebar.
func (s *CatalogService) Categories() ([]models.Category, error) {
	return s.categories.All()
}

// Brands lists all brands for the filter sidebar.
func (s *CatalogService) Brands() ([]models.Brand, error) {
	return s.brands.All()
}
