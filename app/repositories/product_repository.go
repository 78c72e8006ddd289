package repositories

import (
	"fmt"
	"time"

	"github.com/aferchichi/stockshop/app/models"
	"github.com/aferchichi/stockshop/pkg/cache"
	"github.com/aferchichi/stockshop/pkg/orm"
)

const productCacheTTL = 5 * time.Minute

// ProductRepository handles database operations for the catalogue.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// All returns every product with category and brand preloaded. The shop page
// filters this list in memory.
func (r *ProductRepository) All() ([]models.Product, error) {
	var products []models.Product
	err := orm.DB().
		Model(&models.Product{}).
		Preload("Category").
		Preload("Brand").
		Order("id").
		Get(&products)
	return products, err
}

// FindByID returns one product with its associations, via the Redis cache.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var product models.Product
	key := fmt.Sprintf("stockshop:product:%d", id)
	err := orm.DB().
		Model(&models.Product{}).
		Preload("Category").
		Preload("Brand").
		Where("id = ?", id).
		CacheFirst(key, productCacheTTL, &product)
	return product, err
}

// LowStock returns products at or below the threshold, lowest first.
func (r *ProductRepository) LowStock(threshold int) ([]models.Product, error) {
	var products []models.Product
	err := orm.DB().
		Model(&models.Product{}).
		Where("stock <= ?", threshold).
		Order("stock").
		Get(&products)
	return products, err
}

// Create persists a new product and invalidates nothing; the product cannot
// be cached yet.
func (r *ProductRepository) Create(product *models.Product) error {
	return orm.DB().Create(product)
}

// Update persists changes and drops the product's cache entry.
func (r *ProductRepository) Update(product *models.Product) error {
	if err := orm.DB().Save(product); err != nil {
		return err
	}
	return cache.Del(fmt.Sprintf("stockshop:product:%d", product.ID))
}

// Delete removes a product and drops its cache entry.
func (r *ProductRepository) Delete(id uint) error {
	if err := orm.DB().Where("id = ?", id).Delete(&models.Product{}); err != nil {
		return err
	}
	return cache.Del(fmt.Sprintf("stockshop:product:%d", id))
}
