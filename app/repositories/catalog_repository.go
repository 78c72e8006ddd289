package repositories

import (
	"github.com/aferchichi/stockshop/app/models"
	"github.com/aferchichi/stockshop/pkg/orm"
)

// CategoryRepository handles database operations for Category.
type CategoryRepository struct{}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{}
}

// All returns every category ordered by name.
func (r *CategoryRepository) All() ([]models.Category, error) {
	var categories []models.Category
	err := orm.DB().Model(&models.Category{}).Order("name").Get(&categories)
	return categories, err
}

// FindByID looks up a category by primary key.
func (r *CategoryRepository) FindByID(id uint) (models.Category, error) {
	var category models.Category
	err := orm.DB().Model(&models.Category{}).Where("id = ?", id).First(&category)
	return category, err
}

// Create persists a new category.
func (r *CategoryRepository) Create(category *models.Category) error {
	return orm.DB().Create(category)
}

// Update persists changes to a category.
func (r *CategoryRepository) Update(category *models.Category) error {
	return orm.DB().Save(category)
}

// Delete removes a category.
func (r *CategoryRepository) Delete(id uint) error {
	return orm.DB().Where("id = ?", id).Delete(&models.Category{})
}

// BrandRepository handles database operations for Brand.
type BrandRepository struct{}

func NewBrandRepository() *BrandRepository {
	return &BrandRepository{}
}

// All returns every brand ordered by name.
func (r *BrandRepository) All() ([]models.Brand, error) {
	var brands []models.Brand
	err := orm.DB().Model(&models.Brand{}).Order("name").Get(&brands)
	return brands, err
}

// FindByID looks up a brand by primary key.
func (r *BrandRepository) FindByID(id uint) (models.Brand, error) {
	var brand models.Brand
	err := orm.DB().Model(&models.Brand{}).Where("id = ?", id).First(&brand)
	return brand, err
}

// Create persists a new brand.
func (r *BrandRepository) Create(brand *models.Brand) error {
	return orm.DB().Create(brand)
}

// Update persists changes to a brand.
func (r *BrandRepository) Update(brand *models.Brand) error {
	return orm.DB().Save(brand)
}

// Delete removes a brand.
func (r *BrandRepository) Delete(id uint) error {
	return orm.DB().Where("id = ?", id).Delete(&models.Brand{})
}
