package repositories

import (
	"github.com/aferchichi/stockshop/app/models"
	"github.com/aferchichi/stockshop/pkg/orm"
)

// AdminRepository handles database operations for Admin.
type AdminRepository struct{}

func NewAdminRepository() *AdminRepository {
	return &AdminRepository{}
}

// FindByEmail looks up an admin by email address.
func (r *AdminRepository) FindByEmail(email string) (models.Admin, error) {
	var admin models.Admin
	err := orm.DB().Model(&models.Admin{}).Where("email = ?", email).First(&admin)
	return admin, err
}

// FindByID looks up an admin by primary key.
func (r *AdminRepository) FindByID(id uint) (models.Admin, error) {
	var admin models.Admin
	err := orm.DB().Model(&models.Admin{}).Where("id = ?", id).First(&admin)
	return admin, err
}

// All returns all admins with pagination.
func (r *AdminRepository) All(page, limit int) ([]models.Admin, orm.Pagination, error) {
	var admins []models.Admin
	pagination, err := orm.DB().Model(&models.Admin{}).Order("id").GetWithPagination(&admins, page, limit)
	return admins, pagination, err
}

// Create persists a new admin record.
func (r *AdminRepository) Create(admin *models.Admin) error {
	return orm.DB().Create(admin)
}

// Update persists changes to an existing admin.
func (r *AdminRepository) Update(admin *models.Admin) error {
	return orm.DB().Save(admin)
}

// Delete removes an admin.
func (r *AdminRepository) Delete(id uint) error {
	return orm.DB().Where("id = ?", id).Delete(&models.Admin{})
}
