package migrations

import (
	"gorm.io/gorm"

	"github.com/aferchichi/stockshop/app/models"
	"github.com/aferchichi/stockshop/pkg/migration"
	"github.com/aferchichi/stockshop/pkg/queue"
)

func init() {
	migration.Register("20260101000000_create_people_tables", &CreatePeopleTables{})
	migration.Register("20260101000001_create_catalog_tables", &CreateCatalogTables{})
	migration.Register("20260101000002_create_order_tables", &CreateOrderTables{})
	migration.Register("20260101000003_create_failed_jobs_table", &CreateFailedJobsTable{})
}

// -------- 0000: admins and clients --------

type CreatePeopleTables struct{}

func (m *CreatePeopleTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Admin{}, &models.Client{})
}

func (m *CreatePeopleTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("admins", "clients")
}

// -------- 0001: categories, brands, products --------

type CreateCatalogTables struct{}

func (m *CreateCatalogTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Category{}, &models.Brand{}, &models.Product{})
}

func (m *CreateCatalogTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products", "brands", "categories")
}

// -------- 0002: orders and order lines --------

type CreateOrderTables struct{}

func (m *CreateOrderTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.OrderLine{})
}

func (m *CreateOrderTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("order_lines", "orders")
}

// -------- 0003: failed queue jobs --------

type CreateFailedJobsTable struct{}

func (m *CreateFailedJobsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&queue.FailedJobRecord{})
}

func (m *CreateFailedJobsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("failed_jobs")
}
