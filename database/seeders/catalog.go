package seeders

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aferchichi/stockshop/app/models"
	"github.com/aferchichi/stockshop/pkg/auth"
)

func init() {
	Register("admins", SeedAdmins)
	Register("catalog", SeedCatalog)
}

// SeedAdmins creates the bootstrap superadmin. The password must be changed
// on first sign-in.
func SeedAdmins(db *gorm.DB) error {
	hash, err := auth.HashPassword("changeme123")
	if err != nil {
		return err
	}

	admin := models.Admin{
		Person: models.Person{
			Name:     "Site",
			Surname:  "Admin",
			Email:    "admin@stockshop.example",
			Password: hash,
		},
		Superadmin: true,
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&admin).Error
}

// SeedCatalog inserts a starter taxonomy and a handful of products so a
// fresh install has something on the shelf.
func SeedCatalog(db *gorm.DB) error {
	categories := []models.Category{{Name: "Phones"}, {Name: "Laptops"}, {Name: "Accessories"}}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&categories).Error; err != nil {
		return err
	}

	brands := []models.Brand{{Name: "Acme"}, {Name: "Globex"}}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&brands).Error; err != nil {
		return err
	}

	products := []models.Product{
		{Name: "Acme One", Description: "Entry-level phone", Price: 199.99, Stock: 25, CategoryID: categories[0].ID, BrandID: brands[0].ID},
		{Name: "Acme Pro", Description: "Flagship phone", Price: 899.00, Stock: 10, CategoryID: categories[0].ID, BrandID: brands[0].ID},
		{Name: "Globex Book 14", Description: "Thin and light laptop", Price: 1249.00, Stock: 8, CategoryID: categories[1].ID, BrandID: brands[1].ID},
		{Name: "Globex Charger", Description: "65W USB-C charger", Price: 39.50, Stock: 60, CategoryID: categories[2].ID, BrandID: brands[1].ID},
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&products).Error
}
