package models

import "gorm.io/gorm"

// Category groups products (e.g. "Laptops").
type Category struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;size:255;not null" json:"name"`
}

// Brand is a product manufacturer.
type Brand struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;size:255;not null" json:"name"`
}

// Product is one catalogue item. Stock never goes below zero; the checkout
// transaction guards the decrement.
type Product struct {
	gorm.Model
	Name        string  `gorm:"size:255;not null;index" json:"name"`
	Description string  `gorm:"type:text"               json:"description"`
	Price       float64 `gorm:"not null;default:0"      json:"price"`
	Stock       int     `gorm:"not null;default:0"      json:"stock"`
	Image       string  `gorm:"size:255"                json:"image"`
	CategoryID  uint    `gorm:"not null;index"          json:"category_id"`
	BrandID     uint    `gorm:"not null;index"          json:"brand_id"`

	Category Category `json:"category,omitempty"`
	Brand    Brand    `json:"brand,omitempty"`
}

// InStock reports whether at least qty units are available.
func (p Product) InStock(qty int) bool {
	return p.Stock >= qty
}
