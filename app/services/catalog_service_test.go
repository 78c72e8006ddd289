package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aferchichi/stockshop/app/models"
)

func sampleProducts() []models.Product {
	p1 := models.Product{Name: "Acme One", Description: "Entry-level phone", CategoryID: 1, BrandID: 1}
	p1.ID = 1
	p2 := models.Product{Name: "Globex Book", Description: "Thin laptop", CategoryID: 2, BrandID: 2}
	p2.ID = 2
	p3 := models.Product{Name: "Acme Charger", Description: "USB-C charger", CategoryID: 3, BrandID: 1}
	p3.ID = 3
	return []models.Product{p1, p2, p3}
}

func TestFilterProductsNoFilterReturnsAll(t *testing.T) {
	got := FilterProducts(sampleProducts(), CatalogFilter{})
	assert.Len(t, got, 3)
}

func TestFilterProductsQueryIsCaseInsensitive(t *testing.T) {
	got := FilterProducts(sampleProducts(), CatalogFilter{Query: "aCmE"})

	assert.Len(t, got, 2)
	assert.Equal(t, "Acme One", got[0].Name)
}

func TestFilterProductsQueryMatchesDescription(t *testing.T) {
	got := FilterProducts(sampleProducts(), CatalogFilter{Query: "laptop"})

	assert.Len(t, got, 1)
	assert.Equal(t, "Globex Book", got[0].Name)
}

func TestFilterProductsByCategoryAndBrand(t *testing.T) {
	got := FilterProducts(sampleProducts(), CatalogFilter{CategoryID: 3, BrandID: 1})

	assert.Len(t, got, 1)
	assert.Equal(t, "Acme Charger", got[0].Name)
}

func TestFilterProductsNoMatchIsEmptyNotNil(t *testing.T) {
	got := FilterProducts(sampleProducts(), CatalogFilter{Query: "nothing here"})

	assert.NotNil(t, got)
	assert.Empty(t, got)
}
