// Package graph defines the read-only catalogue GraphQL schema exposed at
// /api/graphql.
package graph

import (
	gql "github.com/graphql-go/graphql"

	"github.com/aferchichi/stockshop/app/services"
	"github.com/aferchichi/stockshop/pkg/graphql"
)

var categoryType = gql.NewObject(gql.ObjectConfig{
	Name: "Category",
	Fields: gql.Fields{
		"id":   &gql.Field{Type: gql.Int},
		"name": &gql.Field{Type: gql.String},
	},
})

var brandType = gql.NewObject(gql.ObjectConfig{
	Name: "Brand",
	Fields: gql.Fields{
		"id":   &gql.Field{Type: gql.Int},
		"name": &gql.Field{Type: gql.String},
	},
})

var productType = gql.NewObject(gql.ObjectConfig{
	Name: "Product",
	Fields: gql.Fields{
		"id":          &gql.Field{Type: gql.Int},
		"name":        &gql.Field{Type: gql.String},
		"description": &gql.Field{Type: gql.String},
		"price":       &gql.Field{Type: gql.Float},
		"stock":       &gql.Field{Type: gql.Int},
		"image":       &gql.Field{Type: gql.String},
		"category":    &gql.Field{Type: categoryType},
		"brand":       &gql.Field{Type: brandType},
	},
})

// NewSchema builds the catalogue schema over the given catalog service.
func NewSchema(catalog *services.CatalogService) (gql.Schema, error) {
	query := gql.NewObject(gql.ObjectConfig{
		Name: "Query",
		Fields: gql.Fields{
			"products": &gql.Field{
				Type: gql.NewList(productType),
				Args: gql.FieldConfigArgument{
					"query":      &gql.ArgumentConfig{Type: gql.String},
					"categoryId": &gql.ArgumentConfig{Type: gql.Int},
					"brandId":    &gql.ArgumentConfig{Type: gql.Int},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					filter := services.CatalogFilter{}
					if q, ok := p.Args["query"].(string); ok {
						filter.Query = q
					}
					if id, ok := p.Args["categoryId"].(int); ok {
						filter.CategoryID = uint(id)
					}
					if id, ok := p.Args["brandId"].(int); ok {
						filter.BrandID = uint(id)
					}
					return catalog.Shop(filter)
				},
			},
			"product": &gql.Field{
				Type: productType,
				Args: gql.FieldConfigArgument{
					"id": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.Int)},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(int)
					return catalog.Detail(uint(id))
				},
			},
			"categories": &gql.Field{
				Type: gql.NewList(categoryType),
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					return catalog.Categories()
				},
			},
			"brands": &gql.Field{
				Type: gql.NewList(brandType),
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					return catalog.Brands()
				},
			},
		},
	})

	return graphql.NewSchema(query)
}
