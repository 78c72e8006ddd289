package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/aferchichi/stockshop/app/models"
	"github.com/aferchichi/stockshop/app/repositories"
	"github.com/aferchichi/stockshop/app/web"
)

// CartService mutates the session cart. All cart state lives in the session;
// the store is touched only to check the product and its stock on add.
type CartService struct {
	products *repositories.ProductRepository
}

func NewCartService() *CartService {
	return &CartService{products: repositories.NewProductRepository()}
}

// Add puts qty units of a product into the cart, merging with an existing
// line. The requested quantity plus whatever the cart already holds must
// fit in stock, else ErrStockConflict.
func (s *CartService) Add(state *web.State, productID uint, qty int) error {
	if qty < 1 {
		qty = 1
	}

	product, err := s.products.FindByID(productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("services: product %d: %w", productID, err)
	}
	if err != nil {
		return fmt.Errorf("services: product lookup: %w", err)
	}

	cart := state.Cart()
	if !product.InStock(cart.Quantity(productID) + qty) {
		return ErrStockConflict
	}

	state.SetCart(cart.Add(models.CartEntry{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Image:     product.Image,
		Qty:       qty,
	}))
	return nil
}

// Update sets the quantity of the line at index; zero or negative removes it.
func (s *CartService) Update(state *web.State, index, qty int) {
	state.SetCart(state.Cart().Update(index, qty))
}

// Remove drops the line at index.
func (s *CartService) Remove(state *web.State, index int) {
	state.SetCart(state.Cart().Remove(index))
}
