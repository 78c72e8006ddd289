package repositories

import (
	"github.com/aferchichi/stockshop/app/models"
	"github.com/aferchichi/stockshop/pkg/orm"
)

// OrderRepository handles database reads for Order. Order creation happens
// inside the checkout transaction, not here.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// ForClient returns a client's orders, newest first, with lines preloaded.
func (r *OrderRepository) ForClient(clientID uint) ([]models.Order, error) {
	var orders []models.Order
	err := orm.DB().
		Model(&models.Order{}).
		Preload("Lines").
		Where("client_id = ?", clientID).
		Order("id desc").
		Get(&orders)
	return orders, err
}

// FindForClient returns one order, scoped to its owner so clients cannot
// read each other's orders.
func (r *OrderRepository) FindForClient(orderID, clientID uint) (models.Order, error) {
	var order models.Order
	err := orm.DB().
		Model(&models.Order{}).
		Preload("Lines").
		Where("id = ? AND client_id = ?", orderID, clientID).
		First(&order)
	return order, err
}

// All returns all orders with pagination, newest first. Admin API only.
func (r *OrderRepository) All(page, limit int) ([]models.Order, orm.Pagination, error) {
	var orders []models.Order
	pagination, err := orm.DB().
		Model(&models.Order{}).
		Preload("Lines").
		Order("id desc").
		GetWithPagination(&orders, page, limit)
	return orders, pagination, err
}
