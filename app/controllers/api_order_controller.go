package controllers

import (
	"net/http"

	"github.com/aferchichi/stockshop/app/repositories"
	"github.com/aferchichi/stockshop/pkg/response"
)

// APIOrderController gives admins a read view over placed orders.
type APIOrderController struct {
	orders *repositories.OrderRepository
}

func NewAPIOrderController() *APIOrderController {
	return &APIOrderController{orders: repositories.NewOrderRepository()}
}

// Index lists orders, newest first, paginated.
func (c *APIOrderController) Index(w http.ResponseWriter, r *http.Request) {
	orders, pagination, err := c.orders.All(formInt(r, "page", 1), formInt(r, "limit", 20))
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not list orders")
		return
	}
	response.Paginated(w, orders, pagination)
}
