// Package listeners wires domain events to their side effects. Register is
// called once at boot, after the queue is up.
package listeners

import (
	"github.com/aferchichi/stockshop/app/jobs"
	"github.com/aferchichi/stockshop/app/repositories"
	"github.com/aferchichi/stockshop/app/services"
	"github.com/aferchichi/stockshop/pkg/event"
	"github.com/aferchichi/stockshop/pkg/logger"
	"github.com/aferchichi/stockshop/pkg/queue"
)

// Register attaches all event listeners.
func Register() {
	registerOrderMail()
}

// registerOrderMail queues the confirmation email when an order lands.
func registerOrderMail() {
	clients := repositories.NewClientRepository()

	event.Listen(services.EventOrderPlaced, func(payload interface{}) {
		placed, ok := payload.(services.OrderPlacedPayload)
		if !ok {
			return
		}

		client, err := clients.FindByID(placed.Order.ClientID)
		if err != nil {
			logger.Error("listeners: client lookup for confirmation mail",
				"order_id", placed.Order.ID, "client_id", placed.Order.ClientID, "error", err)
			return
		}

		job := &jobs.OrderMailJob{
			OrderID:   placed.Order.ID,
			Email:     client.Email,
			Name:      client.FullName(),
			Address:   placed.Order.Address,
			Method:    placed.Order.PaymentMethod,
			CardLast4: placed.Order.CardLast4,
			Total:     placed.Order.Total,
		}
		for _, entry := range placed.Cart {
			job.Lines = append(job.Lines, jobs.OrderMailLine{
				Name:      entry.Name,
				Qty:       entry.Qty,
				UnitPrice: entry.Price,
			})
		}

		if err := queue.Dispatch(job); err != nil {
			logger.Error("listeners: queue confirmation mail",
				"order_id", placed.Order.ID, "error", err)
		}
	})
}
