// Package feed pushes live stock changes to connected admin dashboards over
// WebSocket. Every placed order broadcasts the decremented lines.
package feed

import (
	"encoding/json"
	"net/http"

	"github.com/aferchichi/stockshop/app/services"
	"github.com/aferchichi/stockshop/pkg/event"
	"github.com/aferchichi/stockshop/pkg/logger"
	"github.com/aferchichi/stockshop/pkg/ws"
)

// StockChange is one broadcast line: a product lost qty units to an order.
type StockChange struct {
	OrderID   uint   `json:"order_id"`
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Qty       int    `json:"qty"`
}

// InventoryFeed owns the hub for the admin stock channel.
type InventoryFeed struct {
	hub *ws.Hub
}

// New creates the feed and starts its hub.
func New() *InventoryFeed {
	f := &InventoryFeed{hub: ws.NewHub()}
	go f.hub.Run()
	return f
}

// Subscribe registers the order.placed listener that feeds the hub. Called
// once at boot.
func (f *InventoryFeed) Subscribe() {
	event.Listen(services.EventOrderPlaced, func(payload interface{}) {
		placed, ok := payload.(services.OrderPlacedPayload)
		if !ok {
			return
		}
		for _, entry := range placed.Cart {
			data, err := json.Marshal(StockChange{
				OrderID:   placed.Order.ID,
				ProductID: entry.ProductID,
				Name:      entry.Name,
				Qty:       entry.Qty,
			})
			if err != nil {
				logger.Error("feed: marshal stock change", "error", err)
				continue
			}
			f.hub.Broadcast <- data
		}
	})
}

// Handler upgrades the connection and attaches it to the hub.
func (f *InventoryFeed) Handler(w http.ResponseWriter, r *http.Request) {
	ws.Upgrade(w, r, f.hub)
}
