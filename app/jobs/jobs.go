// Package jobs holds the background work pushed through the queue: order
// confirmation mail and the scheduled low-stock report.
package jobs

import (
	"fmt"
	"strings"

	"github.com/aferchichi/stockshop/app/models"
	"github.com/aferchichi/stockshop/app/repositories"
	"github.com/aferchichi/stockshop/config"
	"github.com/aferchichi/stockshop/pkg/logger"
	"github.com/aferchichi/stockshop/pkg/mail"
	"github.com/aferchichi/stockshop/pkg/queue"
)

// RegisterAll makes every job type known to the queue so workers can
// deserialize them. Called once from the server bootstrap.
func RegisterAll() {
	queue.Register(fmt.Sprintf("%T", &OrderMailJob{}), func() queue.Job { return &OrderMailJob{} })
	queue.Register(fmt.Sprintf("%T", &LowStockReportJob{}), func() queue.Job { return &LowStockReportJob{} })
}

// ------------------- Order confirmation -------------------

// OrderMailLine is one purchased item in the confirmation email.
type OrderMailLine struct {
	Name      string  `json:"name"`
	Qty       int     `json:"qty"`
	UnitPrice float64 `json:"unit_price"`
}

// OrderMailJob emails the client their order confirmation. The payload is
// self-contained so the worker never re-reads the order.
type OrderMailJob struct {
	OrderID   uint            `json:"order_id"`
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	Address   string          `json:"address"`
	Method    string          `json:"method"`
	CardLast4 string          `json:"card_last4"`
	Total     float64         `json:"total"`
	Lines     []OrderMailLine `json:"lines"`
}

func (j *OrderMailJob) Handle() error {
	var b strings.Builder
	fmt.Fprintf(&b, "<h1>Thank you for your order, %s!</h1>", j.Name)
	fmt.Fprintf(&b, "<p>Order #%d will be delivered to: %s</p>", j.OrderID, j.Address)

	b.WriteString("<ul>")
	for _, line := range j.Lines {
		fmt.Fprintf(&b, "<li>%s x%d at %.2f</li>", line.Name, line.Qty, line.UnitPrice)
	}
	b.WriteString("</ul>")

	fmt.Fprintf(&b, "<p><strong>Total: %.2f</strong></p>", j.Total)
	switch j.Method {
	case models.PaymentCard:
		fmt.Fprintf(&b, "<p>Paid by card ending in %s.</p>", j.CardLast4)
	default:
		b.WriteString("<p>Payment is due on arrival.</p>")
	}

	err := mail.To(j.Email).
		Subject(fmt.Sprintf("Your StockShop order #%d", j.OrderID)).
		Body(b.String()).
		Send()
	if err != nil {
		return fmt.Errorf("jobs: order %d confirmation mail: %w", j.OrderID, err)
	}

	logger.Info("jobs: confirmation sent", "order_id", j.OrderID, "email", j.Email)
	return nil
}

// ------------------- Low-stock report -------------------

// LowStockReportJob mails the operations address a list of products at or
// below the threshold. Scheduled daily; a run with nothing to report sends
// no mail.
type LowStockReportJob struct {
	Threshold int `json:"threshold"`
}

func (j *LowStockReportJob) Handle() error {
	threshold := j.Threshold
	if threshold <= 0 {
		threshold = config.GetInt("LOW_STOCK_THRESHOLD", 5)
	}

	products, err := repositories.NewProductRepository().LowStock(threshold)
	if err != nil {
		return fmt.Errorf("jobs: low-stock query: %w", err)
	}
	if len(products) == 0 {
		logger.Info("jobs: low-stock report skipped, nothing under threshold", "threshold", threshold)
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<h1>Low stock report</h1><p>%d product(s) at or below %d units:</p><ul>", len(products), threshold)
	for _, p := range products {
		fmt.Fprintf(&b, "<li>#%d %s: %d left</li>", p.ID, p.Name, p.Stock)
	}
	b.WriteString("</ul>")

	to := config.Get("REPORT_MAIL_TO", "ops@stockshop.example")
	err = mail.To(to).
		Subject(fmt.Sprintf("Low stock: %d product(s) need restocking", len(products))).
		Body(b.String()).
		Send()
	if err != nil {
		return fmt.Errorf("jobs: low-stock report mail: %w", err)
	}

	logger.Info("jobs: low-stock report sent", "products", len(products), "to", to)
	return nil
}
