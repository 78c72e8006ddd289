package models

import "gorm.io/gorm"

// Payment methods accepted at checkout.
const (
	PaymentCard      = "card"
	PaymentOnArrival = "on_arrival"
)

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m string) bool {
	return m == PaymentCard || m == PaymentOnArrival
}

// Order is the durable record of a completed purchase. Immutable once
// created; there is no update or cancel path.
type Order struct {
	gorm.Model
	ClientID      uint    `gorm:"not null;index"    json:"client_id"`
	Address       string  `gorm:"size:500;not null" json:"address"`
	PaymentMethod string  `gorm:"size:20;not null"  json:"payment_method"`
	CardLast4     string  `gorm:"size:4"            json:"card_last4,omitempty"`
	Total         float64 `gorm:"not null"          json:"total"`

	Lines []OrderLine `gorm:"foreignKey:OrderID" json:"lines,omitempty"`
}

// OrderLine records one product at the price it sold for.
type OrderLine struct {
	gorm.Model
	OrderID   uint    `gorm:"not null;index" json:"order_id"`
	ProductID uint    `gorm:"not null;index" json:"product_id"`
	Qty       int     `gorm:"not null"       json:"qty"`
	UnitPrice float64 `gorm:"not null"       json:"unit_price"`
}
