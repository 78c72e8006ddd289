package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/aferchichi/stockshop/app/models"
	"github.com/aferchichi/stockshop/app/web"
	"github.com/aferchichi/stockshop/pkg/crypt"
	"github.com/aferchichi/stockshop/pkg/event"
	"github.com/aferchichi/stockshop/pkg/logger"
	"github.com/aferchichi/stockshop/pkg/metrics"
	"github.com/aferchichi/stockshop/pkg/orm"
)

// EventOrderPlaced is fired after a successful placement. The payload is an
// OrderPlacedPayload; listeners (confirmation mail, stock feed) are wired in
// the server bootstrap.
const EventOrderPlaced = "order.placed"

// OrderPlacedPayload travels with EventOrderPlaced.
type OrderPlacedPayload struct {
	Order models.Order
	Cart  models.Cart
}

// PlacementStatus classifies the outcome of an order placement.
type PlacementStatus int

const (
	// Placed means the order and all its lines were written and stock
	// decremented, atomically.
	Placed PlacementStatus = iota
	// ValidationFailed means a precondition or input check failed; nothing
	// was written and the cart is intact.
	ValidationFailed
	// Conflict means a competing checkout consumed the stock first; the
	// transaction rolled back and the cart is intact.
	Conflict
	// StoreUnavailable means the database failed; the transaction rolled
	// back and the cart is intact.
	StoreUnavailable
)

// PlacementResult is the structured outcome of PlaceOrder.
type PlacementResult struct {
	Status  PlacementStatus
	OrderID uint
	Errors  []string
}

// CheckoutService drives the checkout stages: details, optional card
// capture, and the order placement transaction.
type CheckoutService struct{}

func NewCheckoutService() *CheckoutService {
	return &CheckoutService{}
}

// ------------------- Details stage -------------------

// SubmitDetails validates the delivery form and stores the checkout draft.
// Returns the field errors (empty on success) and whether the card stage
// must run before placement.
func (s *CheckoutService) SubmitDetails(state *web.State, address, method string) (errs []string, needsCard bool) {
	address = strings.TrimSpace(address)

	if address == "" {
		errs = append(errs, "Delivery address is required.")
	}
	if !models.ValidPaymentMethod(method) {
		errs = append(errs, "Please choose a valid payment method.")
	}
	if len(errs) > 0 {
		return errs, false
	}

	state.SetDraft(web.CheckoutDraft{
		Address: address,
		Method:  method,
		Total:   state.Cart().Total(),
	})
	return nil, method == models.PaymentCard
}

// ------------------- Card stage -------------------

// CardInput is the card capture form. No gateway is involved; the values
// are format-checked, sealed into the draft, and discarded at placement
// with only the last four digits retained.
type CardInput struct {
	Number string `form:"card_number"`
	Holder string `form:"card_holder"`
	Expiry string `form:"card_expiry"` // MM/YY
	CVV    string `form:"card_cvv"`
}

var (
	panRE    = regexp.MustCompile(`^\d{16}$`)
	expiryRE = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvRE    = regexp.MustCompile(`^\d{3,4}$`)
)

// SubmitCard validates the card form and marks the draft ready for
// placement. Returns field errors, empty on success.
func (s *CheckoutService) SubmitCard(state *web.State, input CardInput) []string {
	var errs []string

	number := strings.ReplaceAll(strings.TrimSpace(input.Number), " ", "")
	if !panRE.MatchString(number) {
		errs = append(errs, "Card number must be 16 digits.")
	}
	if strings.TrimSpace(input.Holder) == "" {
		errs = append(errs, "Cardholder name is required.")
	}
	if !expiryRE.MatchString(strings.TrimSpace(input.Expiry)) {
		errs = append(errs, "Expiry must be in MM/YY format.")
	}
	if !cvvRE.MatchString(strings.TrimSpace(input.CVV)) {
		errs = append(errs, "CVV must be 3 or 4 digits.")
	}
	if len(errs) > 0 {
		return errs
	}

	draft, ok := state.Draft()
	if !ok || draft.Method != models.PaymentCard {
		return []string{"Checkout details are missing, please start again."}
	}

	sealed, err := crypt.EncryptJSON(input)
	if err != nil {
		logger.Error("checkout: seal card draft", "error", err)
		return []string{"Something went wrong, please try again."}
	}

	draft.SealedCard = sealed
	draft.CardLast4 = number[len(number)-4:]
	draft.CardOK = true
	state.SetDraft(draft)
	return nil
}

// ------------------- Placement -------------------

// PlaceOrder converts the session cart into a durable order in one
// transaction: order row, line rows, and stock decrements with a
// stock >= qty guard. Any failure rolls the whole write back and leaves
// cart and draft intact. On success the cart and draft are cleared and the
// one-shot confirmation payload is set.
func (s *CheckoutService) PlaceOrder(state *web.State, clientID uint) PlacementResult {
	cart := state.Cart()
	draft, hasDraft := state.Draft()

	var errs []string
	if cart.IsEmpty() {
		errs = append(errs, "Your cart is empty.")
	}
	if !hasDraft {
		errs = append(errs, "Checkout details are missing.")
	} else {
		if strings.TrimSpace(draft.Address) == "" {
			errs = append(errs, "Delivery address is required.")
		}
		if !models.ValidPaymentMethod(draft.Method) {
			errs = append(errs, "Please choose a valid payment method.")
		}
		if draft.Method == models.PaymentCard && !draft.CardOK {
			errs = append(errs, "Card details are incomplete.")
		}
	}
	if len(errs) > 0 {
		metrics.CheckoutFailures.WithLabelValues("validation").Inc()
		return PlacementResult{Status: ValidationFailed, Errors: errs}
	}

	order := models.Order{
		ClientID:      clientID,
		Address:       draft.Address,
		PaymentMethod: draft.Method,
		CardLast4:     draft.CardLast4,
		Total:         cart.Total(),
	}

	var units int
	err := orm.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for _, entry := range cart {
			line := models.OrderLine{
				OrderID:   order.ID,
				ProductID: entry.ProductID,
				Qty:       entry.Qty,
				UnitPrice: entry.Price,
			}
			if err := tx.Create(&line).Error; err != nil {
				return fmt.Errorf("create line for product %d: %w", entry.ProductID, err)
			}

			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", entry.ProductID, entry.Qty).
				Update("stock", gorm.Expr("stock - ?", entry.Qty))
			if res.Error != nil {
				return fmt.Errorf("decrement stock for product %d: %w", entry.ProductID, res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("product %d: %w", entry.ProductID, ErrStockConflict)
			}
			units += entry.Qty
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrStockConflict) {
			metrics.CheckoutFailures.WithLabelValues("stock_conflict").Inc()
			logger.Warn("checkout: stock conflict", "client_id", clientID, "error", err)
			return PlacementResult{
				Status: Conflict,
				Errors: []string{"An item in your cart just sold out, please review your cart."},
			}
		}
		metrics.CheckoutFailures.WithLabelValues("store_unavailable").Inc()
		logger.Error("checkout: placement failed", "client_id", clientID, "error", err)
		return PlacementResult{
			Status: StoreUnavailable,
			Errors: []string{"We could not place your order, please try again."},
		}
	}

	metrics.OrdersPlaced.WithLabelValues(draft.Method).Inc()
	metrics.StockDecremented.Add(float64(units))
	logger.Info("checkout: order placed",
		"order_id", order.ID, "client_id", clientID,
		"total", order.Total, "method", order.PaymentMethod)

	state.SetOrderCompleted(web.OrderCompleted{
		OrderID:   order.ID,
		Total:     order.Total,
		Address:   order.Address,
		Method:    order.PaymentMethod,
		CardLast4: order.CardLast4,
		Items:     len(cart),
	})
	state.ClearCart()
	state.ClearDraft()

	event.FireAsync(EventOrderPlaced, OrderPlacedPayload{Order: order, Cart: cart})

	return PlacementResult{Status: Placed, OrderID: order.ID}
}
