// Package web wraps the raw session in a typed state object. Handlers and
// services read and mutate session state only through these accessors, so
// the session key layout lives in exactly one place.
package web

import (
	"net/http"
	"time"

	"github.com/aferchichi/stockshop/app/models"
	"github.com/aferchichi/stockshop/config"
	"github.com/aferchichi/stockshop/pkg/session"
)

// Session key layout.
const (
	keyClientID   = "client_id"
	keyAdminID    = "admin_id"
	keySuperadmin = "superadmin"
	keyCart       = "cart"
	keyDraft      = "checkout_draft"
	keyOrderDone  = "order_completed"
	keyLoginFail  = "login_failures:" // + role-prefixed identifier
)

// CheckoutDraft is the transient checkout state between the details form and
// order placement. SealedCard holds the crypt-sealed card payload while the
// card form round-trips; only Last4 survives into the order.
type CheckoutDraft struct {
	Address    string  `json:"address"`
	Method     string  `json:"method"`
	Total      float64 `json:"total"`
	SealedCard string  `json:"sealed_card,omitempty"`
	CardLast4  string  `json:"card_last4,omitempty"`
	CardOK     bool    `json:"card_ok"`
}

// OrderCompleted is the one-shot confirmation payload, rendered exactly once.
type OrderCompleted struct {
	OrderID   uint    `json:"order_id"`
	Total     float64 `json:"total"`
	Address   string  `json:"address"`
	Method    string  `json:"method"`
	CardLast4 string  `json:"card_last4,omitempty"`
	Items     int     `json:"items"`
}

type loginCounter struct {
	Count       int   `json:"count"`
	LockedUntil int64 `json:"locked_until"`
}

// State is the per-request session state handle.
type State struct {
	sess *session.Session
}

// FromRequest builds the state over the request's session.
func FromRequest(r *http.Request) *State {
	return &State{sess: session.FromCtx(r)}
}

// Over wraps an existing session handle. Used by tests.
func Over(s *session.Session) *State {
	return &State{sess: s}
}

// Save persists the session and refreshes the cookie.
func (s *State) Save(w http.ResponseWriter) error { return s.sess.Save(w) }

// ------------------- Identity -------------------

// ClientID returns the signed-in client, if any.
func (s *State) ClientID() (uint, bool) {
	id, ok := s.sess.GetInt(keyClientID)
	if !ok || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// AdminID returns the signed-in admin, if any.
func (s *State) AdminID() (uint, bool) {
	id, ok := s.sess.GetInt(keyAdminID)
	if !ok || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// IsSuperadmin reports whether the signed-in admin has the superadmin flag.
func (s *State) IsSuperadmin() bool {
	v, ok := s.sess.Get(keySuperadmin)
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// SignInClient binds the session to a client identity. The session ID is
// regenerated against fixation, and any admin identity is dropped; a session
// holds an admin xor a client, never both.
func (s *State) SignInClient(id uint) {
	s.sess.Regenerate()
	s.sess.Delete(keyAdminID)
	s.sess.Delete(keySuperadmin)
	s.sess.Set(keyClientID, int(id))
}

// SignInAdmin binds the session to an admin identity.
func (s *State) SignInAdmin(id uint, superadmin bool) {
	s.sess.Regenerate()
	s.sess.Delete(keyClientID)
	s.sess.Set(keyAdminID, int(id))
	s.sess.Set(keySuperadmin, superadmin)
}

// SignOut destroys all session state.
func (s *State) SignOut() {
	s.sess.Invalidate()
}

// ------------------- Cart -------------------

// Cart returns the session cart, empty when none exists.
func (s *State) Cart() models.Cart {
	var cart models.Cart
	s.sess.GetJSON(keyCart, &cart)
	return cart
}

// SetCart replaces the session cart.
func (s *State) SetCart(c models.Cart) {
	_ = s.sess.SetJSON(keyCart, c)
}

// ClearCart drops the cart after order placement.
func (s *State) ClearCart() {
	s.sess.Delete(keyCart)
}

// ------------------- Checkout draft -------------------

// Draft returns the transient checkout draft, if one exists.
func (s *State) Draft() (CheckoutDraft, bool) {
	var d CheckoutDraft
	ok := s.sess.GetJSON(keyDraft, &d)
	return d, ok
}

// SetDraft stores the checkout draft.
func (s *State) SetDraft(d CheckoutDraft) {
	_ = s.sess.SetJSON(keyDraft, d)
}

// ClearDraft drops the checkout draft.
func (s *State) ClearDraft() {
	s.sess.Delete(keyDraft)
}

// ------------------- One-shot confirmation -------------------

// SetOrderCompleted stashes the confirmation payload for a single render.
func (s *State) SetOrderCompleted(p OrderCompleted) {
	_ = s.sess.FlashJSON(keyOrderDone, p)
}

// TakeOrderCompleted returns and deletes the confirmation payload.
// The second return is false once the payload has been consumed.
func (s *State) TakeOrderCompleted() (OrderCompleted, bool) {
	var p OrderCompleted
	ok := s.sess.GetFlashJSON(keyOrderDone, &p)
	return p, ok
}

// ------------------- Login rate limiting -------------------

func failKey(role, identifier string) string {
	return keyLoginFail + role + ":" + identifier
}

// IsLockedOut reports whether the identifier is currently rate-limited,
// along with the seconds remaining in the lockout window.
func (s *State) IsLockedOut(role, identifier string) (bool, int) {
	var c loginCounter
	if !s.sess.GetJSON(failKey(role, identifier), &c) {
		return false, 0
	}
	remaining := c.LockedUntil - time.Now().Unix()
	if remaining <= 0 {
		return false, 0
	}
	return true, int(remaining)
}

// RegisterLoginFailure bumps the failure counter for the identifier and
// starts the lockout window once the threshold is crossed. Returns the new
// failure count.
func (s *State) RegisterLoginFailure(role, identifier string) int {
	key := failKey(role, identifier)

	var c loginCounter
	s.sess.GetJSON(key, &c)
	c.Count++
	if c.Count >= config.MaxLoginAttempts() {
		c.LockedUntil = time.Now().Unix() + int64(config.LoginLockoutTime())
	}
	_ = s.sess.SetJSON(key, c)
	return c.Count
}

// ResetLoginFailures clears the counter after a successful login.
func (s *State) ResetLoginFailures(role, identifier string) {
	s.sess.Delete(failKey(role, identifier))
}
