package services

import "errors"

// Domain outcomes the controllers translate into user-facing messages.
// Login distinguishes unknown email from wrong password on purpose; the
// original storefront does, and the messaging is kept even though it makes
// accounts enumerable.
var (
	ErrEmailNotFound = errors.New("services: no account with that email")
	ErrBadPassword   = errors.New("services: password does not match")
	ErrRateLimited   = errors.New("services: too many failed attempts")
	ErrEmailTaken    = errors.New("services: email already registered")
	ErrStockConflict = errors.New("services: not enough stock")
)
