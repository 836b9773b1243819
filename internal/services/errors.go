package services

import "errors"

// Error taxonomy surfaced to the endpoint layer. Endpoints map these to
// HTTP codes; anything unwrapped is a 500.
var (
	ErrValidation      = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrAuth            = errors.New("authentication required")
	ErrForbidden       = errors.New("not allowed")
	ErrGate            = errors.New("server membership required")
	ErrStock           = errors.New("insufficient stock")
	ErrCouponInactive  = errors.New("coupon is not active")
	ErrCouponExhausted = errors.New("coupon usage limit reached")

	// ErrConflict: a guarded order move matched no row. The order left
	// the expected state under us; logged as a data-integrity incident.
	ErrConflict = errors.New("order changed concurrently")
)
