package repository

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrCouponExhausted   = errors.New("coupon exhausted")

	// ErrConflict means a guarded update matched no row: the order moved
	// under us. Callers log this as a data-integrity incident.
	ErrConflict = errors.New("row changed concurrently")
)
