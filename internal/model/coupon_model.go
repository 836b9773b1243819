package model

import "time"

type Coupon struct {
	CouponID    int64      `json:"couponid"`
	Code        string     `json:"code"` // stored upper-cased
	DiscountPct float64    `json:"discountpct"`
	MaxUses     *int       `json:"maxuses,omitempty"`
	TimesUsed   int        `json:"timesused"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// AppliedCoupon is the detached snapshot handed to the cart/checkout flow.
// It does not track the live coupon row; checkout re-validates the code.
type AppliedCoupon struct {
	Code        string  `json:"code"`
	DiscountPct float64 `json:"discountpct"`
}
