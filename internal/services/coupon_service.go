package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"VaultStoreAPI/internal/model"
	"VaultStoreAPI/internal/repository"
)

type CouponRepo interface {
	GetByCode(ctx context.Context, code string) (*model.Coupon, error)
	Create(ctx context.Context, c *model.Coupon) (int64, error)
}

type AppliedStore interface {
	SetAppliedCoupon(ctx context.Context, userID int64, code string) error
	ClearAppliedCoupon(ctx context.Context, userID int64) error
}

type CouponService struct {
	Repo  CouponRepo
	Users AppliedStore
}

func NewCouponService(r CouponRepo, u AppliedStore) *CouponService {
	return &CouponService{Repo: r, Users: u}
}

// Resolve validates a code and returns a detached (code, percent)
// snapshot. It holds no live reference; checkout re-validates at
// redemption time.
func (s *CouponService) Resolve(ctx context.Context, code string) (*model.AppliedCoupon, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, fmt.Errorf("coupon code is required: %w", ErrValidation)
	}

	c, err := s.Repo.GetByCode(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("coupon %s: %w", code, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if !c.IsActive {
		return nil, fmt.Errorf("coupon %s: %w", code, ErrCouponInactive)
	}
	// an active coupon at its cap is still not applicable
	if c.MaxUses != nil && c.TimesUsed >= *c.MaxUses {
		return nil, fmt.Errorf("coupon %s: %w", code, ErrCouponExhausted)
	}
	return &model.AppliedCoupon{Code: c.Code, DiscountPct: c.DiscountPct}, nil
}

// Apply resolves the code and stores it as the user's applied coupon.
func (s *CouponService) Apply(ctx context.Context, userID int64, code string) (*model.AppliedCoupon, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("sign in to apply a coupon: %w", ErrAuth)
	}
	ac, err := s.Resolve(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := s.Users.SetAppliedCoupon(ctx, userID, ac.Code); err != nil {
		return nil, err
	}
	return ac, nil
}

// Create adds a coupon (admin side). Codes are stored upper-cased so
// lookup stays case-insensitive.
func (s *CouponService) Create(ctx context.Context, code string, discountPct float64, maxUses *int) (int64, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return 0, fmt.Errorf("coupon code is required: %w", ErrValidation)
	}
	if discountPct < 1 || discountPct > 100 {
		return 0, fmt.Errorf("discount must be 1-100: %w", ErrValidation)
	}
	if maxUses != nil && *maxUses < 1 {
		return 0, fmt.Errorf("max uses must be at least 1: %w", ErrValidation)
	}
	return s.Repo.Create(ctx, &model.Coupon{
		Code:        code,
		DiscountPct: discountPct,
		MaxUses:     maxUses,
		IsActive:    true,
	})
}

func (s *CouponService) ClearApplied(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return fmt.Errorf("sign in first: %w", ErrAuth)
	}
	return s.Users.ClearAppliedCoupon(ctx, userID)
}
