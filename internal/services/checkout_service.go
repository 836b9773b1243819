package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"VaultStoreAPI/external/discord"
	"VaultStoreAPI/internal/model"
	"VaultStoreAPI/internal/repository"

	"github.com/google/uuid"
)

type GateChecker interface {
	IsGuildMember(ctx context.Context, accessToken string) (bool, error)
}

type ProfileStore interface {
	GetByID(ctx context.Context, userID int64) (*model.UserProfile, error)
}

type CartReader interface {
	Items(ctx context.Context, userID int64) ([]model.CartItem, float64, error)
}

type CouponResolver interface {
	Resolve(ctx context.Context, code string) (*model.AppliedCoupon, error)
}

type OrderPlacer interface {
	ProcessOrder(ctx context.Context, no repository.NewOrder) (int64, error)
}

type CheckoutService struct {
	Gate    GateChecker
	Users   ProfileStore
	Cart    CartReader
	Coupons CouponResolver
	Orders  OrderPlacer
}

func NewCheckoutService(g GateChecker, u ProfileStore, c CartReader, cp CouponResolver, o OrderPlacer) *CheckoutService {
	return &CheckoutService{Gate: g, Users: u, Cart: c, Coupons: cp, Orders: o}
}

// Checkout places one pending order from the user's cart and returns its
// display id. The membership gate is re-verified fresh on every call; an
// earlier page load passing it means nothing here.
func (s *CheckoutService) Checkout(ctx context.Context, userID int64) (string, error) {
	if userID <= 0 {
		return "", fmt.Errorf("sign in to check out: %w", ErrAuth)
	}

	u, err := s.Users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return "", fmt.Errorf("unknown user: %w", ErrAuth)
	}
	if err != nil {
		return "", err
	}

	// fail-closed: anything short of a confirmed "yes" blocks checkout
	member, err := s.Gate.IsGuildMember(ctx, u.AccessToken)
	if errors.Is(err, discord.ErrTokenStale) {
		return "", fmt.Errorf("session expired, sign in again: %w", ErrAuth)
	}
	if err != nil {
		return "", fmt.Errorf("membership check failed (%v): %w", err, ErrGate)
	}
	if !member {
		return "", fmt.Errorf("join the server to place orders: %w", ErrGate)
	}

	items, subtotal, err := s.Cart.Items(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", fmt.Errorf("cart is empty: %w", ErrValidation)
	}

	var couponCode *string
	var discount float64
	if u.AppliedCouponCode != nil {
		// re-validate; a coupon that went bad since it was applied fails
		// the checkout with its own error so the user sees why
		ac, err := s.Coupons.Resolve(ctx, *u.AppliedCouponCode)
		if err != nil {
			return "", err
		}
		couponCode = &ac.Code
		discount = round2(subtotal * ac.DiscountPct / 100)
	}
	total := round2(subtotal - discount)

	no := repository.NewOrder{
		DisplayID:      newDisplayID(),
		UserID:         userID,
		Username:       u.Username,
		DiscordID:      u.DiscordID,
		Subtotal:       round2(subtotal),
		DiscountAmount: discount,
		Total:          total,
		CouponCode:     couponCode,
		Items:          snapshotItems(items),
	}

	if _, err := s.Orders.ProcessOrder(ctx, no); err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientStock):
			return "", fmt.Errorf("%v: %w", err, ErrStock)
		case errors.Is(err, repository.ErrCouponExhausted):
			return "", fmt.Errorf("%v: %w", err, ErrCouponExhausted)
		case errors.Is(err, repository.ErrNotFound):
			return "", fmt.Errorf("no longer available (%v): %w", err, ErrNotFound)
		}
		return "", err
	}
	return no.DisplayID, nil
}

// snapshotItems freezes the cart lines into order items. Later product
// edits never change what was bought.
func snapshotItems(items []model.CartItem) []repository.NewOrderItem {
	out := make([]repository.NewOrderItem, 0, len(items))
	for _, it := range items {
		out = append(out, repository.NewOrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			ImageURL:  it.ImageURL,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return out
}

func newDisplayID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "ORD-" + strings.ToUpper(raw[:10])
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
