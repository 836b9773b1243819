package services

import (
	"context"
	"errors"
	"fmt"

	"VaultStoreAPI/internal/model"
	"VaultStoreAPI/internal/repository"
)

type CartRepo interface {
	Items(ctx context.Context, userID int64) ([]model.CartItem, float64, error)
	Upsert(ctx context.Context, userID, productID int64, qty int) error
	SetQuantity(ctx context.Context, userID, productID int64, qty int) error
	Remove(ctx context.Context, userID, productID int64) error
	Clear(ctx context.Context, userID int64) error
}

type ProductGetter interface {
	GetByID(ctx context.Context, productID int64) (*model.Product, error)
}

type CouponPointer interface {
	ClearAppliedCoupon(ctx context.Context, userID int64) error
}

type CartService struct {
	Repo     CartRepo
	Products ProductGetter
	Users    CouponPointer
}

func NewCartService(r CartRepo, p ProductGetter, u CouponPointer) *CartService {
	return &CartService{Repo: r, Products: p, Users: u}
}

// Get returns the cart. Guests have no cart and always see an empty one.
func (s *CartService) Get(ctx context.Context, userID int64) (*model.CartResponse, error) {
	if userID <= 0 {
		return &model.CartResponse{Items: []model.CartItem{}}, nil
	}
	items, subtotal, err := s.Repo.Items(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.CartItem{}
	}
	return &model.CartResponse{Items: items, Subtotal: subtotal}, nil
}

// Add merges qty into an existing line or appends a new one, then
// returns the authoritative cart state.
func (s *CartService) Add(ctx context.Context, userID, productID int64, qty int) (*model.CartResponse, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("sign in to use the cart: %w", ErrAuth)
	}
	if qty <= 0 {
		return nil, fmt.Errorf("quantity must be at least 1: %w", ErrValidation)
	}

	p, err := s.Products.GetByID(ctx, productID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
	}

	if err := s.Repo.Upsert(ctx, userID, productID, qty); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

// SetQuantity sets the exact quantity for a line. Zero or negative
// behaves exactly like Remove.
func (s *CartService) SetQuantity(ctx context.Context, userID, productID int64, qty int) (*model.CartResponse, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("sign in to use the cart: %w", ErrAuth)
	}
	if qty <= 0 {
		return s.Remove(ctx, userID, productID)
	}
	err := s.Repo.SetQuantity(ctx, userID, productID, qty)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("cart item %d: %w", productID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

// Remove drops one line. The applied coupon pointer is left alone: a
// coupon survives partial cart edits.
func (s *CartService) Remove(ctx context.Context, userID, productID int64) (*model.CartResponse, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("sign in to use the cart: %w", ErrAuth)
	}
	if err := s.Repo.Remove(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

// Clear empties the cart and drops the applied coupon pointer with it.
func (s *CartService) Clear(ctx context.Context, userID int64) (*model.CartResponse, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("sign in to use the cart: %w", ErrAuth)
	}
	if err := s.Repo.Clear(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.Users.ClearAppliedCoupon(ctx, userID); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}
