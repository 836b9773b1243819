package services

import (
	"context"
	"errors"
	"fmt"

	"VaultStoreAPI/internal/model"
	"VaultStoreAPI/internal/repository"
)

type ProductRepo interface {
	List(ctx context.Context, f model.ProductFilter) ([]model.Product, error)
	GetByID(ctx context.Context, productID int64) (*model.Product, error)
	Create(ctx context.Context, p *model.Product) (int64, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, productID int64) error
}

// RateSource supplies the display-currency conversion rate. Prices are
// stored in USD; the rate is applied at display time only, never to
// order math.
type RateSource interface {
	DisplayRate(ctx context.Context) float64
}

type CatalogService struct {
	Repo  ProductRepo
	Rates RateSource
}

func NewCatalogService(r ProductRepo, rates RateSource) *CatalogService {
	return &CatalogService{Repo: r, Rates: rates}
}

func toView(p model.Product, rate float64) model.ProductView {
	v := model.ProductView{Product: p, DisplayPrice: round2(p.Price * rate)}
	if p.InStock() {
		v.StockStatus = "In Stock"
	} else {
		v.StockStatus = "Out of Stock"
	}
	return v
}

func (s *CatalogService) List(ctx context.Context, f model.ProductFilter) ([]model.ProductView, error) {
	products, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	rate := s.Rates.DisplayRate(ctx)
	out := make([]model.ProductView, 0, len(products))
	for _, p := range products {
		out = append(out, toView(p, rate))
	}
	return out, nil
}

func (s *CatalogService) Get(ctx context.Context, productID int64) (*model.ProductView, error) {
	p, err := s.Repo.GetByID(ctx, productID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	v := toView(*p, s.Rates.DisplayRate(ctx))
	return &v, nil
}

// validate normalizes a product before write: final price always equals
// original minus discount when a discount is set.
func validateProduct(p *model.Product) error {
	if p.Name == "" {
		return fmt.Errorf("product name is required: %w", ErrValidation)
	}
	if p.Category == "" {
		return fmt.Errorf("product category is required: %w", ErrValidation)
	}
	if p.DiscountPct != nil {
		if *p.DiscountPct <= 0 || *p.DiscountPct > 100 {
			return fmt.Errorf("discount must be in (0,100]: %w", ErrValidation)
		}
		if p.OriginalPrice == nil {
			return fmt.Errorf("discount requires an original price: %w", ErrValidation)
		}
		p.Price = round2(*p.OriginalPrice * (1 - *p.DiscountPct/100))
	} else if p.OriginalPrice != nil {
		p.Price = *p.OriginalPrice
	}
	if p.Price < 0 {
		return fmt.Errorf("price cannot be negative: %w", ErrValidation)
	}
	switch p.StockType {
	case model.StockInfinite:
		p.StockQty = nil
	case model.StockLimited:
		if p.StockQty == nil || *p.StockQty < 0 {
			return fmt.Errorf("limited stock requires a non-negative quantity: %w", ErrValidation)
		}
	default:
		return fmt.Errorf("unknown stock type %q: %w", p.StockType, ErrValidation)
	}
	return nil
}

func (s *CatalogService) Create(ctx context.Context, p *model.Product) (int64, error) {
	if err := validateProduct(p); err != nil {
		return 0, err
	}
	return s.Repo.Create(ctx, p)
}

func (s *CatalogService) Update(ctx context.Context, p *model.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	err := s.Repo.Update(ctx, p)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("product %d: %w", p.ProductID, ErrNotFound)
	}
	return err
}

func (s *CatalogService) Delete(ctx context.Context, productID int64) error {
	err := s.Repo.Delete(ctx, productID)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("product %d: %w", productID, ErrNotFound)
	}
	return err
}
