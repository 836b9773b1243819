package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"VaultStoreAPI/internal/cache"
	"VaultStoreAPI/internal/model"
	"VaultStoreAPI/internal/repository"

	"golang.org/x/sync/singleflight"
)

const displayRateKey = "display_rate"

type ContentRepo interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	ListCarousel(ctx context.Context) ([]model.CarouselSlide, error)
	UpsertSlide(ctx context.Context, s *model.CarouselSlide) (int64, error)
	DeleteSlide(ctx context.Context, slideID int64) error
	ListTopProducts(ctx context.Context) ([]model.TopProduct, error)
	SetTopProducts(ctx context.Context, products []model.TopProduct) error
	ListReviews(ctx context.Context, productID int64) ([]model.Review, error)
	AddReview(ctx context.Context, rv *model.Review) (int64, error)
	AddReply(ctx context.Context, reviewID, adminID int64, body string) (int64, error)
}

// ContentService serves admin-editable storefront content through a
// bounded, expiring cache. Every entry has a TTL and every mutation
// invalidates its key, so staleness is capped at the TTL either way.
type ContentService struct {
	Repo  ContentRepo
	Cache cache.Cache
	TTL   time.Duration

	group singleflight.Group
}

func NewContentService(r ContentRepo, c cache.Cache, ttl time.Duration) *ContentService {
	return &ContentService{Repo: r, Cache: c, TTL: ttl}
}

// cached runs fill through the cache with singleflight so concurrent
// misses on one key hit the database once. Cache failures degrade to a
// direct read, never an error.
func cached[T any](ctx context.Context, s *ContentService, key string, fill func(context.Context) (T, error)) (T, error) {
	var zero T
	if b, err := s.Cache.Get(ctx, key); err == nil {
		var v T
		if err := json.Unmarshal(b, &v); err == nil {
			return v, nil
		}
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		log.Printf("cache get %s: %v", key, err)
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		v, err := fill(ctx)
		if err != nil {
			return nil, err
		}
		if b, err := json.Marshal(v); err == nil {
			if err := s.Cache.Set(ctx, key, b, s.TTL); err != nil {
				log.Printf("cache set %s: %v", key, err)
			}
		}
		return v, nil
	})
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

func (s *ContentService) invalidate(ctx context.Context, key string) {
	if err := s.Cache.Invalidate(ctx, key); err != nil {
		log.Printf("cache invalidate %s: %v", key, err)
	}
}

func (s *ContentService) Carousel(ctx context.Context) ([]model.CarouselSlide, error) {
	return cached(ctx, s, "carousel", s.Repo.ListCarousel)
}

func (s *ContentService) SaveSlide(ctx context.Context, slide *model.CarouselSlide) (int64, error) {
	if slide.Title == "" || slide.ImageURL == "" {
		return 0, fmt.Errorf("slide title and image are required: %w", ErrValidation)
	}
	id, err := s.Repo.UpsertSlide(ctx, slide)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, fmt.Errorf("slide %d: %w", slide.SlideID, ErrNotFound)
	}
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, "carousel")
	return id, nil
}

func (s *ContentService) DeleteSlide(ctx context.Context, slideID int64) error {
	err := s.Repo.DeleteSlide(ctx, slideID)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("slide %d: %w", slideID, ErrNotFound)
	}
	if err != nil {
		return err
	}
	s.invalidate(ctx, "carousel")
	return nil
}

func (s *ContentService) TopProducts(ctx context.Context) ([]model.TopProduct, error) {
	return cached(ctx, s, "top_products", s.Repo.ListTopProducts)
}

func (s *ContentService) SetTopProducts(ctx context.Context, products []model.TopProduct) error {
	if err := s.Repo.SetTopProducts(ctx, products); err != nil {
		return err
	}
	s.invalidate(ctx, "top_products")
	return nil
}

func reviewsKey(productID int64) string {
	return "reviews:" + strconv.FormatInt(productID, 10)
}

func (s *ContentService) Reviews(ctx context.Context, productID int64) ([]model.Review, error) {
	return cached(ctx, s, reviewsKey(productID), func(ctx context.Context) ([]model.Review, error) {
		return s.Repo.ListReviews(ctx, productID)
	})
}

func (s *ContentService) AddReview(ctx context.Context, rv *model.Review) (int64, error) {
	if rv.UserID <= 0 {
		return 0, fmt.Errorf("sign in to review: %w", ErrAuth)
	}
	if rv.Rating < 1 || rv.Rating > 5 {
		return 0, fmt.Errorf("rating must be 1-5: %w", ErrValidation)
	}
	if rv.Body == "" {
		return 0, fmt.Errorf("review body is required: %w", ErrValidation)
	}
	id, err := s.Repo.AddReview(ctx, rv)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, reviewsKey(rv.ProductID))
	return id, nil
}

func (s *ContentService) AddReply(ctx context.Context, productID, reviewID, adminID int64, body string) (int64, error) {
	if body == "" {
		return 0, fmt.Errorf("reply body is required: %w", ErrValidation)
	}
	id, err := s.Repo.AddReply(ctx, reviewID, adminID, body)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, reviewsKey(productID))
	return id, nil
}

func (s *ContentService) Setting(ctx context.Context, key string) (string, error) {
	v, err := cached(ctx, s, "setting:"+key, func(ctx context.Context) (string, error) {
		return s.Repo.GetSetting(ctx, key)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return "", fmt.Errorf("setting %s: %w", key, ErrNotFound)
	}
	return v, err
}

func (s *ContentService) SetSetting(ctx context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("setting key is required: %w", ErrValidation)
	}
	if err := s.Repo.SetSetting(ctx, key, value); err != nil {
		return err
	}
	s.invalidate(ctx, "setting:"+key)
	return nil
}

// DisplayRate returns the display-currency conversion rate, defaulting
// to 1 (USD) when unset or malformed.
func (s *ContentService) DisplayRate(ctx context.Context) float64 {
	v, err := s.Setting(ctx, displayRateKey)
	if err != nil {
		return 1
	}
	rate, err := strconv.ParseFloat(v, 64)
	if err != nil || rate <= 0 {
		return 1
	}
	return rate
}
