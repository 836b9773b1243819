package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"VaultStoreAPI/internal/cache"
	"VaultStoreAPI/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	entries map[string][]byte
	getErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	b, ok := m.entries[key]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return b, nil
}

func (m *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.entries[key] = value
	return nil
}

func (m *memoryCache) Invalidate(_ context.Context, key string) error {
	delete(m.entries, key)
	return nil
}

type mockContentRepo struct {
	slides     []model.CarouselSlide
	top        []model.TopProduct
	reviews    map[int64][]model.Review
	settings   map[string]string
	listCalls  int
	nextID     int64
	settingErr error
}

func newMockContentRepo() *mockContentRepo {
	return &mockContentRepo{
		reviews:  map[int64][]model.Review{},
		settings: map[string]string{},
	}
}

func (m *mockContentRepo) GetSetting(_ context.Context, key string) (string, error) {
	if m.settingErr != nil {
		return "", m.settingErr
	}
	return m.settings[key], nil
}

func (m *mockContentRepo) SetSetting(_ context.Context, key, value string) error {
	m.settings[key] = value
	return nil
}

func (m *mockContentRepo) ListCarousel(context.Context) ([]model.CarouselSlide, error) {
	m.listCalls++
	return m.slides, nil
}

func (m *mockContentRepo) UpsertSlide(_ context.Context, s *model.CarouselSlide) (int64, error) {
	m.nextID++
	s.SlideID = m.nextID
	m.slides = append(m.slides, *s)
	return m.nextID, nil
}

func (m *mockContentRepo) DeleteSlide(_ context.Context, slideID int64) error {
	for i, s := range m.slides {
		if s.SlideID == slideID {
			m.slides = append(m.slides[:i], m.slides[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockContentRepo) ListTopProducts(context.Context) ([]model.TopProduct, error) {
	return m.top, nil
}

func (m *mockContentRepo) SetTopProducts(_ context.Context, products []model.TopProduct) error {
	m.top = products
	return nil
}

func (m *mockContentRepo) ListReviews(_ context.Context, productID int64) ([]model.Review, error) {
	return m.reviews[productID], nil
}

func (m *mockContentRepo) AddReview(_ context.Context, rv *model.Review) (int64, error) {
	m.nextID++
	rv.ReviewID = m.nextID
	m.reviews[rv.ProductID] = append(m.reviews[rv.ProductID], *rv)
	return m.nextID, nil
}

func (m *mockContentRepo) AddReply(_ context.Context, reviewID, adminID int64, body string) (int64, error) {
	m.nextID++
	return m.nextID, nil
}

func newContentFixture() (*ContentService, *mockContentRepo, *memoryCache) {
	repo := newMockContentRepo()
	mc := newMemoryCache()
	return NewContentService(repo, mc, time.Minute), repo, mc
}

func TestCarouselIsServedFromCache(t *testing.T) {
	svc, repo, _ := newContentFixture()
	repo.slides = []model.CarouselSlide{{SlideID: 1, Title: "Summer Sale", ImageURL: "a.png"}}
	ctx := context.Background()

	first, err := svc.Carousel(ctx)
	require.NoError(t, err)
	second, err := svc.Carousel(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.listCalls)
}

func TestCacheFailureDegradesToDirectRead(t *testing.T) {
	svc, repo, mc := newContentFixture()
	repo.slides = []model.CarouselSlide{{SlideID: 1, Title: "Summer Sale", ImageURL: "a.png"}}
	mc.getErr = errors.New("redis is down")

	out, err := svc.Carousel(context.Background())
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestSlideMutationsInvalidateCache(t *testing.T) {
	svc, repo, mc := newContentFixture()
	ctx := context.Background()

	_, err := svc.Carousel(ctx)
	require.NoError(t, err)
	require.Contains(t, mc.entries, "carousel")

	_, err = svc.SaveSlide(ctx, &model.CarouselSlide{Title: "New", ImageURL: "b.png"})
	require.NoError(t, err)
	assert.NotContains(t, mc.entries, "carousel")

	// next read refills from the database
	out, err := svc.Carousel(ctx)
	require.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, 2, repo.listCalls)
}

func TestSaveSlideValidation(t *testing.T) {
	svc, _, _ := newContentFixture()

	_, err := svc.SaveSlide(context.Background(), &model.CarouselSlide{ImageURL: "a.png"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.SaveSlide(context.Background(), &model.CarouselSlide{Title: "x"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAddReviewValidation(t *testing.T) {
	svc, _, _ := newContentFixture()
	ctx := context.Background()

	_, err := svc.AddReview(ctx, &model.Review{ProductID: 1, Rating: 5, Body: "great"})
	assert.ErrorIs(t, err, ErrAuth)

	_, err = svc.AddReview(ctx, &model.Review{ProductID: 1, UserID: 7, Rating: 0, Body: "great"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.AddReview(ctx, &model.Review{ProductID: 1, UserID: 7, Rating: 6, Body: "great"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.AddReview(ctx, &model.Review{ProductID: 1, UserID: 7, Rating: 4})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAddReviewInvalidatesProductKeyOnly(t *testing.T) {
	svc, _, mc := newContentFixture()
	ctx := context.Background()

	_, err := svc.Reviews(ctx, 1)
	require.NoError(t, err)
	_, err = svc.Reviews(ctx, 2)
	require.NoError(t, err)

	_, err = svc.AddReview(ctx, &model.Review{ProductID: 1, UserID: 7, Rating: 5, Body: "great"})
	require.NoError(t, err)

	assert.NotContains(t, mc.entries, "reviews:1")
	assert.Contains(t, mc.entries, "reviews:2")
}

func TestDisplayRate(t *testing.T) {
	svc, _, _ := newContentFixture()
	ctx := context.Background()

	// unset or malformed falls back to 1
	assert.Equal(t, 1.0, svc.DisplayRate(ctx))

	require.NoError(t, svc.SetSetting(ctx, "display_rate", "not a number"))
	assert.Equal(t, 1.0, svc.DisplayRate(ctx))

	require.NoError(t, svc.SetSetting(ctx, "display_rate", "-2"))
	assert.Equal(t, 1.0, svc.DisplayRate(ctx))

	require.NoError(t, svc.SetSetting(ctx, "display_rate", "1.25"))
	assert.Equal(t, 1.25, svc.DisplayRate(ctx))
}

func TestSetSettingInvalidatesItsKey(t *testing.T) {
	svc, _, mc := newContentFixture()
	ctx := context.Background()

	require.NoError(t, svc.SetSetting(ctx, "display_rate", "2"))
	assert.Equal(t, 2.0, svc.DisplayRate(ctx))
	require.Contains(t, mc.entries, "setting:display_rate")

	require.NoError(t, svc.SetSetting(ctx, "display_rate", "3"))
	assert.Equal(t, 3.0, svc.DisplayRate(ctx))

	assert.ErrorIs(t, svc.SetSetting(ctx, "", "x"), ErrValidation)
}
