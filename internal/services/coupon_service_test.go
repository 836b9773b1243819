package services

import (
	"context"
	"testing"

	"VaultStoreAPI/internal/model"
	"VaultStoreAPI/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCouponRepo struct {
	coupons map[string]*model.Coupon // keyed by upper-cased code
	nextID  int64
}

func (m *mockCouponRepo) GetByCode(_ context.Context, code string) (*model.Coupon, error) {
	c, ok := m.coupons[code]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (m *mockCouponRepo) Create(_ context.Context, c *model.Coupon) (int64, error) {
	m.nextID++
	c.CouponID = m.nextID
	m.coupons[c.Code] = c
	return m.nextID, nil
}

func intPtr(v int) *int { return &v }

func newCouponFixture() (*CouponService, *mockCouponRepo, *mockCouponPointer) {
	one := 1
	repo := &mockCouponRepo{coupons: map[string]*model.Coupon{
		"SAVE10":  {CouponID: 1, Code: "SAVE10", DiscountPct: 10, IsActive: true},
		"DEAD":    {CouponID: 2, Code: "DEAD", DiscountPct: 50, IsActive: false},
		"LASTONE": {CouponID: 3, Code: "LASTONE", DiscountPct: 25, IsActive: true, MaxUses: &one, TimesUsed: 1},
	}}
	users := newMockCouponPointer()
	return NewCouponService(repo, users), repo, users
}

func TestCouponResolveNormalizesCode(t *testing.T) {
	svc, _, _ := newCouponFixture()

	ac, err := svc.Resolve(context.Background(), "  save10 ")
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", ac.Code)
	assert.Equal(t, 10.0, ac.DiscountPct)
}

func TestCouponResolveFailures(t *testing.T) {
	svc, _, _ := newCouponFixture()
	ctx := context.Background()

	_, err := svc.Resolve(ctx, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Resolve(ctx, "NOPE")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Resolve(ctx, "DEAD")
	assert.ErrorIs(t, err, ErrCouponInactive)

	// active but at its usage cap
	_, err = svc.Resolve(ctx, "LASTONE")
	assert.ErrorIs(t, err, ErrCouponExhausted)
}

func TestCouponApplyStoresPointer(t *testing.T) {
	svc, _, users := newCouponFixture()

	ac, err := svc.Apply(context.Background(), 7, "save10")
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", ac.Code)
	assert.Equal(t, "SAVE10", users.applied[7])
}

func TestCouponApplyRejectsGuests(t *testing.T) {
	svc, _, users := newCouponFixture()

	_, err := svc.Apply(context.Background(), 0, "SAVE10")
	assert.ErrorIs(t, err, ErrAuth)
	assert.Empty(t, users.applied)
}

func TestCouponClearApplied(t *testing.T) {
	svc, _, users := newCouponFixture()
	users.applied[7] = "SAVE10"

	require.NoError(t, svc.ClearApplied(context.Background(), 7))
	assert.Empty(t, users.applied)

	assert.ErrorIs(t, svc.ClearApplied(context.Background(), 0), ErrAuth)
}

func TestCouponCreateValidation(t *testing.T) {
	svc, repo, _ := newCouponFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, " ", 10, nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, "X", 0, nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, "X", 101, nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, "X", 10, intPtr(0))
	assert.ErrorIs(t, err, ErrValidation)

	id, err := svc.Create(ctx, "spring20", 20, intPtr(5))
	require.NoError(t, err)
	created := repo.coupons["SPRING20"]
	require.NotNil(t, created)
	assert.Equal(t, id, created.CouponID)
	assert.True(t, created.IsActive)
}
