package services

import (
	"context"
	"testing"

	"VaultStoreAPI/internal/model"
	"VaultStoreAPI/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCartRepo struct {
	lines map[int64]mockCartLine // productID -> line
	err   error
}

type mockCartLine struct {
	qty   int
	price float64
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{lines: map[int64]mockCartLine{}}
}

func (m *mockCartRepo) Items(context.Context, int64) ([]model.CartItem, float64, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	var items []model.CartItem
	var subtotal float64
	for id, l := range m.lines {
		sub := float64(l.qty) * l.price
		items = append(items, model.CartItem{
			ProductID: id,
			Quantity:  l.qty,
			UnitPrice: l.price,
			Subtotal:  sub,
		})
		subtotal += sub
	}
	return items, subtotal, nil
}

func (m *mockCartRepo) Upsert(_ context.Context, _, productID int64, qty int) error {
	if m.err != nil {
		return m.err
	}
	l := m.lines[productID]
	l.qty += qty
	if l.price == 0 {
		l.price = 10
	}
	m.lines[productID] = l
	return nil
}

func (m *mockCartRepo) SetQuantity(_ context.Context, _, productID int64, qty int) error {
	if m.err != nil {
		return m.err
	}
	l, ok := m.lines[productID]
	if !ok {
		return repository.ErrNotFound
	}
	l.qty = qty
	m.lines[productID] = l
	return nil
}

func (m *mockCartRepo) Remove(_ context.Context, _, productID int64) error {
	delete(m.lines, productID)
	return m.err
}

func (m *mockCartRepo) Clear(context.Context, int64) error {
	m.lines = map[int64]mockCartLine{}
	return m.err
}

type mockProductGetter struct {
	products map[int64]*model.Product
}

func (m *mockProductGetter) GetByID(_ context.Context, id int64) (*model.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

type mockCouponPointer struct {
	applied map[int64]string
}

func newMockCouponPointer() *mockCouponPointer {
	return &mockCouponPointer{applied: map[int64]string{}}
}

func (m *mockCouponPointer) SetAppliedCoupon(_ context.Context, userID int64, code string) error {
	m.applied[userID] = code
	return nil
}

func (m *mockCouponPointer) ClearAppliedCoupon(_ context.Context, userID int64) error {
	delete(m.applied, userID)
	return nil
}

func newCartFixture() (*CartService, *mockCartRepo, *mockCouponPointer) {
	repo := newMockCartRepo()
	users := newMockCouponPointer()
	products := &mockProductGetter{products: map[int64]*model.Product{
		1: {ProductID: 1, Name: "Nitro Boost", Price: 10, IsActive: true, StockType: model.StockInfinite},
		2: {ProductID: 2, Name: "Retired", Price: 5, IsActive: false, StockType: model.StockInfinite},
	}}
	return NewCartService(repo, products, users), repo, users
}

func TestCartGetGuestIsEmpty(t *testing.T) {
	svc, _, _ := newCartFixture()

	cart, err := svc.Get(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Subtotal)
}

func TestCartMutationsRequireAuth(t *testing.T) {
	svc, _, _ := newCartFixture()
	ctx := context.Background()

	_, err := svc.Add(ctx, 0, 1, 1)
	assert.ErrorIs(t, err, ErrAuth)
	_, err = svc.SetQuantity(ctx, 0, 1, 2)
	assert.ErrorIs(t, err, ErrAuth)
	_, err = svc.Remove(ctx, 0, 1)
	assert.ErrorIs(t, err, ErrAuth)
	_, err = svc.Clear(ctx, 0)
	assert.ErrorIs(t, err, ErrAuth)
}

func TestCartAddMergesQuantity(t *testing.T) {
	svc, _, _ := newCartFixture()
	ctx := context.Background()

	_, err := svc.Add(ctx, 7, 1, 2)
	require.NoError(t, err)
	cart, err := svc.Add(ctx, 7, 1, 3)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 50.0, cart.Subtotal)
}

func TestCartAddRejectsBadInput(t *testing.T) {
	svc, _, _ := newCartFixture()
	ctx := context.Background()

	_, err := svc.Add(ctx, 7, 1, 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Add(ctx, 7, 99, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	// inactive products are indistinguishable from missing ones
	_, err = svc.Add(ctx, 7, 2, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCartSetQuantityZeroRemoves(t *testing.T) {
	svc, repo, _ := newCartFixture()
	ctx := context.Background()

	_, err := svc.Add(ctx, 7, 1, 2)
	require.NoError(t, err)

	cart, err := svc.SetQuantity(ctx, 7, 1, 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	// negative behaves the same, and removing a line that is already
	// gone still succeeds
	_, err = svc.SetQuantity(ctx, 7, 1, -3)
	require.NoError(t, err)
	assert.Empty(t, repo.lines)
}

func TestCartSetQuantityMissingLine(t *testing.T) {
	svc, _, _ := newCartFixture()

	_, err := svc.SetQuantity(context.Background(), 7, 1, 4)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCartRemoveKeepsAppliedCoupon(t *testing.T) {
	svc, _, users := newCartFixture()
	ctx := context.Background()
	users.applied[7] = "SAVE10"

	_, err := svc.Add(ctx, 7, 1, 1)
	require.NoError(t, err)
	_, err = svc.Remove(ctx, 7, 1)
	require.NoError(t, err)

	assert.Equal(t, "SAVE10", users.applied[7])
}

func TestCartClearDropsAppliedCoupon(t *testing.T) {
	svc, _, users := newCartFixture()
	ctx := context.Background()
	users.applied[7] = "SAVE10"

	_, err := svc.Add(ctx, 7, 1, 1)
	require.NoError(t, err)
	cart, err := svc.Clear(ctx, 7)
	require.NoError(t, err)

	assert.Empty(t, cart.Items)
	_, still := users.applied[7]
	assert.False(t, still)
}
