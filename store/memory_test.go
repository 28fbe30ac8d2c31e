package store

import (
	"context"
	"errors"
	"testing"

	"github.com/Gameminde/Zinouchawebsie/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreProductsNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, name := range []string{"first", "second", "third"} {
		require.NoError(t, s.CreateProduct(ctx, &models.Product{Name: name, Price: decimal.NewFromInt(100)}))
	}

	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "third", products[0].Name)
	assert.Equal(t, "first", products[2].Name)
	assert.NotEmpty(t, products[0].ID)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.SaveCart(ctx, &models.Cart{UserID: "u1", Items: []models.CartItem{{ProductID: "p1", Quantity: 1}}}))

	c, err := s.GetCart(ctx, "u1")
	require.NoError(t, err)
	c.Items[0].Quantity = 99

	again, err := s.GetCart(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Items[0].Quantity)
}

func TestMemoryStoreCartLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.GetCart(ctx, "u1")
	assert.True(t, errors.Is(err, ErrNotFound))

	cart := &models.Cart{UserID: "u1", Items: []models.CartItem{{ProductID: "p1", Quantity: 2}}}
	require.NoError(t, s.SaveCart(ctx, cart))
	firstID := cart.ID

	second := &models.Cart{UserID: "u1", Items: []models.CartItem{{ProductID: "p2", Quantity: 1}}}
	require.NoError(t, s.SaveCart(ctx, second))
	assert.Equal(t, firstID, second.ID)

	require.NoError(t, s.ClearCart(ctx, "u1"))
	got, err := s.GetCart(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, got.Items)

	require.NoError(t, s.ClearCart(ctx, "nobody"))
}

func TestMemoryStoreIncrementPromoUseRespectsCap(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	maxUses := 2
	require.NoError(t, s.CreatePromoCode(ctx, &models.PromoCode{
		Code: "DUO", DiscountType: models.DiscountFixed, DiscountValue: decimal.NewFromInt(100),
		Active: true, MaxUses: &maxUses,
	}))

	require.NoError(t, s.IncrementPromoUse(ctx, "DUO"))
	require.NoError(t, s.IncrementPromoUse(ctx, "DUO"))
	err := s.IncrementPromoUse(ctx, "DUO")
	assert.True(t, errors.Is(err, ErrPromoExhausted))

	p, err := s.GetPromoCode(ctx, "DUO")
	require.NoError(t, err)
	assert.Equal(t, 2, p.CurrentUses)

	assert.True(t, errors.Is(s.IncrementPromoUse(ctx, "NOPE"), ErrPromoExhausted))
}

func TestMemoryStoreWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.SaveCart(ctx, &models.Cart{UserID: "u1", Items: []models.CartItem{{ProductID: "p1", Quantity: 1}}}))

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx Store) error {
		require.NoError(t, tx.ClearCart(ctx, "u1"))
		require.NoError(t, tx.CreateOrder(ctx, &models.Order{OrderNumber: "ORD1"}))
		return boom
	})
	assert.Same(t, boom, err)

	c, err := s.GetCart(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, c.Items, 1)

	orders, err := s.ListOrders(ctx, OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestMemoryStoreWithTxCommits(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	err := s.WithTx(ctx, func(tx Store) error {
		return tx.CreateOrder(ctx, &models.Order{OrderNumber: "ORD1", UserID: "u1"})
	})
	require.NoError(t, err)

	orders, err := s.ListOrders(ctx, OrderFilter{UserID: "u1"})
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestMemoryStoreDuplicateOrderNumber(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.CreateOrder(ctx, &models.Order{OrderNumber: "ORD1"}))
	err := s.CreateOrder(ctx, &models.Order{OrderNumber: "ORD1"})
	assert.True(t, errors.Is(err, ErrDuplicate))
}

func TestMemoryStoreDecrementStock(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	p := &models.Product{Name: "Oud", Price: decimal.NewFromInt(4200), Stock: 3}
	require.NoError(t, s.CreateProduct(ctx, p))

	require.NoError(t, s.DecrementStock(ctx, p.ID, 2))
	assert.True(t, errors.Is(s.DecrementStock(ctx, p.ID, 2), ErrInsufficientStock))

	got, err := s.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stock)
}

func TestMemoryStoreStats(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.UpsertUser(ctx, &models.User{ID: "admin", Email: "a@shop.dz", IsAdmin: true}))
	require.NoError(t, s.UpsertUser(ctx, &models.User{ID: "c1", Email: "c1@shop.dz"}))
	require.NoError(t, s.UpsertUser(ctx, &models.User{ID: "c2", Email: "c2@shop.dz"}))
	require.NoError(t, s.CreateProduct(ctx, &models.Product{Name: "Oud", Price: decimal.NewFromInt(4200)}))

	require.NoError(t, s.CreateOrder(ctx, &models.Order{OrderNumber: "A", TotalAmount: decimal.NewFromInt(1500), Status: models.OrderStatusPending}))
	require.NoError(t, s.CreateOrder(ctx, &models.Order{OrderNumber: "B", TotalAmount: decimal.NewFromInt(6000), Status: models.OrderStatusDelivered}))
	require.NoError(t, s.CreateOrder(ctx, &models.Order{OrderNumber: "C", TotalAmount: decimal.NewFromInt(9000), Status: models.OrderStatusCancelled}))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalOrders)
	assert.True(t, decimal.NewFromInt(7500).Equal(stats.Revenue), stats.Revenue.String())
	assert.Equal(t, int64(1), stats.TotalProducts)
	assert.Equal(t, int64(2), stats.TotalCustomers)
}

func TestMemoryStoreClearDefaultAddress(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	a := &models.Address{UserID: "u1", City: "Alger", IsDefault: true}
	b := &models.Address{UserID: "u1", City: "Oran", IsDefault: true}
	other := &models.Address{UserID: "u2", City: "Blida", IsDefault: true}
	for _, addr := range []*models.Address{a, b, other} {
		require.NoError(t, s.CreateAddress(ctx, addr))
	}

	require.NoError(t, s.ClearDefaultAddress(ctx, "u1", b.ID))

	addrs, err := s.ListAddresses(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, addrs, 2)
	assert.Equal(t, b.ID, addrs[0].ID)
	assert.True(t, addrs[0].IsDefault)
	assert.False(t, addrs[1].IsDefault)

	got, err := s.GetAddress(ctx, other.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDefault)
}
