package cart

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lemongrove/internal/domain"
)

type stubRepo struct {
	carts   map[string]*domain.Cart
	saves   int
	saveErr error
}

func newStubRepo() *stubRepo {
	return &stubRepo{carts: map[string]*domain.Cart{}}
}

func (s *stubRepo) Get(_ context.Context, sessionID string) (*domain.Cart, error) {
	c, ok := s.carts[sessionID]
	if !ok {
		return &domain.Cart{SessionID: sessionID, Lines: []domain.CartLine{}}, nil
	}
	cp := *c
	cp.Lines = append([]domain.CartLine(nil), c.Lines...)
	return &cp, nil
}

func (s *stubRepo) Save(_ context.Context, c *domain.Cart) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	cp := *c
	cp.Lines = append([]domain.CartLine(nil), c.Lines...)
	s.carts[c.SessionID] = &cp
	return nil
}

type stubProductRepo struct {
	products []domain.Product
	err      error
}

func (s *stubProductRepo) List(_ context.Context) ([]domain.Product, error) {
	return append([]domain.Product(nil), s.products...), s.err
}

func fixture() (*Service, *stubRepo, *stubProductRepo) {
	repo := newStubRepo()
	products := &stubProductRepo{products: []domain.Product{
		{ID: 1, Name: "Organic Lemons (1 kg)", Price: decimal.NewFromInt(998), Stock: 15},
		{ID: 2, Name: "Lemon Tree", Price: decimal.NewFromInt(3998), Stock: 1},
		{ID: 3, Name: "Sold Out Zest", Price: decimal.NewFromInt(100), Stock: 0},
	}}
	return New(repo, products, nil), repo, products
}

func TestAddToCart_FirstAddIgnoresStock(t *testing.T) {
	svc, _, _ := fixture()
	c, err := svc.AddToCart(context.Background(), "s1", 3)
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 1, c.Lines[0].Quantity)
	assert.Equal(t, "Sold Out Zest", c.Lines[0].Name)
}

func TestAddToCart_IncrementBoundedByStock(t *testing.T) {
	svc, repo, _ := fixture()
	ctx := context.Background()
	_, err := svc.AddToCart(ctx, "s1", 2)
	require.NoError(t, err)

	_, err = svc.AddToCart(ctx, "s1", 2)
	require.ErrorIs(t, err, domain.ErrStockExceeded)

	c, _ := repo.Get(ctx, "s1")
	assert.Equal(t, 1, c.Lines[0].Quantity)
	assert.Equal(t, 1, repo.saves)
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	svc, _, _ := fixture()
	_, err := svc.AddToCart(context.Background(), "s1", 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddToCart_TwiceGivesSubtotal(t *testing.T) {
	svc, _, _ := fixture()
	ctx := context.Background()
	_, err := svc.AddToCart(ctx, "s1", 1)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, "s1", 1)
	require.NoError(t, err)

	sub, err := svc.Subtotal(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, sub.Equal(decimal.NewFromInt(1996)), sub.String())
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("zero delta rejected", func(t *testing.T) {
		svc, _, _ := fixture()
		_, err := svc.UpdateQuantity(ctx, "s1", 1, 0)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("missing line", func(t *testing.T) {
		svc, _, _ := fixture()
		_, err := svc.UpdateQuantity(ctx, "s1", 1, 1)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("above stock leaves cart unchanged", func(t *testing.T) {
		svc, repo, _ := fixture()
		_, err := svc.AddToCart(ctx, "s1", 1)
		require.NoError(t, err)
		_, err = svc.UpdateQuantity(ctx, "s1", 1, 15)
		require.ErrorIs(t, err, domain.ErrStockExceeded)
		c, _ := repo.Get(ctx, "s1")
		assert.Equal(t, 1, c.Lines[0].Quantity)
	})

	t.Run("max int delta leaves cart unchanged", func(t *testing.T) {
		svc, repo, _ := fixture()
		_, err := svc.AddToCart(ctx, "s1", 1)
		require.NoError(t, err)
		_, err = svc.UpdateQuantity(ctx, "s1", 1, math.MaxInt)
		require.ErrorIs(t, err, domain.ErrStockExceeded)
		c, _ := repo.Get(ctx, "s1")
		require.Len(t, c.Lines, 1)
		assert.Equal(t, 1, c.Lines[0].Quantity)
	})

	t.Run("min int delta removes", func(t *testing.T) {
		svc, _, _ := fixture()
		_, err := svc.AddToCart(ctx, "s1", 1)
		require.NoError(t, err)
		c, err := svc.UpdateQuantity(ctx, "s1", 1, math.MinInt)
		require.NoError(t, err)
		assert.Empty(t, c.Lines)
	})

	t.Run("up to stock", func(t *testing.T) {
		svc, _, _ := fixture()
		_, err := svc.AddToCart(ctx, "s1", 1)
		require.NoError(t, err)
		c, err := svc.UpdateQuantity(ctx, "s1", 1, 14)
		require.NoError(t, err)
		assert.Equal(t, 15, c.Lines[0].Quantity)
	})

	t.Run("negative quantity removes", func(t *testing.T) {
		svc, _, _ := fixture()
		_, _ = svc.AddToCart(ctx, "s1", 1)
		_, _ = svc.AddToCart(ctx, "s1", 1)
		c, err := svc.UpdateQuantity(ctx, "s1", 1, -2)
		require.NoError(t, err)
		assert.Empty(t, c.Lines)
	})

	t.Run("orphaned line counts as zero stock", func(t *testing.T) {
		svc, _, products := fixture()
		_, _ = svc.AddToCart(ctx, "s1", 1)
		_, _ = svc.AddToCart(ctx, "s1", 1)
		products.products = products.products[1:]

		_, err := svc.UpdateQuantity(ctx, "s1", 1, 1)
		require.ErrorIs(t, err, domain.ErrStockExceeded)

		c, err := svc.UpdateQuantity(ctx, "s1", 1, -1)
		require.NoError(t, err)
		assert.Equal(t, 1, c.Lines[0].Quantity)
	})
}

func TestRemoveFromCart(t *testing.T) {
	svc, repo, _ := fixture()
	ctx := context.Background()
	_, _ = svc.AddToCart(ctx, "s1", 1)
	_, _ = svc.AddToCart(ctx, "s1", 2)

	c, err := svc.RemoveFromCart(ctx, "s1", 1)
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 2, c.Lines[0].ProductID)

	saves := repo.saves
	_, err = svc.RemoveFromCart(ctx, "s1", 1)
	require.NoError(t, err)
	assert.Equal(t, saves, repo.saves)
}

func TestView_FlagsOrphanedLines(t *testing.T) {
	svc, _, products := fixture()
	ctx := context.Background()
	_, _ = svc.AddToCart(ctx, "s1", 1)
	_, _ = svc.AddToCart(ctx, "s1", 2)
	products.products = products.products[:1]

	view, err := svc.View(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, view.Lines, 2)
	assert.True(t, view.Lines[0].Available)
	assert.Equal(t, 15, view.Lines[0].Stock)
	assert.False(t, view.Lines[1].Available)
	assert.Equal(t, 2, view.ItemCount)
	assert.True(t, view.Subtotal.Equal(decimal.NewFromInt(4996)))
}

func TestAddToCart_SaveError(t *testing.T) {
	svc, repo, _ := fixture()
	repo.saveErr = errors.New("boom")
	_, err := svc.AddToCart(context.Background(), "s1", 1)
	assert.EqualError(t, err, "boom")
}
