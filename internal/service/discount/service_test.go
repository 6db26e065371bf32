package discount

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lemongrove/internal/domain"
	"lemongrove/internal/seed"
)

func TestApply(t *testing.T) {
	svc := New(seed.Discounts())
	ctx := context.Background()

	for _, code := range []string{"LEMON10", "lemon10", "  Lemon10 "} {
		got, err := svc.Apply(ctx, code)
		require.NoError(t, err, code)
		assert.Equal(t, "LEMON10", got.Code)
		assert.Equal(t, 10, got.Percent)
	}

	_, err := svc.Apply(ctx, "LEMON")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.Apply(ctx, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList(t *testing.T) {
	svc := New(seed.Discounts())
	list := svc.List(context.Background())
	require.Len(t, list, 3)
	list[0].Percent = 99

	again := svc.List(context.Background())
	assert.Equal(t, 10, again[0].Percent)
}
