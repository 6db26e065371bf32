package wishlist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	wishlistrepo "lemongrove/internal/repository/wishlist"
	"lemongrove/internal/snapshot"
)

func TestToggle(t *testing.T) {
	svc := New(wishlistrepo.NewSnapshot(snapshot.NewMemory(), nil), nil)
	ctx := context.Background()

	on, err := svc.Toggle(ctx, "s1", 3)
	require.NoError(t, err)
	assert.True(t, on)
	_, err = svc.Toggle(ctx, "s1", 1)
	require.NoError(t, err)

	ids, err := svc.List(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1}, ids)

	on, err = svc.Toggle(ctx, "s1", 3)
	require.NoError(t, err)
	assert.False(t, on)

	has, err := svc.Contains(ctx, "s1", 3)
	require.NoError(t, err)
	assert.False(t, has)
	has, err = svc.Contains(ctx, "s1", 1)
	require.NoError(t, err)
	assert.True(t, has)

	other, err := svc.List(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, other)
}
