package invoicing

import (
	"context"
	"errors"
	"testing"

	"github.com/catering/gstbill/internal/infrastructure/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_AddDeduplicatesByCase(t *testing.T) {
	ctx := context.Background()
	svc := NewCatalogService(cache.NewMemoryCatalogStore(), "memory", nil)

	added, err := svc.Add(ctx, []string{"Paneer Tikka", "paneer tikka ", "Pani Puri"})
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	added, err = svc.Add(ctx, []string{"PANEER TIKKA"})
	require.NoError(t, err)
	assert.Zero(t, added)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"paneer tikka", "pani puri"}, all)
}

func TestCatalogService_AddIsOrderIndependent(t *testing.T) {
	ctx := context.Background()
	a := NewCatalogService(cache.NewMemoryCatalogStore(), "memory", nil)
	b := NewCatalogService(cache.NewMemoryCatalogStore(), "memory", nil)

	first := []string{"Dal Makhani", "Jeera Rice"}
	second := []string{"jeera rice", "Gulab Jamun"}

	_, err := a.Add(ctx, first)
	require.NoError(t, err)
	_, err = a.Add(ctx, second)
	require.NoError(t, err)
	_, err = b.Add(ctx, second)
	require.NoError(t, err)
	_, err = b.Add(ctx, first)
	require.NoError(t, err)

	listA, err := a.List(ctx)
	require.NoError(t, err)
	listB, err := b.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, listA, listB)
}

func TestCatalogService_AddSkipsEmptyInput(t *testing.T) {
	store := new(MockCatalogStore)
	svc := NewCatalogService(store, "mock", nil)

	added, err := svc.Add(context.Background(), []string{"", "   "})
	require.NoError(t, err)
	assert.Zero(t, added)
	store.AssertNotCalled(t, "AddAll", mock.Anything, mock.Anything)
}

func TestCatalogService_Suggest(t *testing.T) {
	ctx := context.Background()
	svc := NewCatalogService(cache.NewMemoryCatalogStore(), "memory", nil)
	_, err := svc.Add(ctx, []string{"Paneer Tikka", "Pani Puri", "Masala Dosa"})
	require.NoError(t, err)

	t.Run("prefix hit", func(t *testing.T) {
		got, err := svc.Suggest(ctx, "pan")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"paneer tikka", "pani puri"}, got)
	})

	t.Run("prefix is canonicalized", func(t *testing.T) {
		got, err := svc.Suggest(ctx, "  MAS")
		require.NoError(t, err)
		assert.Equal(t, []string{"masala dosa"}, got)
	})

	t.Run("no match is empty", func(t *testing.T) {
		got, err := svc.Suggest(ctx, "xy")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("short prefix is empty", func(t *testing.T) {
		got, err := svc.Suggest(ctx, "p")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestCatalogService_SuggestShortPrefixSkipsStore(t *testing.T) {
	store := new(MockCatalogStore)
	svc := NewCatalogService(store, "mock", nil)

	got, err := svc.Suggest(context.Background(), " a ")
	require.NoError(t, err)
	assert.Empty(t, got)
	store.AssertNotCalled(t, "MatchPrefix", mock.Anything, mock.Anything)
}

func TestCatalogService_StoreErrors(t *testing.T) {
	store := new(MockCatalogStore)
	svc := NewCatalogService(store, "mock", nil)
	boom := errors.New("unavailable")

	store.On("MatchPrefix", mock.Anything, "pa").Return(nil, boom)
	store.On("All", mock.Anything).Return(nil, boom)

	_, err := svc.Suggest(context.Background(), "Pa")
	assert.ErrorIs(t, err, boom)
	_, err = svc.List(context.Background())
	assert.ErrorIs(t, err, boom)
}
