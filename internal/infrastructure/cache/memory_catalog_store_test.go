package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCatalogStore(t *testing.T) {
	store := NewMemoryCatalogStore()
	ctx := context.Background()

	added, err := store.AddAll(ctx, []string{"paneer tikka", "dal makhani"})
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	added, err = store.AddAll(ctx, []string{"paneer tikka", "pani puri"})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"paneer tikka", "dal makhani", "pani puri"}, all)

	got, err := store.MatchPrefix(ctx, "pan")
	require.NoError(t, err)
	assert.Equal(t, []string{"paneer tikka", "pani puri"}, got)

	got, err = store.MatchPrefix(ctx, "xy")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMemoryCatalogStore_AllReturnsCopy(t *testing.T) {
	store := NewMemoryCatalogStore()
	ctx := context.Background()
	_, err := store.AddAll(ctx, []string{"samosa"})
	require.NoError(t, err)

	all, err := store.All(ctx)
	require.NoError(t, err)
	all[0] = "changed"

	again, err := store.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"samosa"}, again)
}

func TestMemoryCatalogStore_ConcurrentAdds(t *testing.T) {
	store := NewMemoryCatalogStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for w := 0; w < 10; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				_, err := store.AddAll(ctx, []string{fmt.Sprintf("item %d", i), fmt.Sprintf("worker %d", w)})
				assert.NoError(t, err)
			}
		}(w)
	}
	wg.Wait()

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 110)
}
