package ingest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryResolver_Resolve(t *testing.T) {
	t.Run("creates missing category with capitalized name", func(t *testing.T) {
		store := newTestStore(t)
		resolver := NewCategoryResolver(store)

		category, err := resolver.Resolve(context.Background(), "transport")
		require.NoError(t, err)
		assert.Equal(t, "Transport", category.Name)
		assert.NotEmpty(t, category.ID)
	})

	t.Run("returns existing category on case-insensitive match", func(t *testing.T) {
		store := newTestStore(t)
		existing, err := store.CreateCategory(context.Background(), "Transport")
		require.NoError(t, err)

		resolver := NewCategoryResolver(store)
		for _, candidate := range []string{"Transport", "transport", "TRANSPORT"} {
			category, err := resolver.Resolve(context.Background(), candidate)
			require.NoError(t, err)
			assert.Equal(t, existing.ID, category.ID)
			// The stored display name wins over the candidate's casing.
			assert.Equal(t, "Transport", category.Name)
		}

		categories, err := store.GetCategories(context.Background())
		require.NoError(t, err)
		assert.Len(t, categories, 1)
	})

	t.Run("resolving twice is idempotent", func(t *testing.T) {
		store := newTestStore(t)
		resolver := NewCategoryResolver(store)

		first, err := resolver.Resolve(context.Background(), "food")
		require.NoError(t, err)
		second, err := resolver.Resolve(context.Background(), "food")
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})
}
