package wishlist

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swarnimjewels/storefront-backend/internal/clientstate"
	"github.com/swarnimjewels/storefront-backend/pkg/types"
)

func TestToggle(t *testing.T) {
	w := New(clientstate.NewMemoryStore())
	ring := types.ProductView{ID: "P1", Name: "Ring"}
	chain := types.ProductView{ID: "P2", Name: "Chain"}

	items, err := w.Toggle(ring)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.True(t, w.Contains("P1"))

	items, err = w.Toggle(chain)
	require.NoError(t, err)
	require.Len(t, items, 2)

	items, err = w.Toggle(ring)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.False(t, w.Contains("P1"))
	require.True(t, w.Contains("P2"))
}

func TestItemsTolerant(t *testing.T) {
	store := clientstate.NewMemoryStore()
	require.NoError(t, store.Set("sj_wishlist", 42))

	w := New(store)
	require.Empty(t, w.Items())
}
