package wishlist

import (
	"github.com/swarnimjewels/storefront-backend/internal/clientstate"
	"github.com/swarnimjewels/storefront-backend/pkg/types"
)

const wishlistKey = "sj_wishlist"

// Wishlist is a client-local product list with no server mirror. Entries are
// full product snapshots so the list renders without refetching the catalog.
type Wishlist struct {
	store clientstate.Store
}

func New(store clientstate.Store) *Wishlist {
	return &Wishlist{store: store}
}

// Items reads the stored list; anything unreadable reads as empty.
func (w *Wishlist) Items() []types.ProductView {
	var items []types.ProductView
	if !w.store.Get(wishlistKey, &items) || items == nil {
		return []types.ProductView{}
	}
	return items
}

// Contains matches on the string-coerced product id.
func (w *Wishlist) Contains(id string) bool {
	for _, item := range w.Items() {
		if item.ID == id {
			return true
		}
	}
	return false
}

// Toggle removes the product when present, appends it otherwise, and returns
// the updated list.
func (w *Wishlist) Toggle(product types.ProductView) ([]types.ProductView, error) {
	items := w.Items()
	for i, item := range items {
		if item.ID == product.ID {
			updated := append(items[:i], items[i+1:]...)
			return updated, w.store.Set(wishlistKey, updated)
		}
	}
	updated := append(items, product)
	return updated, w.store.Set(wishlistKey, updated)
}
