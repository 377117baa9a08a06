package localcart

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/swarnimjewels/storefront-backend/internal/clientstate"
	pkgerrors "github.com/swarnimjewels/storefront-backend/pkg/errors"
	"github.com/swarnimjewels/storefront-backend/pkg/types"
)

const (
	cartKey = "swarnimCart"

	defaultImage = "https://via.placeholder.com/150"
	defaultName  = "Product"
)

// AddInput describes the product being added.
type AddInput struct {
	ID    string
	Name  string
	Price decimal.Decimal
	Image string
}

// Cart is the client-local cart, the source of truth between syncs. The
// server copy is a mirror, updated on login, logout and the periodic push.
type Cart struct {
	store clientstate.Store
	now   func() time.Time
}

// New binds the cart to its durable store. Now defaults to time.Now.
func New(store clientstate.Store, now func() time.Time) *Cart {
	if now == nil {
		now = time.Now
	}
	return &Cart{store: store, now: now}
}

// Items reads the stored list; anything unreadable reads as empty.
func (c *Cart) Items() []types.CartItem {
	var items []types.CartItem
	if !c.store.Get(cartKey, &items) || items == nil {
		return []types.CartItem{}
	}
	return items
}

// Add bumps the quantity of an existing line or appends a new one-unit line.
// A missing id or non-positive price rejects the add; a missing name does not.
func (c *Cart) Add(in AddInput) error {
	if strings.TrimSpace(in.ID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "Invalid product data.")
	}
	if !in.Price.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "Invalid product price.")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = defaultName
	}
	image := in.Image
	if image == "" {
		image = defaultImage
	}

	items := c.Items()
	for i := range items {
		if string(items[i].ID) == in.ID {
			items[i].Quantity = items[i].Qty() + 1
			return c.store.Set(cartKey, items)
		}
	}
	items = append(items, types.CartItem{
		ID:       types.StringID(in.ID),
		Name:     name,
		Price:    in.Price,
		Image:    image,
		Quantity: 1,
		AddedAt:  c.now().UTC().Format(time.RFC3339),
	})
	return c.store.Set(cartKey, items)
}

// Remove drops all lines matching the id; removing an absent id is a no-op.
func (c *Cart) Remove(id string) error {
	items := c.Items()
	kept := items[:0]
	for _, item := range items {
		if string(item.ID) != id {
			kept = append(kept, item)
		}
	}
	return c.store.Set(cartKey, kept)
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
func (c *Cart) UpdateQuantity(id string, quantity int) error {
	if quantity <= 0 {
		return c.Remove(id)
	}
	items := c.Items()
	for i := range items {
		if string(items[i].ID) == id {
			items[i].Quantity = quantity
			return c.store.Set(cartKey, items)
		}
	}
	return nil
}

// Count sums line quantities, treating a missing quantity as one.
func (c *Cart) Count() int {
	total := 0
	for _, item := range c.Items() {
		total += item.Qty()
	}
	return total
}

// Total sums price times quantity across the cart.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items() {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Qty()))))
	}
	return total
}

// Replace overwrites the whole stored list; the sync merge uses this.
func (c *Cart) Replace(items []types.CartItem) error {
	if items == nil {
		items = []types.CartItem{}
	}
	return c.store.Set(cartKey, items)
}

// Clear empties the cart.
func (c *Cart) Clear() error {
	return c.store.Set(cartKey, []types.CartItem{})
}
