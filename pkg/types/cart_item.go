package types

import "github.com/shopspring/decimal"

// CartItem is one line of a cart. The same shape lives in the client's
// durable cart list and, JSON-encoded, in the Users table cart column.
type CartItem struct {
	ID       StringID        `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image,omitempty"`
	Quantity int             `json:"quantity"`
	AddedAt  string          `json:"addedAt,omitempty"`
}

// Qty treats a missing quantity as one line unit.
func (c CartItem) Qty() int {
	if c.Quantity == 0 {
		return 1
	}
	return c.Quantity
}
