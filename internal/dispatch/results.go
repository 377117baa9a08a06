package dispatch

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/swarnimjewels/storefront-backend/internal/orders"
	"github.com/swarnimjewels/storefront-backend/pkg/types"
)

// Result structs embed the envelope so their fields flatten into the
// {success, ...} body. They are only built on success; failures are plain
// envelopes.

type registerResult struct {
	types.Envelope
	UserID string `json:"userId"`
}

type loginResult struct {
	types.Envelope
	User types.UserSummary `json:"user"`
}

type cartResult struct {
	types.Envelope
	Cart []types.CartItem `json:"cart"`
}

type orderResult struct {
	types.Envelope
	OrderID string `json:"orderId"`
}

type ordersResult struct {
	types.Envelope
	Orders []orders.OrderView `json:"orders"`
}

type addressesResult struct {
	types.Envelope
	Addresses []json.RawMessage `json:"addresses"`
}

type couponResult struct {
	types.Envelope
	Discount      decimal.Decimal `json:"discount"`
	ExpiryDate    string          `json:"expiryDate"`
	MinimumAmount decimal.Decimal `json:"minimumAmount"`
}
