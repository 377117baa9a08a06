package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/swarnimjewels/storefront-backend/internal/orders"
	"github.com/swarnimjewels/storefront-backend/pkg/config"
	"github.com/swarnimjewels/storefront-backend/pkg/types"
)

const (
	msgNetworkError = "Network error. Check your connection."

	defaultTimeout = 15 * time.Second
)

// Response is the union of every envelope the action endpoint returns; only
// the fields relevant to the called action are populated.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`

	UserID    string             `json:"userId,omitempty"`
	User      *types.UserSummary `json:"user,omitempty"`
	Cart      []types.CartItem   `json:"cart,omitempty"`
	OrderID   string             `json:"orderId,omitempty"`
	Orders    []orders.OrderView `json:"orders,omitempty"`
	Addresses []json.RawMessage  `json:"addresses,omitempty"`

	Discount      decimal.Decimal `json:"discount,omitempty"`
	ExpiryDate    string          `json:"expiryDate,omitempty"`
	MinimumAmount decimal.Decimal `json:"minimumAmount,omitempty"`
}

// Client posts {action, ...payload} bodies. It never returns a Go error:
// transport and server failures come back as failure envelopes, exactly the
// shape callers already handle.
type Client struct {
	httpClient *http.Client
	url        string
}

func New(cfg config.ClientConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		url:        cfg.APIURL,
	}
}

// Call runs one action. The payload map's entries become top-level request
// fields next to the action name.
func (c *Client) Call(ctx context.Context, action string, payload map[string]any) Response {
	body := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		body[k] = v
	}
	body["action"] = action

	encoded, err := json.Marshal(body)
	if err != nil {
		return Response{Success: false, Error: msgNetworkError}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(encoded))
	if err != nil {
		return Response{Success: false, Error: msgNetworkError}
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return Response{Success: false, Error: msgNetworkError}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return Response{Success: false, Error: "Server error " + strconv.Itoa(res.StatusCode)}
	}

	var parsed Response
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return Response{Success: false, Error: msgNetworkError}
	}
	return parsed
}
