package orders

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// OrderLine is one purchased line as submitted at checkout.
type OrderLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// ItemsField accepts either a list of lines or a preformatted string, the two
// shapes checkout clients send.
type ItemsField struct {
	Lines []OrderLine
	Text  string
}

func (f *ItemsField) UnmarshalJSON(data []byte) error {
	var lines []OrderLine
	if err := json.Unmarshal(data, &lines); err == nil {
		f.Lines = lines
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		f.Text = text
		return nil
	}
	// Anything else renders as its raw JSON text.
	f.Text = strings.TrimSpace(string(data))
	return nil
}

// Summary flattens the lines into the stored "name xN, ..." form.
func (f ItemsField) Summary() string {
	if f.Lines == nil {
		return f.Text
	}
	parts := make([]string, 0, len(f.Lines))
	for _, line := range f.Lines {
		qty := line.Quantity
		if qty == 0 {
			qty = 1
		}
		parts = append(parts, line.Name+" x"+strconv.Itoa(qty))
	}
	return strings.Join(parts, ", ")
}

// OrderInput is the checkout payload.
type OrderInput struct {
	Items   ItemsField      `json:"items"`
	Total   decimal.Decimal `json:"total"`
	Name    string          `json:"name"`
	Phone   string          `json:"phone"`
	Address string          `json:"address"`
}

// OrderView is one order as returned to its owner.
type OrderView struct {
	OrderID string          `json:"orderId"`
	Date    string          `json:"date"`
	Items   string          `json:"items"`
	Total   decimal.Decimal `json:"total"`
	Name    string          `json:"name"`
	Phone   string          `json:"phone"`
	Address string          `json:"address"`
	Status  string          `json:"status"`
}
