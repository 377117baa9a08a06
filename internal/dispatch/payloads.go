package dispatch

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/swarnimjewels/storefront-backend/internal/orders"
	"github.com/swarnimjewels/storefront-backend/pkg/types"
)

// Payload fields sit at the top level of the request body, next to the
// action name itself, so every payload struct decodes from the whole body.

type requestHeader struct {
	Action string `json:"action"`
}

type registerPayload struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required"`
	PasswordHash string `json:"passwordHash" validate:"required"`
	Phone        string `json:"phone"`
}

type loginPayload struct {
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

// Phone is a pointer so "not sent" and "sent empty" stay distinguishable;
// an explicit empty phone clears the stored one, an absent phone keeps it.
type updateUserPayload struct {
	UserID string  `json:"userId"`
	Name   string  `json:"name"`
	Phone  *string `json:"phone"`
}

type changePasswordPayload struct {
	UserID      string `json:"userId"`
	CurrentHash string `json:"currentHash"`
	NewHash     string `json:"newHash"`
}

type userPayload struct {
	UserID string `json:"userId"`
}

type saveCartPayload struct {
	UserID string           `json:"userId"`
	Cart   []types.CartItem `json:"cart"`
}

type saveOrderPayload struct {
	UserID string            `json:"userId"`
	Order  orders.OrderInput `json:"order"`
}

type saveAddressPayload struct {
	UserID  string          `json:"userId"`
	Address json.RawMessage `json:"address"`
}

type replaceAddressesPayload struct {
	UserID    string            `json:"userId"`
	Addresses []json.RawMessage `json:"addresses"`
}

type productPayload struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	CoverImage    string          `json:"coverImage"`
	GalleryImages string          `json:"galleryImages"`
	Category      string          `json:"category"`
	VideoURLs     string          `json:"videoURLs"`
}

type deleteProductPayload struct {
	ID string `json:"id"`
}

type categoryPayload struct {
	Category string `json:"category"`
}

// Active defaults to true when the field is absent.
type bannerPayload struct {
	ID        string `json:"id"`
	ImageURL  string `json:"imageUrl"`
	Active    *bool  `json:"active"`
	SortOrder int    `json:"sortOrder"`
	Title     string `json:"title"`
}

type deleteBannerPayload struct {
	ID string `json:"id"`
}

type addCouponPayload struct {
	Code          string          `json:"code" validate:"required"`
	Discount      decimal.Decimal `json:"discount"`
	Active        *bool           `json:"active"`
	ExpiryDate    string          `json:"expiryDate"`
	MinimumAmount decimal.Decimal `json:"minimumAmount"`
}

type deleteCouponPayload struct {
	Code string `json:"code"`
}

// validateCoupon historically accepted either field name.
type validateCouponPayload struct {
	CouponCode string `json:"couponCode"`
	Code       string `json:"code"`
}

func (p validateCouponPayload) code() string {
	if p.CouponCode != "" {
		return p.CouponCode
	}
	return p.Code
}
