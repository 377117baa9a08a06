package types

import "github.com/shopspring/decimal"

// UserSummary is the identity payload returned by login and held in the
// client session. It never carries the password hash.
type UserSummary struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
}

// ProductView is a product row as served in the catalog snapshot.
type ProductView struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	CoverImage    string          `json:"coverImage"`
	GalleryImages string          `json:"galleryImages"`
	Category      string          `json:"category"`
	VideoURLs     string          `json:"videoURLs"`
}

// BannerView keeps the active flag so callers can filter themselves.
type BannerView struct {
	ID        string `json:"id"`
	ImageURL  string `json:"imageUrl"`
	Active    bool   `json:"active"`
	SortOrder int    `json:"sortOrder"`
	Title     string `json:"title"`
}

// CouponView is an advertised coupon. Only active coupons make it into the
// snapshot; banners are not pre-filtered the same way.
type CouponView struct {
	Code          string          `json:"code"`
	Discount      decimal.Decimal `json:"discount"`
	ExpiryDate    string          `json:"expiryDate"`
	MinimumAmount decimal.Decimal `json:"minimumAmount"`
}

// Snapshot is the read-endpoint payload.
type Snapshot struct {
	Products   []ProductView `json:"products"`
	Categories []string      `json:"categories"`
	Banners    []BannerView  `json:"banners"`
	Coupons    []CouponView  `json:"coupons"`
}
