package models

import "github.com/shopspring/decimal"

// Coupon is one row of the Coupons table. ExpiryDate is a YYYY-MM-DD calendar
// date compared against end-of-day local time.
type Coupon struct {
	Seq             int64           `gorm:"column:seq;primaryKey;autoIncrement"`
	Code            string          `gorm:"column:code;type:text;not null"`
	DiscountPercent decimal.Decimal `gorm:"column:discount_percent;type:numeric"`
	Active          bool            `gorm:"column:active"`
	ExpiryDate      string          `gorm:"column:expiry_date;type:text"`
	MinimumAmount   decimal.Decimal `gorm:"column:minimum_amount;type:numeric"`
}

func (Coupon) TableName() string { return "coupons" }

func (c Coupon) RowSeq() int64 { return c.Seq }
