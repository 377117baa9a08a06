package models

import "github.com/shopspring/decimal"

// Order is one row of the Orders table. Rows are append-only; Status is the
// only field mutated after creation, by fulfillment tooling outside this API.
type Order struct {
	Seq     int64           `gorm:"column:seq;primaryKey;autoIncrement"`
	OrderID string          `gorm:"column:order_id;type:text;not null"`
	UserID  string          `gorm:"column:user_id;type:text;not null"`
	Date    string          `gorm:"column:date;type:text"`
	Items   string          `gorm:"column:items;type:text"`
	Total   decimal.Decimal `gorm:"column:total;type:numeric"`
	Name    string          `gorm:"column:name;type:text"`
	Phone   string          `gorm:"column:phone;type:text"`
	Address string          `gorm:"column:address;type:text"`
	Status  string          `gorm:"column:status;type:text"`
}

func (Order) TableName() string { return "orders" }

func (o Order) RowSeq() int64 { return o.Seq }
