package models

import "github.com/shopspring/decimal"

// Product is one row of the Products table. Product IDs are caller-supplied
// and never uniqueness-checked by the store.
type Product struct {
	Seq           int64           `gorm:"column:seq;primaryKey;autoIncrement"`
	ID            string          `gorm:"column:id;type:text;not null"`
	Name          string          `gorm:"column:name;type:text"`
	Description   string          `gorm:"column:description;type:text"`
	Price         decimal.Decimal `gorm:"column:price;type:numeric"`
	CoverImage    string          `gorm:"column:cover_image;type:text"`
	GalleryImages string          `gorm:"column:gallery_images;type:text"`
	Category      string          `gorm:"column:category;type:text"`
	VideoURLs     string          `gorm:"column:video_urls;type:text"`
}

func (Product) TableName() string { return "products" }

func (p Product) RowSeq() int64 { return p.Seq }
