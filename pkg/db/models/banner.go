package models

// Banner is one row of the Banners table. Inactive banners are still served
// in the snapshot; filtering on Active is the caller's job.
type Banner struct {
	Seq       int64  `gorm:"column:seq;primaryKey;autoIncrement"`
	ID        string `gorm:"column:id;type:text;not null"`
	ImageURL  string `gorm:"column:image_url;type:text"`
	Active    bool   `gorm:"column:active"`
	SortOrder int    `gorm:"column:sort_order"`
	Title     string `gorm:"column:title;type:text"`
}

func (Banner) TableName() string { return "banners" }

func (b Banner) RowSeq() int64 { return b.Seq }
