package models

// Category is one row of the Categories table; the name is the key.
type Category struct {
	Seq  int64  `gorm:"column:seq;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;type:text;not null"`
}

func (Category) TableName() string { return "categories" }

func (c Category) RowSeq() int64 { return c.Seq }
