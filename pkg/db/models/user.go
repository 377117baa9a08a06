package models

// User is one row of the Users table. Cart and Addresses hold JSON-encoded
// lists; a value that fails to parse is read back as an empty list.
type User struct {
	Seq          int64  `gorm:"column:seq;primaryKey;autoIncrement"`
	UserID       string `gorm:"column:user_id;type:text;not null"`
	Name         string `gorm:"column:name;type:text;not null"`
	Email        string `gorm:"column:email;type:text;not null"`
	PasswordHash string `gorm:"column:password_hash;type:text;not null"`
	Phone        string `gorm:"column:phone;type:text"`
	CreatedAt    string `gorm:"column:created_at;type:text"`
	Cart         string `gorm:"column:cart;type:text"`
	Addresses    string `gorm:"column:addresses;type:text"`
}

func (User) TableName() string { return "users" }

func (u User) RowSeq() int64 { return u.Seq }
