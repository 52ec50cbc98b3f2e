package models

import "github.com/shopspring/decimal"

// Book is an immutable catalog record, created at import time.
type Book struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Title       string          `gorm:"column:title;not null"`
	Author      string          `gorm:"column:author;not null"`
	Genre       string          `gorm:"column:genre;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric;not null"`
	Description string          `gorm:"column:description;not null"`
}
