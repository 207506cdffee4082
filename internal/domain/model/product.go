package model

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	ProductID   uint            `gorm:"primaryKey"`
	Name        string          `gorm:"not null;type:varchar(255)"`
	Slug        string          `gorm:"unique;not null;type:varchar(255);index"`
	Category    string          `gorm:"not null;type:varchar(100);index"`
	PackSize    string          `gorm:"type:varchar(50)"` // e.g. "500g jar"
	Price       decimal.Decimal `gorm:"not null;type:decimal(10,2)"`
	Description string          `gorm:"type:text"`
	BaseModel
}
