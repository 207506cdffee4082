package model

import (
	"github.com/shopspring/decimal"
)

// One cart per user. Lines are deleted wholesale at checkout, the cart
// row itself persists for reuse.
type Cart struct {
	CartID uint       `gorm:"primaryKey"`
	UserID uint       `gorm:"not null;unique"`
	Items  []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	BaseModel
}

type CartItem struct {
	CartItemID uint    `gorm:"primaryKey"`
	CartID     uint    `gorm:"not null;uniqueIndex:idx_cart_product"`
	ProductID  uint    `gorm:"not null;uniqueIndex:idx_cart_product"`
	Product    Product `gorm:"foreignKey:ProductID"`
	Quantity   int     `gorm:"not null;default:1"`
	BaseModel
}

// LineTotal is quantity times the live catalog price.
func (i *CartItem) LineTotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
