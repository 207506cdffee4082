package model

// WishlistItem saves a product on the user's profile. One row per
// user/product pair, adding the same product twice is a no-op.
type WishlistItem struct {
	WishlistItemID uint    `gorm:"primaryKey"`
	UserID         uint    `gorm:"not null;uniqueIndex:idx_wishlist_user_product"`
	ProductID      uint    `gorm:"not null;uniqueIndex:idx_wishlist_user_product"`
	Product        Product `gorm:"foreignKey:ProductID"`
	BaseModel
}
