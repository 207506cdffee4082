package db

import (
	"context"
	"errors"

	"github.com/belghachem/beehouse/internal/domain/model"
)

var (
	// ErrWishlistItemNotFound is returned when a referenced wishlist row
	// does not belong to the user.
	ErrWishlistItemNotFound = errors.New("wishlist item not found")
)

type IWishlistRepository interface {
	AddItem(ctx context.Context, userID, productID uint) (created bool, err error)
	GetByUserID(ctx context.Context, userID uint) ([]model.WishlistItem, error)
	RemoveItem(ctx context.Context, userID, wishlistItemID uint) error
}

type WishlistRepo struct {
	db *DbDao
}

func NewWishlistRepo(db *DbDao) *WishlistRepo {
	return &WishlistRepo{db: db}
}

// AddItem creates the user/product row if it does not exist yet and
// reports whether a new row was created.
func (r *WishlistRepo) AddItem(ctx context.Context, userID, productID uint) (bool, error) {
	item := model.WishlistItem{UserID: userID, ProductID: productID}
	result := r.db.WithContext(ctx).
		Where(model.WishlistItem{UserID: userID, ProductID: productID}).
		FirstOrCreate(&item)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *WishlistRepo) GetByUserID(ctx context.Context, userID uint) ([]model.WishlistItem, error) {
	var items []model.WishlistItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *WishlistRepo) RemoveItem(ctx context.Context, userID, wishlistItemID uint) error {
	result := r.db.WithContext(ctx).
		Where("wishlist_item_id = ? AND user_id = ?", wishlistItemID, userID).
		Delete(&model.WishlistItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWishlistItemNotFound
	}
	return nil
}

var _ IWishlistRepository = (*WishlistRepo)(nil)
