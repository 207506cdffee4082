package db

import (
	"context"
	"errors"

	"github.com/belghachem/beehouse/internal/domain/model"
	"gorm.io/gorm"
)

var (
	// ErrCartItemNotFound is returned when a referenced cart line does not
	// belong to the cart.
	ErrCartItemNotFound = errors.New("cart item not found")
)

type ICartRepository interface {
	GetOrCreateByUserID(ctx context.Context, userID uint) (*model.Cart, error)
	GetWithItems(ctx context.Context, userID uint) (*model.Cart, error)
	AddItem(ctx context.Context, cartID, productID uint, quantity int) error
	UpdateItemQuantity(ctx context.Context, cartID, cartItemID uint, quantity int) error
	RemoveItem(ctx context.Context, cartID, cartItemID uint) error
}

type CartRepo struct {
	db *DbDao
}

func NewCartRepo(db *DbDao) *CartRepo {
	return &CartRepo{db: db}
}

// GetOrCreateByUserID returns the user's cart, creating the row when none
// exists yet. A user without a cart record is never treated as an empty
// cart silently.
func (r *CartRepo) GetOrCreateByUserID(ctx context.Context, userID uint) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.WithContext(ctx).
		Where(model.Cart{UserID: userID}).
		FirstOrCreate(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetWithItems loads the cart's lines with their live products attached.
func (r *CartRepo) GetWithItems(ctx context.Context, userID uint) (*model.Cart, error) {
	cart, err := r.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).
		Preload("Product").
		Where("cart_id = ?", cart.CartID).
		Find(&cart.Items).Error
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem adds quantity to an existing line, or creates the line.
func (r *CartRepo) AddItem(ctx context.Context, cartID, productID uint, quantity int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var item model.CartItem
		err := tx.WithContext(ctx).
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.WithContext(ctx).Create(&model.CartItem{
				CartID:    cartID,
				ProductID: productID,
				Quantity:  quantity,
			}).Error
		}
		if err != nil {
			return err
		}
		return tx.WithContext(ctx).Model(&item).
			Update("quantity", gorm.Expr("quantity + ?", quantity)).Error
	})
}

// UpdateItemQuantity sets the line quantity. Zero or negative removes the
// line.
func (r *CartRepo) UpdateItemQuantity(ctx context.Context, cartID, cartItemID uint, quantity int) error {
	if quantity <= 0 {
		return r.RemoveItem(ctx, cartID, cartItemID)
	}
	result := r.db.WithContext(ctx).Model(&model.CartItem{}).
		Where("cart_item_id = ? AND cart_id = ?", cartItemID, cartID).
		Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *CartRepo) RemoveItem(ctx context.Context, cartID, cartItemID uint) error {
	result := r.db.WithContext(ctx).
		Where("cart_item_id = ? AND cart_id = ?", cartItemID, cartID).
		Delete(&model.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

var _ ICartRepository = (*CartRepo)(nil)
