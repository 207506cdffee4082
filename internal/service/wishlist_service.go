package service

import (
	"context"

	"github.com/belghachem/beehouse/internal/domain/model"
	"github.com/belghachem/beehouse/internal/infra/repository/db"
)

type IWishlistService interface {
	AddToWishlist(ctx context.Context, userID, productID uint) (created bool, err error)
	ListWishlist(ctx context.Context, userID uint) ([]model.WishlistItem, error)
	RemoveFromWishlist(ctx context.Context, userID, wishlistItemID uint) error
}

type WishlistService struct {
	wishlistRepo db.IWishlistRepository
	productRepo  db.IProductRepository
}

func NewWishlistService(wishlistRepo db.IWishlistRepository, productRepo db.IProductRepository) *WishlistService {
	return &WishlistService{wishlistRepo: wishlistRepo, productRepo: productRepo}
}

// AddToWishlist saves the product for the user. Adding a product that is
// already saved is not an error, created reports whether anything
// changed.
func (s *WishlistService) AddToWishlist(ctx context.Context, userID, productID uint) (bool, error) {
	if _, err := s.productRepo.GetProductByID(ctx, productID); err != nil {
		return false, err
	}
	return s.wishlistRepo.AddItem(ctx, userID, productID)
}

func (s *WishlistService) ListWishlist(ctx context.Context, userID uint) ([]model.WishlistItem, error) {
	return s.wishlistRepo.GetByUserID(ctx, userID)
}

func (s *WishlistService) RemoveFromWishlist(ctx context.Context, userID, wishlistItemID uint) error {
	return s.wishlistRepo.RemoveItem(ctx, userID, wishlistItemID)
}

var _ IWishlistService = (*WishlistService)(nil)
