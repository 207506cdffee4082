package service

import (
	"context"

	"github.com/belghachem/beehouse/internal/domain/model"
	"github.com/belghachem/beehouse/internal/infra/repository/db"
	"github.com/shopspring/decimal"
)

type ICartService interface {
	GetCart(ctx context.Context, userID uint) (*model.Cart, error)
	CartTotal(ctx context.Context, userID uint) (decimal.Decimal, error)
	ItemCount(ctx context.Context, userID uint) (int, error)
	AddItem(ctx context.Context, userID, productID uint, quantity int) error
	UpdateItem(ctx context.Context, userID, cartItemID uint, quantity int) error
	RemoveItem(ctx context.Context, userID, cartItemID uint) error
}

type CartService struct {
	cartRepo    db.ICartRepository
	productRepo db.IProductRepository
}

func NewCartService(cartRepo db.ICartRepository, productRepo db.IProductRepository) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo}
}

// GetCart returns the user's cart with lines and live products loaded,
// creating the cart record when the user has none yet.
func (s *CartService) GetCart(ctx context.Context, userID uint) (*model.Cart, error) {
	return s.cartRepo.GetWithItems(ctx, userID)
}

// CartTotal sums quantity times the product's current catalog price over
// all lines. Cart totals are always live, prices may change between
// adding to cart and checkout. An empty cart totals zero.
func (s *CartService) CartTotal(ctx context.Context, userID uint) (decimal.Decimal, error) {
	cart, err := s.cartRepo.GetWithItems(ctx, userID)
	if err != nil {
		return decimal.Decimal{}, err
	}
	total := decimal.NewFromInt(0)
	for _, line := range cart.Items {
		total = total.Add(line.LineTotal())
	}
	return total, nil
}

func (s *CartService) ItemCount(ctx context.Context, userID uint) (int, error) {
	cart, err := s.cartRepo.GetWithItems(ctx, userID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, line := range cart.Items {
		count += line.Quantity
	}
	return count, nil
}

func (s *CartService) AddItem(ctx context.Context, userID, productID uint, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}
	if _, err := s.productRepo.GetProductByID(ctx, productID); err != nil {
		return err
	}
	cart, err := s.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return err
	}
	return s.cartRepo.AddItem(ctx, cart.CartID, productID, quantity)
}

func (s *CartService) UpdateItem(ctx context.Context, userID, cartItemID uint, quantity int) error {
	cart, err := s.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return err
	}
	return s.cartRepo.UpdateItemQuantity(ctx, cart.CartID, cartItemID, quantity)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, cartItemID uint) error {
	cart, err := s.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return err
	}
	return s.cartRepo.RemoveItem(ctx, cart.CartID, cartItemID)
}

var _ ICartService = (*CartService)(nil)
