package db

import (
	"context"
	"errors"

	"github.com/belghachem/beehouse/internal/domain/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrEmptyCart is returned when checkout runs against a cart with no
	// lines, including the cart a concurrent duplicate submission finds
	// already emptied.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrOrderNotFound order does not exist
	ErrOrderNotFound = errors.New("order not found")
)

type IOrderRepository interface {
	CreateFromCart(ctx context.Context, userID uint, order *model.Order) (*model.Order, error)
	GetOrderByID(ctx context.Context, orderID uint) (*model.Order, error)
	GetOrdersByUserID(ctx context.Context, userID uint) ([]model.Order, error)
	GetOrdersByStatus(ctx context.Context, status string) ([]model.Order, error)
	GetOrdersByIDs(ctx context.Context, orderIDs []uint) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uint, status string) error
	UpdateTrackingNumber(ctx context.Context, orderID uint, trackingNumber string) error
}

type OrderRepo struct {
	db *DbDao
}

func NewOrderRepo(db *DbDao) *OrderRepo {
	return &OrderRepo{db: db}
}

// CreateFromCart turns the user's live cart into a persisted order.
//
// The incoming order carries the recipient fields, delivery selection and
// shipping cost; subtotal, total and the per-line price snapshots are
// computed here from the cart as it exists inside the transaction. The
// whole sequence - read cart, create order, snapshot items, clear lines -
// is one transaction, and the clear at the end must remove exactly the
// lines that were read. Two submissions of the same cart can therefore
// never both succeed: the loser's clear finds the lines already gone,
// the transaction rolls back and it gets ErrEmptyCart.
func (r *OrderRepo) CreateFromCart(ctx context.Context, userID uint, order *model.Order) (*model.Order, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var cart model.Cart
		err := tx.WithContext(ctx).
			Where("user_id = ?", userID).
			First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmptyCart
		}
		if err != nil {
			return err
		}

		var lines []model.CartItem
		if err := tx.WithContext(ctx).
			Preload("Product").
			Where("cart_id = ?", cart.CartID).
			Find(&lines).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		subtotal := decimal.NewFromInt(0)
		for _, line := range lines {
			subtotal = subtotal.Add(line.LineTotal())
		}

		order.UserID = userID
		order.Status = model.StatusPending
		order.PaymentMethod = model.PaymentCashOnDelivery
		order.Subtotal = subtotal
		order.TotalPrice = subtotal.Add(order.ShippingCost)

		if err := tx.WithContext(ctx).Omit(clause.Associations).Create(order).Error; err != nil {
			return err
		}

		items := make([]model.OrderItem, 0, len(lines))
		for _, line := range lines {
			items = append(items, model.OrderItem{
				OrderID:   order.OrderID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     line.Product.Price, // frozen here, never re-read
			})
		}
		if err := tx.WithContext(ctx).Omit(clause.Associations).Create(&items).Error; err != nil {
			return err
		}
		order.Items = items

		result := tx.WithContext(ctx).
			Where("cart_id = ?", cart.CartID).
			Delete(&model.CartItem{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != int64(len(lines)) {
			// A concurrent checkout of the same cart won the race.
			return ErrEmptyCart
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *OrderRepo) GetOrderByID(ctx context.Context, orderID uint) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("StopDesk").
		First(&order, "order_id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepo) GetOrdersByUserID(ctx context.Context, userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepo) GetOrdersByStatus(ctx context.Context, status string) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepo) GetOrdersByIDs(ctx context.Context, orderIDs []uint) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepo) UpdateOrderStatus(ctx context.Context, orderID uint, status string) error {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ?", orderID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepo) UpdateTrackingNumber(ctx context.Context, orderID uint, trackingNumber string) error {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ?", orderID).
		Update("tracking_number", trackingNumber)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

var _ IOrderRepository = (*OrderRepo)(nil)
