package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/belghachem/beehouse/internal/domain/model"
	"github.com/belghachem/beehouse/internal/infra/repository/db"
	"github.com/belghachem/beehouse/internal/infra/sms"
	"github.com/belghachem/beehouse/internal/pkg/util"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidStatus = errors.New("invalid order status")
)

// DefaultDeclaredShippingCost replaces a declared shipping cost that is
// missing or unparseable at checkout.
var DefaultDeclaredShippingCost = decimal.NewFromInt(800)

// CheckoutInfo carries the client's checkout form. DeclaredShippingCost
// is the raw value from the prior shipping-cost display step.
type CheckoutInfo struct {
	FullName             string
	Phone                string
	Address              string
	City                 string
	Wilaya               string
	DeliveryType         string
	StopDeskID           *uint
	Latitude             *float64
	Longitude            *float64
	DeclaredShippingCost string
}

// StatusReport aggregates the outcome of a bulk status transition for the
// operator: how many orders were marked and how the notification
// side-effects went.
type StatusReport struct {
	Marked    int
	SMSSent   int
	SMSFailed int
	Failed    map[uint]error
}

type IOrderService interface {
	PlaceOrder(ctx context.Context, userID uint, info CheckoutInfo) (*model.Order, error)
	GetOrder(ctx context.Context, orderID uint) (*model.Order, error)
	GetOrdersByUserID(ctx context.Context, userID uint) ([]model.Order, error)
	GetOrdersByStatus(ctx context.Context, status string) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID uint, status string) (smsSent bool, err error)
	BulkUpdateStatus(ctx context.Context, orderIDs []uint, status string) (*StatusReport, error)
	SetTrackingNumber(ctx context.Context, orderID uint, trackingNumber string) error
}

type OrderService struct {
	orderRepo    db.IOrderRepository
	stopDeskRepo db.IStopDeskRepository
	sender       sms.Sender
	logger       zerolog.Logger
}

func NewOrderService(orderRepo db.IOrderRepository, stopDeskRepo db.IStopDeskRepository, sender sms.Sender, logger zerolog.Logger) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		stopDeskRepo: stopDeskRepo,
		sender:       sender,
		logger:       logger,
	}
}

// PlaceOrder converts the user's cart into an order.
//
// The subtotal is recomputed from the live cart inside the checkout
// transaction, never taken from the client. The shipping cost however IS
// the client-declared value from the estimate step, used as-is when it
// parses to a non-negative number; the resolver is not re-consulted at
// placement time. Known trust gap, preserved on purpose and pinned by
// tests rather than silently fixed.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uint, info CheckoutInfo) (*model.Order, error) {
	deliveryType := info.DeliveryType
	if deliveryType != model.DeliveryStopDesk {
		deliveryType = model.DeliveryHome
	}

	var stopDeskID *uint
	if deliveryType == model.DeliveryStopDesk && info.StopDeskID != nil {
		desk, err := s.stopDeskRepo.GetStopDeskByID(ctx, *info.StopDeskID)
		switch {
		case errors.Is(err, db.ErrStopDeskNotFound):
			// Unresolvable desk: proceed without one rather than fail.
		case err != nil:
			return nil, err
		default:
			stopDeskID = &desk.StopDeskID
		}
	}

	order := &model.Order{
		FullName:     info.FullName,
		Phone:        info.Phone,
		Address:      info.Address,
		City:         info.City,
		Wilaya:       info.Wilaya,
		DeliveryType: deliveryType,
		StopDeskID:   stopDeskID,
		Latitude:     info.Latitude,
		Longitude:    info.Longitude,
		ShippingCost: parseDeclaredShippingCost(info.DeclaredShippingCost),
	}

	created, err := s.orderRepo.CreateFromCart(ctx, userID, order)
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Uint("order_id", created.OrderID).
		Uint("user_id", userID).
		Str("wilaya", created.Wilaya).
		Str("total", created.TotalPrice.String()).
		Msg("order placed")
	return created, nil
}

func parseDeclaredShippingCost(raw string) decimal.Decimal {
	cost, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || cost.IsNegative() {
		return DefaultDeclaredShippingCost
	}
	return cost
}

func (s *OrderService) GetOrder(ctx context.Context, orderID uint) (*model.Order, error) {
	return s.orderRepo.GetOrderByID(ctx, orderID)
}

func (s *OrderService) GetOrdersByUserID(ctx context.Context, userID uint) ([]model.Order, error) {
	return s.orderRepo.GetOrdersByUserID(ctx, userID)
}

// GetOrdersByStatus is the operator's work-queue view, newest first.
func (s *OrderService) GetOrdersByStatus(ctx context.Context, status string) ([]model.Order, error) {
	if !model.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.orderRepo.GetOrdersByStatus(ctx, status)
}

// UpdateStatus sets the order status and fires the notification
// side-effect where one is defined. Statuses are a flat set, any valid
// value may be set at any time. The status change commits regardless of
// the notification outcome; smsSent reports whether a notification was
// attempted and delivered.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, status string) (bool, error) {
	if !model.ValidStatus(status) {
		return false, ErrInvalidStatus
	}

	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return false, err
	}

	if err := s.orderRepo.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return false, err
	}
	if !statusNotifies(status) {
		return false, nil
	}
	return s.notifyStatus(ctx, status, order), nil
}

// notifyStatus sends the customer SMS for a committed transition and
// reports delivery. It never rolls back or blocks the status change.
func (s *OrderService) notifyStatus(ctx context.Context, status string, order *model.Order) bool {
	body, ok := statusMessage(status, order)
	if !ok {
		return false
	}
	phone := util.NormalizePhone(order.Phone)
	if err := s.sender.Send(ctx, phone, body); err != nil {
		s.logger.Error().Err(err).
			Uint("order_id", order.OrderID).
			Str("status", status).
			Msg("status notification failed")
		return false
	}
	return true
}

// BulkUpdateStatus marks every member independently and aggregates the
// outcome into one operator-facing report. Ids that match no order are
// reported, not fatal.
func (s *OrderService) BulkUpdateStatus(ctx context.Context, orderIDs []uint, status string) (*StatusReport, error) {
	if !model.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	orders, err := s.orderRepo.GetOrdersByIDs(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*model.Order, len(orders))
	for i := range orders {
		byID[orders[i].OrderID] = &orders[i]
	}

	report := &StatusReport{
		Failed: make(map[uint]error),
	}
	for _, orderID := range orderIDs {
		order, ok := byID[orderID]
		if !ok {
			report.Failed[orderID] = db.ErrOrderNotFound
			continue
		}
		if err := s.orderRepo.UpdateOrderStatus(ctx, orderID, status); err != nil {
			report.Failed[orderID] = err
			continue
		}
		report.Marked++
		if statusNotifies(status) {
			if s.notifyStatus(ctx, status, order) {
				report.SMSSent++
			} else {
				report.SMSFailed++
			}
		}
	}
	return report, nil
}

func (s *OrderService) SetTrackingNumber(ctx context.Context, orderID uint, trackingNumber string) error {
	return s.orderRepo.UpdateTrackingNumber(ctx, orderID, trackingNumber)
}

// statusNotifies reports whether the transition carries an SMS.
func statusNotifies(status string) bool {
	switch status {
	case model.StatusShipped, model.StatusDelivered, model.StatusCancelled:
		return true
	}
	return false
}

// statusMessage builds the customer-facing notification for a transition,
// or reports that the transition has none.
func statusMessage(status string, order *model.Order) (string, bool) {
	switch status {
	case model.StatusShipped:
		body := fmt.Sprintf("Good news! Your Bee House order #%d has been shipped!", order.OrderID)
		if order.TrackingNumber != nil && *order.TrackingNumber != "" {
			body += fmt.Sprintf(" Track it: %s", *order.TrackingNumber)
		}
		return body, true
	case model.StatusDelivered:
		return fmt.Sprintf("Your Bee House order #%d has been delivered! Enjoy your products!", order.OrderID), true
	case model.StatusCancelled:
		return fmt.Sprintf("Your Bee House order #%d has been cancelled. Contact us if you have questions.", order.OrderID), true
	}
	return "", false
}

var _ IOrderService = (*OrderService)(nil)
