package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

const (
	DeliveryHome     = "home"
	DeliveryStopDesk = "stop_desk"
)

// The only supported payment method. Payment is collected at delivery
// time, outside this system.
const PaymentCashOnDelivery = "cod"

// ValidStatus reports whether s is one of the five order statuses.
// Any valid status may be set at any time, operators are not restricted
// to forward transitions.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Order is created exactly once at checkout and is immutable afterwards
// except for Status, TrackingNumber and timestamps.
type Order struct {
	OrderID       uint            `gorm:"primaryKey"`
	UserID        uint            `gorm:"not null;index:idx_orders_user_created,priority:1"`
	Status        string          `gorm:"not null;type:varchar(20);default:pending;index"`
	PaymentMethod string          `gorm:"not null;type:varchar(20);default:cod"`
	Subtotal      decimal.Decimal `gorm:"not null;type:decimal(10,2)"`
	ShippingCost  decimal.Decimal `gorm:"not null;type:decimal(10,2)"`
	TotalPrice    decimal.Decimal `gorm:"not null;type:decimal(10,2)"`

	// Recipient
	FullName     string    `gorm:"not null;type:varchar(200)"`
	Phone        string    `gorm:"not null;type:varchar(20)"`
	Address      string    `gorm:"type:text"`
	City         string    `gorm:"type:varchar(100)"`
	Wilaya       string    `gorm:"not null;type:varchar(100);index:idx_orders_wilaya_delivery,priority:1"`
	DeliveryType string    `gorm:"not null;type:varchar(20);default:home;index:idx_orders_wilaya_delivery,priority:2"`
	StopDeskID   *uint     `gorm:"null"`
	StopDesk     *StopDesk `gorm:"foreignKey:StopDeskID;constraint:OnDelete:SET NULL"`
	Latitude     *float64  `gorm:"null"`
	Longitude    *float64  `gorm:"null"`

	TrackingNumber *string `gorm:"null;type:varchar(100)"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index:idx_orders_user_created,priority:2,sort:desc"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TotalItems sums the quantities over all order lines.
func (o *Order) TotalItems() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// OrderItem snapshots the product price at order time. Price is frozen at
// creation and never re-read from the live product.
type OrderItem struct {
	OrderItemID uint            `gorm:"primaryKey"`
	OrderID     uint            `gorm:"not null;index"`
	ProductID   uint            `gorm:"not null"`
	Product     Product         `gorm:"foreignKey:ProductID"`
	Quantity    int             `gorm:"not null;default:1"`
	Price       decimal.Decimal `gorm:"not null;type:decimal(10,2)"`
	BaseModel
}

func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
