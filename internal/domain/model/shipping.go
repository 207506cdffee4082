package model

import (
	"github.com/shopspring/decimal"
)

// ShippingRate is the per-wilaya delivery tariff. Rows are created and
// updated by the administrative seed, never deleted in normal operation.
type ShippingRate struct {
	RateID            uint            `gorm:"primaryKey"`
	Wilaya            string          `gorm:"unique;not null;type:varchar(100)"`
	HomeDeliveryPrice decimal.Decimal `gorm:"not null;type:decimal(10,2)"`
	StopDeskPrice     decimal.Decimal `gorm:"not null;type:decimal(10,2)"`
	ReturnCost        decimal.Decimal `gorm:"not null;type:decimal(10,2)"`
	BaseModel
}

// PriceFor selects the price for a delivery type, defaulting to the home
// delivery price for anything that is not an explicit stop desk pickup.
func (r *ShippingRate) PriceFor(deliveryType string) decimal.Decimal {
	if deliveryType == DeliveryStopDesk {
		return r.StopDeskPrice
	}
	return r.HomeDeliveryPrice
}
