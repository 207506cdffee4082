package db

import (
	"context"
	"errors"

	"github.com/belghachem/beehouse/internal/domain/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrRateNotFound no rate row exists for the wilaya
	ErrRateNotFound = errors.New("shipping rate not found")
)

type IShippingRateRepository interface {
	GetByWilaya(ctx context.Context, wilaya string) (*model.ShippingRate, error)
	GetAllRates(ctx context.Context) ([]model.ShippingRate, error)
	UpsertRate(ctx context.Context, rate *model.ShippingRate) error
	SeedDefaultRates(ctx context.Context) (int, error)
}

type ShippingRateRepo struct {
	db *DbDao
}

func NewShippingRateRepo(db *DbDao) *ShippingRateRepo {
	return &ShippingRateRepo{db: db}
}

func (r *ShippingRateRepo) GetByWilaya(ctx context.Context, wilaya string) (*model.ShippingRate, error) {
	var rate model.ShippingRate
	err := r.db.WithContext(ctx).Where("wilaya = ?", wilaya).First(&rate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRateNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *ShippingRateRepo) GetAllRates(ctx context.Context) ([]model.ShippingRate, error) {
	var rates []model.ShippingRate
	err := r.db.WithContext(ctx).Order("wilaya").Find(&rates).Error
	return rates, err
}

// UpsertRate inserts the rate or updates the prices of an existing row,
// keyed by wilaya.
func (r *ShippingRateRepo) UpsertRate(ctx context.Context, rate *model.ShippingRate) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "wilaya"}},
		DoUpdates: clause.AssignmentColumns([]string{"home_delivery_price", "stop_desk_price", "return_cost"}),
	}).Create(rate).Error
}

var _ IShippingRateRepository = (*ShippingRateRepo)(nil)
