package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/belghachem/beehouse/internal/domain/model"
	"github.com/belghachem/beehouse/internal/infra/cache"
	"github.com/belghachem/beehouse/internal/infra/repository/db"
	"github.com/shopspring/decimal"
)

const shippingCacheTTL = time.Hour

// DefaultShippingCost applies to wilayas with no rate row. Deliberate
// soft fallback, an unknown wilaya is not an error.
var DefaultShippingCost = decimal.NewFromInt(400)

type IShippingService interface {
	ResolveCost(ctx context.Context, wilaya, deliveryType string) (decimal.Decimal, error)
	GetAllRates(ctx context.Context) ([]model.ShippingRate, error)
	UpsertRate(ctx context.Context, rate *model.ShippingRate) error
	SeedDefaultRates(ctx context.Context) (int, error)
}

type ShippingService struct {
	rateRepo db.IShippingRateRepository
	cache    cache.Cache
}

func NewShippingService(rateRepo db.IShippingRateRepository, c cache.Cache) *ShippingService {
	return &ShippingService{rateRepo: rateRepo, cache: c}
}

func shippingCacheKey(wilaya, deliveryType string) string {
	return fmt.Sprintf("shipping:%s:%s", wilaya, deliveryType)
}

// ResolveCost looks up the shipping cost for (wilaya, delivery type)
// through the shared cache. On a cache miss it reads the rate table,
// caches the found price for an hour and returns it. When no rate row
// exists the fixed default is returned WITHOUT touching the cache, so a
// later rate insert is picked up on the next call instead of being masked
// by a stale default.
func (s *ShippingService) ResolveCost(ctx context.Context, wilaya, deliveryType string) (decimal.Decimal, error) {
	key := shippingCacheKey(wilaya, deliveryType)

	if cached, err := s.cache.Get(ctx, key); err == nil {
		if cost, perr := decimal.NewFromString(cached); perr == nil {
			return cost, nil
		}
	}

	rate, err := s.rateRepo.GetByWilaya(ctx, wilaya)
	if errors.Is(err, db.ErrRateNotFound) {
		return DefaultShippingCost, nil
	}
	if err != nil {
		return decimal.Decimal{}, err
	}

	cost := rate.PriceFor(deliveryType)
	// Best effort: a failed cache write only costs a re-read next time.
	_ = s.cache.Set(ctx, key, cost.String(), shippingCacheTTL)
	return cost, nil
}

func (s *ShippingService) GetAllRates(ctx context.Context) ([]model.ShippingRate, error) {
	return s.rateRepo.GetAllRates(ctx)
}

// UpsertRate writes a rate row and drops any cached prices for the
// wilaya, so admin tariff changes are visible within one call instead of
// one TTL.
func (s *ShippingService) UpsertRate(ctx context.Context, rate *model.ShippingRate) error {
	if err := s.rateRepo.UpsertRate(ctx, rate); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, shippingCacheKey(rate.Wilaya, model.DeliveryHome))
	_ = s.cache.Delete(ctx, shippingCacheKey(rate.Wilaya, model.DeliveryStopDesk))
	return nil
}

func (s *ShippingService) SeedDefaultRates(ctx context.Context) (int, error) {
	return s.rateRepo.SeedDefaultRates(ctx)
}

var _ IShippingService = (*ShippingService)(nil)
