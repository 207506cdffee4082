package db

import (
	"context"
	"testing"

	"github.com/belghachem/beehouse/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ShippingRateRepoTestSuite struct {
	suite.Suite
	repo *ShippingRateRepo
}

func (suite *ShippingRateRepoTestSuite) SetupTest() {
	suite.repo = NewShippingRateRepo(newTestDao(suite.T()))
}

func (suite *ShippingRateRepoTestSuite) TestSeedDefaultRates() {
	ctx := context.Background()

	seeded, err := suite.repo.SeedDefaultRates(ctx)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 56, seeded)

	rates, err := suite.repo.GetAllRates(ctx)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), rates, 56)
	for _, rate := range rates {
		require.True(suite.T(), rate.ReturnCost.Equal(decimal.NewFromInt(300)), rate.Wilaya)
	}
}

func (suite *ShippingRateRepoTestSuite) TestSeedDefaultRates_NoStopDeskFallsBackToHome() {
	ctx := context.Background()

	_, err := suite.repo.SeedDefaultRates(ctx)
	require.NoError(suite.T(), err)

	// Djanet ships with no stop desk in the tariff, so the stop desk
	// price is seeded as the home price.
	rate, err := suite.repo.GetByWilaya(ctx, "Djanet")
	require.NoError(suite.T(), err)
	require.True(suite.T(), rate.StopDeskPrice.Equal(rate.HomeDeliveryPrice))

	oran, err := suite.repo.GetByWilaya(ctx, "Oran")
	require.NoError(suite.T(), err)
	require.True(suite.T(), oran.HomeDeliveryPrice.Equal(decimal.NewFromInt(750)))
	require.True(suite.T(), oran.StopDeskPrice.Equal(decimal.NewFromInt(450)))
}

func (suite *ShippingRateRepoTestSuite) TestSeedDefaultRates_Reseed() {
	ctx := context.Background()

	_, err := suite.repo.SeedDefaultRates(ctx)
	require.NoError(suite.T(), err)

	// An operator override survives as a row but reseeding restores the
	// tariff values instead of duplicating the wilaya.
	err = suite.repo.UpsertRate(ctx, &model.ShippingRate{
		Wilaya:            "Oran",
		HomeDeliveryPrice: decimal.NewFromInt(999),
		StopDeskPrice:     decimal.NewFromInt(888),
		ReturnCost:        decimal.NewFromInt(300),
	})
	require.NoError(suite.T(), err)

	_, err = suite.repo.SeedDefaultRates(ctx)
	require.NoError(suite.T(), err)

	rates, err := suite.repo.GetAllRates(ctx)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), rates, 56)

	oran, err := suite.repo.GetByWilaya(ctx, "Oran")
	require.NoError(suite.T(), err)
	require.True(suite.T(), oran.HomeDeliveryPrice.Equal(decimal.NewFromInt(750)))
}

func (suite *ShippingRateRepoTestSuite) TestGetByWilaya_Missing() {
	_, err := suite.repo.GetByWilaya(context.Background(), "Atlantis")
	require.ErrorIs(suite.T(), err, ErrRateNotFound)
}

func (suite *ShippingRateRepoTestSuite) TestUpsertRate_InsertThenUpdate() {
	ctx := context.Background()

	rate := &model.ShippingRate{
		Wilaya:            "Oran",
		HomeDeliveryPrice: decimal.NewFromInt(750),
		StopDeskPrice:     decimal.NewFromInt(450),
		ReturnCost:        decimal.NewFromInt(300),
	}
	require.NoError(suite.T(), suite.repo.UpsertRate(ctx, rate))

	update := &model.ShippingRate{
		Wilaya:            "Oran",
		HomeDeliveryPrice: decimal.NewFromInt(700),
		StopDeskPrice:     decimal.NewFromInt(400),
		ReturnCost:        decimal.NewFromInt(250),
	}
	require.NoError(suite.T(), suite.repo.UpsertRate(ctx, update))

	stored, err := suite.repo.GetByWilaya(ctx, "Oran")
	require.NoError(suite.T(), err)
	require.True(suite.T(), stored.HomeDeliveryPrice.Equal(decimal.NewFromInt(700)))
	require.True(suite.T(), stored.ReturnCost.Equal(decimal.NewFromInt(250)))

	rates, err := suite.repo.GetAllRates(ctx)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), rates, 1)
}

func TestShippingRateRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ShippingRateRepoTestSuite))
}
