package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/belghachem/beehouse/internal/domain/model"
	"github.com/belghachem/beehouse/internal/infra/repository/db"
	"github.com/belghachem/beehouse/internal/pkg/util"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type OrderServiceTestSuite struct {
	suite.Suite
	dao         *db.DbDao
	cartRepo    *db.CartRepo
	orderRepo   *db.OrderRepo
	productRepo *db.ProductRepo
	sender      *recordingSender
	service     *OrderService
	cartService *CartService

	user   *model.User
	honey  *model.Product
	pollen *model.Product
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.dao = newTestDao(suite.T())
	suite.cartRepo = db.NewCartRepo(suite.dao)
	suite.orderRepo = db.NewOrderRepo(suite.dao)
	suite.productRepo = db.NewProductRepo(suite.dao)
	suite.sender = &recordingSender{}
	stopDeskRepo := db.NewStopDeskRepo(suite.dao)
	suite.service = NewOrderService(suite.orderRepo, stopDeskRepo, suite.sender, zerolog.Nop())
	suite.cartService = NewCartService(suite.cartRepo, suite.productRepo)

	ctx := context.Background()
	suite.user = &model.User{
		Username:       "amine",
		Phone:          "0551234567",
		HashedPassword: "x",
	}
	require.NoError(suite.T(), db.NewUserRepo(suite.dao).CreateUser(ctx, suite.user))

	suite.honey = suite.createProduct(ctx, "Mountain Honey", "100.00")
	suite.pollen = suite.createProduct(ctx, "Bee Pollen", "50.00")
}

func (suite *OrderServiceTestSuite) createProduct(ctx context.Context, name, price string) *model.Product {
	p := &model.Product{
		Name:     name,
		Slug:     util.Slugify(name),
		Category: "honey",
		Price:    decimal.RequireFromString(price),
	}
	require.NoError(suite.T(), suite.productRepo.CreateProduct(ctx, p))
	return p
}

func (suite *OrderServiceTestSuite) fillCart(ctx context.Context) {
	require.NoError(suite.T(), suite.cartService.AddItem(ctx, suite.user.UserID, suite.honey.ProductID, 2))
	require.NoError(suite.T(), suite.cartService.AddItem(ctx, suite.user.UserID, suite.pollen.ProductID, 1))
}

func (suite *OrderServiceTestSuite) checkoutInfo() CheckoutInfo {
	return CheckoutInfo{
		FullName:             "Amine B",
		Phone:                "0551234567",
		Address:              "12 Rue des Abeilles",
		City:                 "Tlemcen",
		Wilaya:               "Tlemcen",
		DeliveryType:         model.DeliveryHome,
		DeclaredShippingCost: "800",
	}
}

func (suite *OrderServiceTestSuite) TestPlaceOrder_Totals() {
	ctx := context.Background()
	suite.fillCart(ctx)

	order, err := suite.service.PlaceOrder(ctx, suite.user.UserID, suite.checkoutInfo())
	require.NoError(suite.T(), err)

	// 2 x 100 + 1 x 50 recomputed server-side, plus the declared 800.
	require.True(suite.T(), order.Subtotal.Equal(decimal.NewFromInt(250)))
	require.True(suite.T(), order.ShippingCost.Equal(decimal.NewFromInt(800)))
	require.True(suite.T(), order.TotalPrice.Equal(decimal.NewFromInt(1050)))
	require.Equal(suite.T(), model.StatusPending, order.Status)
	require.Equal(suite.T(), model.PaymentCashOnDelivery, order.PaymentMethod)
	require.Len(suite.T(), order.Items, 2)
}

func (suite *OrderServiceTestSuite) TestPlaceOrder_ClearsCart() {
	ctx := context.Background()
	suite.fillCart(ctx)

	_, err := suite.service.PlaceOrder(ctx, suite.user.UserID, suite.checkoutInfo())
	require.NoError(suite.T(), err)

	count, err := suite.cartService.ItemCount(ctx, suite.user.UserID)
	require.NoError(suite.T(), err)
	require.Zero(suite.T(), count)

	// Resubmitting the same cart cannot produce a second order.
	_, err = suite.service.PlaceOrder(ctx, suite.user.UserID, suite.checkoutInfo())
	require.ErrorIs(suite.T(), err, db.ErrEmptyCart)

	orders, err := suite.service.GetOrdersByUserID(ctx, suite.user.UserID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), orders, 1)
}

func (suite *OrderServiceTestSuite) TestPlaceOrder_EmptyCart() {
	ctx := context.Background()

	_, err := suite.service.PlaceOrder(ctx, suite.user.UserID, suite.checkoutInfo())
	require.ErrorIs(suite.T(), err, db.ErrEmptyCart)

	orders, err := suite.service.GetOrdersByUserID(ctx, suite.user.UserID)
	require.NoError(suite.T(), err)
	require.Empty(suite.T(), orders)
}

func (suite *OrderServiceTestSuite) TestPlaceOrder_PriceSnapshot() {
	ctx := context.Background()
	suite.fillCart(ctx)

	order, err := suite.service.PlaceOrder(ctx, suite.user.UserID, suite.checkoutInfo())
	require.NoError(suite.T(), err)

	// Catalog price changes after checkout must not touch the order.
	suite.honey.Price = decimal.RequireFromString("150.00")
	require.NoError(suite.T(), suite.productRepo.UpdateProduct(ctx, suite.honey))

	reloaded, err := suite.service.GetOrder(ctx, order.OrderID)
	require.NoError(suite.T(), err)
	for _, item := range reloaded.Items {
		if item.ProductID == suite.honey.ProductID {
			require.True(suite.T(), item.Price.Equal(decimal.NewFromInt(100)))
		}
	}
	require.True(suite.T(), reloaded.Subtotal.Equal(decimal.NewFromInt(250)))
}

func (suite *OrderServiceTestSuite) TestPlaceOrder_DeclaredShippingTrusted() {
	ctx := context.Background()
	suite.fillCart(ctx)

	// The declared value is used as-is even when it matches no tariff.
	info := suite.checkoutInfo()
	info.DeclaredShippingCost = "5"
	order, err := suite.service.PlaceOrder(ctx, suite.user.UserID, info)
	require.NoError(suite.T(), err)
	require.True(suite.T(), order.ShippingCost.Equal(decimal.NewFromInt(5)))
	require.True(suite.T(), order.TotalPrice.Equal(decimal.NewFromInt(255)))
}

func (suite *OrderServiceTestSuite) TestPlaceOrder_ShippingFallback() {
	cases := map[string]string{
		"empty":      "",
		"garbage":    "abc",
		"negative":   "-40",
		"whitespace": "   ",
	}
	for name, raw := range cases {
		suite.Run(name, func() {
			cost := parseDeclaredShippingCost(raw)
			require.True(suite.T(), cost.Equal(DefaultDeclaredShippingCost))
		})
	}
}

func (suite *OrderServiceTestSuite) TestPlaceOrder_UnknownStopDesk() {
	ctx := context.Background()
	suite.fillCart(ctx)

	missing := uint(9999)
	info := suite.checkoutInfo()
	info.DeliveryType = model.DeliveryStopDesk
	info.StopDeskID = &missing

	order, err := suite.service.PlaceOrder(ctx, suite.user.UserID, info)
	require.NoError(suite.T(), err)
	require.Nil(suite.T(), order.StopDeskID)
	require.Equal(suite.T(), model.DeliveryStopDesk, order.DeliveryType)
}

func (suite *OrderServiceTestSuite) TestPlaceOrder_UnknownDeliveryType() {
	ctx := context.Background()
	suite.fillCart(ctx)

	info := suite.checkoutInfo()
	info.DeliveryType = "pigeon"
	order, err := suite.service.PlaceOrder(ctx, suite.user.UserID, info)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), model.DeliveryHome, order.DeliveryType)
}

func (suite *OrderServiceTestSuite) placeOrder() *model.Order {
	ctx := context.Background()
	suite.fillCart(ctx)
	order, err := suite.service.PlaceOrder(ctx, suite.user.UserID, suite.checkoutInfo())
	require.NoError(suite.T(), err)
	return order
}

func (suite *OrderServiceTestSuite) TestUpdateStatus_ShippedSendsSMS() {
	ctx := context.Background()
	order := suite.placeOrder()

	require.NoError(suite.T(), suite.service.SetTrackingNumber(ctx, order.OrderID, "ZR-12345"))

	sent, err := suite.service.UpdateStatus(ctx, order.OrderID, model.StatusShipped)
	require.NoError(suite.T(), err)
	require.True(suite.T(), sent)

	require.Len(suite.T(), suite.sender.sent, 1)
	msg := suite.sender.sent[0]
	require.Equal(suite.T(), "+213551234567", msg.Phone)
	require.Contains(suite.T(), msg.Body, fmt.Sprintf("order #%d has been shipped", order.OrderID))
	require.Contains(suite.T(), msg.Body, "Track it: ZR-12345")

	reloaded, err := suite.service.GetOrder(ctx, order.OrderID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), model.StatusShipped, reloaded.Status)
}

func (suite *OrderServiceTestSuite) TestUpdateStatus_ProcessingIsSilent() {
	ctx := context.Background()
	order := suite.placeOrder()

	sent, err := suite.service.UpdateStatus(ctx, order.OrderID, model.StatusProcessing)
	require.NoError(suite.T(), err)
	require.False(suite.T(), sent)
	require.Empty(suite.T(), suite.sender.sent)
}

func (suite *OrderServiceTestSuite) TestUpdateStatus_SMSFailureStillCommits() {
	ctx := context.Background()
	order := suite.placeOrder()
	suite.sender.fail = true

	sent, err := suite.service.UpdateStatus(ctx, order.OrderID, model.StatusCancelled)
	require.NoError(suite.T(), err)
	require.False(suite.T(), sent)

	reloaded, err := suite.service.GetOrder(ctx, order.OrderID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), model.StatusCancelled, reloaded.Status)
}

func (suite *OrderServiceTestSuite) TestUpdateStatus_InvalidStatus() {
	order := suite.placeOrder()

	_, err := suite.service.UpdateStatus(context.Background(), order.OrderID, "lost")
	require.ErrorIs(suite.T(), err, ErrInvalidStatus)
}

func (suite *OrderServiceTestSuite) TestUpdateStatus_BackwardTransitionAllowed() {
	ctx := context.Background()
	order := suite.placeOrder()

	_, err := suite.service.UpdateStatus(ctx, order.OrderID, model.StatusDelivered)
	require.NoError(suite.T(), err)

	// Statuses are a flat set, delivered back to pending is legal.
	_, err = suite.service.UpdateStatus(ctx, order.OrderID, model.StatusPending)
	require.NoError(suite.T(), err)

	reloaded, err := suite.service.GetOrder(ctx, order.OrderID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), model.StatusPending, reloaded.Status)
}

func (suite *OrderServiceTestSuite) TestGetOrdersByStatus() {
	ctx := context.Background()
	shipped := suite.placeOrder()
	pending := suite.placeOrder()

	_, err := suite.service.UpdateStatus(ctx, shipped.OrderID, model.StatusShipped)
	require.NoError(suite.T(), err)

	got, err := suite.service.GetOrdersByStatus(ctx, model.StatusPending)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), got, 1)
	require.Equal(suite.T(), pending.OrderID, got[0].OrderID)

	got, err = suite.service.GetOrdersByStatus(ctx, model.StatusShipped)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), got, 1)
	require.Equal(suite.T(), shipped.OrderID, got[0].OrderID)
}

func (suite *OrderServiceTestSuite) TestGetOrdersByStatus_InvalidStatus() {
	_, err := suite.service.GetOrdersByStatus(context.Background(), "lost")
	require.ErrorIs(suite.T(), err, ErrInvalidStatus)
}

func (suite *OrderServiceTestSuite) TestBulkUpdateStatus_Report() {
	ctx := context.Background()

	var ids []uint
	for i := 0; i < 3; i++ {
		ids = append(ids, suite.placeOrder().OrderID)
	}

	report, err := suite.service.BulkUpdateStatus(ctx, ids, model.StatusDelivered)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 3, report.Marked)
	require.Equal(suite.T(), 3, report.SMSSent)
	require.Zero(suite.T(), report.SMSFailed)
	require.Empty(suite.T(), report.Failed)
	require.Len(suite.T(), suite.sender.sent, 3)
}

func (suite *OrderServiceTestSuite) TestBulkUpdateStatus_SMSFailuresCounted() {
	ctx := context.Background()
	ids := []uint{suite.placeOrder().OrderID, suite.placeOrder().OrderID}
	suite.sender.fail = true

	report, err := suite.service.BulkUpdateStatus(ctx, ids, model.StatusShipped)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 2, report.Marked)
	require.Zero(suite.T(), report.SMSSent)
	require.Equal(suite.T(), 2, report.SMSFailed)

	// Every order is marked even though no customer heard about it.
	for _, id := range ids {
		order, err := suite.service.GetOrder(ctx, id)
		require.NoError(suite.T(), err)
		require.Equal(suite.T(), model.StatusShipped, order.Status)
	}
}

func (suite *OrderServiceTestSuite) TestBulkUpdateStatus_MissingOrderReported() {
	ctx := context.Background()
	order := suite.placeOrder()

	report, err := suite.service.BulkUpdateStatus(ctx, []uint{order.OrderID, 4242}, model.StatusProcessing)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), 1, report.Marked)
	require.ErrorIs(suite.T(), report.Failed[4242], db.ErrOrderNotFound)
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

// Two checkouts racing on the same populated cart must yield exactly one
// order; the loser sees an empty cart. Uses a file-backed database so
// both goroutines get real concurrent sessions.
func TestPlaceOrder_ConcurrentDuplicateSubmission(t *testing.T) {
	ctx := context.Background()
	dao := newFileTestDao(t)
	productRepo := db.NewProductRepo(dao)
	cartService := NewCartService(db.NewCartRepo(dao), productRepo)
	orderService := NewOrderService(db.NewOrderRepo(dao), db.NewStopDeskRepo(dao), &recordingSender{}, zerolog.Nop())

	user := &model.User{Username: "amine", Phone: "0551234567", HashedPassword: "x"}
	require.NoError(t, db.NewUserRepo(dao).CreateUser(ctx, user))

	honey := &model.Product{
		Name:     "Mountain Honey",
		Slug:     "mountain-honey",
		Category: "honey",
		Price:    decimal.RequireFromString("100.00"),
	}
	require.NoError(t, productRepo.CreateProduct(ctx, honey))
	require.NoError(t, cartService.AddItem(ctx, user.UserID, honey.ProductID, 2))

	info := CheckoutInfo{
		FullName:             "Amine B",
		Phone:                "0551234567",
		Address:              "12 Rue des Abeilles",
		Wilaya:               "Tlemcen",
		DeliveryType:         model.DeliveryHome,
		DeclaredShippingCost: "800",
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = orderService.PlaceOrder(ctx, user.UserID, info)
		}(i)
	}
	wg.Wait()

	placed, emptied := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			placed++
		case errors.Is(err, db.ErrEmptyCart):
			emptied++
		default:
			t.Fatalf("unexpected checkout error: %v", err)
		}
	}
	require.Equal(t, 1, placed)
	require.Equal(t, 1, emptied)

	var count int64
	require.NoError(t, dao.Model(&model.Order{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}
