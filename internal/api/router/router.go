package router

import (
	"github.com/belghachem/beehouse/internal/api/handler"
	m "github.com/belghachem/beehouse/internal/api/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Handlers struct {
	Product  *handler.ProductHandler
	Cart     *handler.CartHandler
	Wishlist *handler.WishlistHandler
	Order    *handler.OrderHandler
	Shipping *handler.ShippingHandler
	StopDesk *handler.StopDeskHandler
	User     *handler.UserHandler
}

func SetupRouter(h Handlers, logger zerolog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(m.RequestIDMiddleware())
	router.Use(m.LoggerMiddleware(logger))
	router.Use(gin.Recovery())

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.User.Register)
			auth.POST("/verify", h.User.Verify)
		}

		products := api.Group("/products")
		{
			products.GET("", h.Product.ListProducts)
			products.GET("/:slug", h.Product.GetProductBySlug)
		}

		cart := api.Group("/cart")
		{
			cart.GET("", h.Cart.GetCart)
			cart.GET("/count", h.Cart.GetCartCount)
			cart.POST("/items", h.Cart.AddToCart)
			cart.PUT("/items/:item_id", h.Cart.UpdateCartItem)
			cart.DELETE("/items/:item_id", h.Cart.RemoveCartItem)
		}

		wishlist := api.Group("/wishlist")
		{
			wishlist.GET("", h.Wishlist.ListWishlist)
			wishlist.POST("/items", h.Wishlist.AddToWishlist)
			wishlist.DELETE("/items/:item_id", h.Wishlist.RemoveFromWishlist)
		}

		api.GET("/shipping/estimate", h.Shipping.EstimateCost)

		stopdesks := api.Group("/stopdesks")
		{
			stopdesks.GET("", h.StopDesk.ListStopDesks)
			stopdesks.GET("/:stop_desk_id", h.StopDesk.GetStopDesk)
		}

		orders := api.Group("/orders")
		{
			orders.POST("", h.Order.PlaceOrder)
			orders.GET("", h.Order.ListMyOrders)
			orders.GET("/:order_id", h.Order.GetOrder)
		}

		// Operator surface; access control sits in front of this service.
		admin := api.Group("/admin")
		{
			admin.POST("/products", h.Product.CreateProduct)
			admin.POST("/stopdesks", h.StopDesk.CreateStopDesk)
			admin.GET("/shipping/rates", h.Shipping.ListRates)
			admin.PUT("/shipping/rates", h.Shipping.UpsertRate)
			admin.POST("/shipping/seed", h.Shipping.SeedRates)
			admin.GET("/orders", h.Order.ListOrdersByStatus)
			admin.POST("/orders/status", h.Order.BulkUpdateStatus)
			admin.PUT("/orders/:order_id/tracking", h.Order.SetTrackingNumber)
		}
	}

	return router
}
