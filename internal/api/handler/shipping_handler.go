package handler

import (
	"net/http"

	"github.com/belghachem/beehouse/internal/domain/model"
	"github.com/belghachem/beehouse/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ShippingHandler struct {
	shippingService service.IShippingService
}

func NewShippingHandler(shippingService service.IShippingService) *ShippingHandler {
	return &ShippingHandler{shippingService: shippingService}
}

// GET /api/shipping/estimate?wilaya=...&delivery_type=...
//
// Display estimate for the checkout flow. The placed order does not
// re-verify this value server-side.
func (h *ShippingHandler) EstimateCost(c *gin.Context) {
	wilaya := c.Query("wilaya")
	if wilaya == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "wilaya is required"})
		return
	}
	deliveryType := c.DefaultQuery("delivery_type", model.DeliveryHome)

	cost, err := h.shippingService.ResolveCost(c.Request.Context(), wilaya, deliveryType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"wilaya":        wilaya,
		"delivery_type": deliveryType,
		"shipping_cost": cost,
	})
}

// GET /api/admin/shipping/rates
func (h *ShippingHandler) ListRates(c *gin.Context) {
	rates, err := h.shippingService.GetAllRates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rates})
}

type rateRequest struct {
	Wilaya            string `json:"wilaya" binding:"required"`
	HomeDeliveryPrice string `json:"home_delivery_price" binding:"required"`
	StopDeskPrice     string `json:"stop_desk_price" binding:"required"`
	ReturnCost        string `json:"return_cost"`
}

// PUT /api/admin/shipping/rates
func (h *ShippingHandler) UpsertRate(c *gin.Context) {
	var req rateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	home, err1 := decimal.NewFromString(req.HomeDeliveryPrice)
	desk, err2 := decimal.NewFromString(req.StopDeskPrice)
	if err1 != nil || err2 != nil || home.IsNegative() || desk.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prices must be non-negative numbers"})
		return
	}
	returnCost := decimal.NewFromInt(300)
	if req.ReturnCost != "" {
		rc, err := decimal.NewFromString(req.ReturnCost)
		if err != nil || rc.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid return cost"})
			return
		}
		returnCost = rc
	}

	rate := &model.ShippingRate{
		Wilaya:            req.Wilaya,
		HomeDeliveryPrice: home,
		StopDeskPrice:     desk,
		ReturnCost:        returnCost,
	}
	if err := h.shippingService.UpsertRate(c.Request.Context(), rate); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rate})
}

// POST /api/admin/shipping/seed
func (h *ShippingHandler) SeedRates(c *gin.Context) {
	count, err := h.shippingService.SeedDefaultRates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"seeded": count})
}
