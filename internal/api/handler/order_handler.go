package handler

import (
	"errors"
	"net/http"

	"github.com/belghachem/beehouse/internal/infra/repository/db"
	"github.com/belghachem/beehouse/internal/service"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService service.IOrderService
}

func NewOrderHandler(orderService service.IOrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

type checkoutRequest struct {
	FullName     string   `json:"full_name" binding:"required"`
	Phone        string   `json:"phone" binding:"required"`
	Address      string   `json:"address" binding:"required"`
	City         string   `json:"city"`
	Wilaya       string   `json:"wilaya" binding:"required"`
	DeliveryType string   `json:"delivery_type"`
	StopDeskID   *uint    `json:"stop_desk_id"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	ShippingCost string   `json:"shipping_cost"`
}

// POST /api/orders
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orderService.PlaceOrder(c.Request.Context(), userID, service.CheckoutInfo{
		FullName:             req.FullName,
		Phone:                req.Phone,
		Address:              req.Address,
		City:                 req.City,
		Wilaya:               req.Wilaya,
		DeliveryType:         req.DeliveryType,
		StopDeskID:           req.StopDeskID,
		Latitude:             req.Latitude,
		Longitude:            req.Longitude,
		DeclaredShippingCost: req.ShippingCost,
	})
	if errors.Is(err, db.ErrEmptyCart) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "your cart is empty"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": order})
}

// GET /api/orders
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orders, err := h.orderService.GetOrdersByUserID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": orders})
}

// GET /api/orders/:order_id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orderID, ok := pathID(c, "order_id")
	if !ok {
		return
	}
	order, err := h.orderService.GetOrder(c.Request.Context(), orderID)
	if errors.Is(err, db.ErrOrderNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if order.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": order})
}

// GET /api/admin/orders?status=pending
//
// Operator work queue, filtered on the status column.
func (h *OrderHandler) ListOrdersByStatus(c *gin.Context) {
	status := c.Query("status")
	orders, err := h.orderService.GetOrdersByStatus(c.Request.Context(), status)
	if errors.Is(err, service.ErrInvalidStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": orders})
}

type bulkStatusRequest struct {
	OrderIDs []uint `json:"order_ids" binding:"required"`
	Status   string `json:"status" binding:"required"`
}

// POST /api/admin/orders/status
//
// Bulk operator action. The response mirrors the operator report:
// "N marked, M SMS failed".
func (h *OrderHandler) BulkUpdateStatus(c *gin.Context) {
	var req bulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.orderService.BulkUpdateStatus(c.Request.Context(), req.OrderIDs, req.Status)
	if errors.Is(err, service.ErrInvalidStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	failed := make(map[uint]string, len(report.Failed))
	for orderID, ferr := range report.Failed {
		failed[orderID] = ferr.Error()
	}
	c.JSON(http.StatusOK, gin.H{
		"marked":     report.Marked,
		"sms_sent":   report.SMSSent,
		"sms_failed": report.SMSFailed,
		"failed":     failed,
	})
}

type trackingRequest struct {
	TrackingNumber string `json:"tracking_number" binding:"required"`
}

// PUT /api/admin/orders/:order_id/tracking
func (h *OrderHandler) SetTrackingNumber(c *gin.Context) {
	orderID, ok := pathID(c, "order_id")
	if !ok {
		return
	}
	var req trackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := h.orderService.SetTrackingNumber(c.Request.Context(), orderID, req.TrackingNumber)
	if errors.Is(err, db.ErrOrderNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tracking number updated"})
}
