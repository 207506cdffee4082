package handler

import (
	"errors"
	"net/http"

	"github.com/belghachem/beehouse/internal/infra/repository/db"
	"github.com/belghachem/beehouse/internal/service"
	"github.com/gin-gonic/gin"
)

type WishlistHandler struct {
	wishlistService service.IWishlistService
}

func NewWishlistHandler(wishlistService service.IWishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

type addToWishlistRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GET /api/wishlist
func (h *WishlistHandler) ListWishlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	items, err := h.wishlistService.ListWishlist(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

// POST /api/wishlist/items
func (h *WishlistHandler) AddToWishlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req addToWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.wishlistService.AddToWishlist(c.Request.Context(), userID, req.ProductID)
	if errors.Is(err, db.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !created {
		c.JSON(http.StatusOK, gin.H{"message": "already in wishlist"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "added to wishlist"})
}

// DELETE /api/wishlist/items/:item_id
func (h *WishlistHandler) RemoveFromWishlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "item_id")
	if !ok {
		return
	}
	err := h.wishlistService.RemoveFromWishlist(c.Request.Context(), userID, itemID)
	if errors.Is(err, db.ErrWishlistItemNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "wishlist item not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "removed from wishlist"})
}
