package handler

import (
	"errors"
	"net/http"

	"github.com/belghachem/beehouse/internal/domain/model"
	"github.com/belghachem/beehouse/internal/infra/repository/db"
	"github.com/belghachem/beehouse/internal/service"
	"github.com/gin-gonic/gin"
)

type StopDeskHandler struct {
	stopDeskService service.IStopDeskService
}

func NewStopDeskHandler(stopDeskService service.IStopDeskService) *StopDeskHandler {
	return &StopDeskHandler{stopDeskService: stopDeskService}
}

// GET /api/stopdesks?wilaya=...
func (h *StopDeskHandler) ListStopDesks(c *gin.Context) {
	desks, err := h.stopDeskService.ListActiveStopDesks(c.Request.Context(), c.Query("wilaya"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": desks})
}

// GET /api/stopdesks/:stop_desk_id
func (h *StopDeskHandler) GetStopDesk(c *gin.Context) {
	stopDeskID, ok := pathID(c, "stop_desk_id")
	if !ok {
		return
	}
	desk, err := h.stopDeskService.GetStopDesk(c.Request.Context(), stopDeskID)
	if errors.Is(err, db.ErrStopDeskNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "stop desk not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": desk})
}

type stopDeskRequest struct {
	Name         string  `json:"name" binding:"required"`
	Wilaya       string  `json:"wilaya" binding:"required"`
	City         string  `json:"city" binding:"required"`
	Address      string  `json:"address"`
	Phone        string  `json:"phone"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	WorkingHours string  `json:"working_hours"`
	WorkingDays  string  `json:"working_days"`
}

// POST /api/admin/stopdesks
func (h *StopDeskHandler) CreateStopDesk(c *gin.Context) {
	var req stopDeskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	desk := &model.StopDesk{
		Name:         req.Name,
		Wilaya:       req.Wilaya,
		City:         req.City,
		Address:      req.Address,
		Phone:        req.Phone,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		WorkingHours: req.WorkingHours,
		WorkingDays:  req.WorkingDays,
		IsActive:     true,
	}
	if err := h.stopDeskService.CreateStopDesk(c.Request.Context(), desk); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": desk})
}
