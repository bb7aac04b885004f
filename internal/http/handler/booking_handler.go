package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meetroom/internal/models"
	"meetroom/internal/repo"
	"meetroom/internal/service"
)

type BookingHandler struct {
	svc    service.BookingService
	logger *zap.Logger
}

func NewBookingHandler(svc service.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, logger: logger}
}

type bookingIn struct {
	Event  *models.CalendarEvent `json:"event" binding:"required"`
	RoomID string                `json:"roomId" binding:"required"`
}

// ListByRange handles GET /api/bookings?roomId&startDate&endDate.
func (h *BookingHandler) ListByRange(c *gin.Context) {
	roomID := c.Query("roomId")
	start, okS := parseTimeParam(c, "startDate")
	end, okE := parseTimeParam(c, "endDate")
	if roomID == "" || !okS || !okE {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameters"})
		return
	}

	events, err := h.svc.ListByDateRange(c.Request.Context(), roomID, start, end)
	if err != nil {
		h.logger.Error("fetch bookings", zap.String("room_id", roomID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// ListAllRooms handles GET /api/bookings/all?startDate&endDate.
func (h *BookingHandler) ListAllRooms(c *gin.Context) {
	start, okS := parseTimeParam(c, "startDate")
	end, okE := parseTimeParam(c, "endDate")
	if !okS || !okE {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameters"})
		return
	}

	events, err := h.svc.ListAllRoomsByDateRange(c.Request.Context(), start, end)
	if err != nil {
		h.logger.Error("fetch all rooms bookings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// Create handles POST /api/bookings. Overlapping bookings are allowed; the
// calendar stacks them, and availability stays an opt-in read.
func (h *BookingHandler) Create(c *gin.Context) {
	u := currentUser(c)

	var in bookingIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing event or roomId"})
		return
	}

	booking, err := h.svc.Create(c.Request.Context(), *in.Event, in.RoomID, u.ID)
	if err != nil {
		if errors.Is(err, service.ErrInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("create booking", zap.String("room_id", in.RoomID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "booking": booking})
}

// Update handles PUT /api/bookings/:id. Only the creating user may update.
func (h *BookingHandler) Update(c *gin.Context) {
	u := currentUser(c)
	id := c.Param("id")

	existing, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}
		h.logger.Error("load booking", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking"})
		return
	}
	if existing.UserID != u.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to modify this booking"})
		return
	}

	var in bookingIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing event or roomId"})
		return
	}

	booking, err := h.svc.Update(c.Request.Context(), id, *in.Event)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repo.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		default:
			h.logger.Error("update booking", zap.String("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "booking": booking})
}

// Delete handles DELETE /api/bookings/:id. Only the creating user may delete.
func (h *BookingHandler) Delete(c *gin.Context) {
	u := currentUser(c)
	id := c.Param("id")

	existing, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}
		h.logger.Error("load booking", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete booking"})
		return
	}
	if existing.UserID != u.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to delete this booking"})
		return
	}

	deleted, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil || !deleted {
		h.logger.Error("delete booking", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete booking"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
