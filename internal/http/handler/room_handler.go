package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meetroom/internal/repo"
	"meetroom/internal/service"
)

type RoomHandler struct {
	rooms    service.RoomService
	bookings service.BookingService
	logger   *zap.Logger
}

func NewRoomHandler(rooms service.RoomService, bookings service.BookingService, logger *zap.Logger) *RoomHandler {
	return &RoomHandler{rooms: rooms, bookings: bookings, logger: logger}
}

// List handles GET /api/rooms.
func (h *RoomHandler) List(c *gin.Context) {
	rooms, err := h.rooms.List(c.Request.Context())
	if err != nil {
		h.logger.Error("fetch rooms", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rooms"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

// GetBySlug handles GET /api/rooms/:slug.
func (h *RoomHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	room, err := h.rooms.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}
		h.logger.Error("fetch room", zap.String("slug", slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch room"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"room": room})
}

// Status handles GET /api/rooms/:slug/status — the current booking and the
// next upcoming one, for room-door displays. Either may be null.
func (h *RoomHandler) Status(c *gin.Context) {
	slug := c.Param("slug")
	room, err := h.rooms.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}
		h.logger.Error("fetch room", zap.String("slug", slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch room status"})
		return
	}

	current, next, err := h.bookings.Status(c.Request.Context(), room.ID, time.Now().UTC())
	if err != nil {
		h.logger.Error("fetch room status", zap.String("slug", slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch room status"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"current": current, "next": next})
}

// Availability handles GET /api/rooms/:slug/availability?startDate&endDate.
// This is the opt-in surface of the conflict checker; booking creation never
// consults it.
func (h *RoomHandler) Availability(c *gin.Context) {
	slug := c.Param("slug")
	start, okS := parseTimeParam(c, "startDate")
	end, okE := parseTimeParam(c, "endDate")
	if !okS || !okE {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameters"})
		return
	}

	room, err := h.rooms.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}
		h.logger.Error("fetch room", zap.String("slug", slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check availability"})
		return
	}

	available, err := h.bookings.IsAvailable(c.Request.Context(), room.ID, start, end)
	if err != nil {
		h.logger.Error("check availability", zap.String("slug", slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check availability"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": available})
}
