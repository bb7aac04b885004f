package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meetroom/internal/http/middleware"
	"meetroom/internal/service"
)

// NewRouter wires every route of the HTTP surface. Reads are public;
// mutations require a session.
func NewRouter(authSvc service.AuthService, roomSvc service.RoomService, bookingSvc service.BookingService, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	authH := NewAuthHandler(authSvc, logger)
	roomH := NewRoomHandler(roomSvc, bookingSvc, logger)
	bookH := NewBookingHandler(bookingSvc, logger)

	r.GET("/", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	r.POST("/auth/login", authH.Login)
	r.POST("/auth/logout", authH.Logout)
	r.GET("/auth/me", middleware.Auth(authSvc), authH.Me)

	r.GET("/api/rooms", roomH.List)
	r.GET("/api/rooms/:slug", roomH.GetBySlug)
	r.GET("/api/rooms/:slug/status", roomH.Status)
	r.GET("/api/rooms/:slug/availability", roomH.Availability)

	r.GET("/api/bookings", bookH.ListByRange)
	r.GET("/api/bookings/all", bookH.ListAllRooms)
	r.POST("/api/bookings", middleware.Auth(authSvc), bookH.Create)
	r.PUT("/api/bookings/:id", middleware.Auth(authSvc), bookH.Update)
	r.DELETE("/api/bookings/:id", middleware.Auth(authSvc), bookH.Delete)

	return r
}
