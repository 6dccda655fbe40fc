package route

import (
	"net/http"

	"gastroguide/api"
	"gastroguide/internal/logger"
	"gastroguide/model"
	"gastroguide/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Services struct {
	Chat       *service.ChatService
	Bookings   *service.BookingService
	Restaurant model.RestaurantInfo
	Logger     logger.Logger
}

func Register(r *gin.Engine, svc Services) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/info", api.InfoHandler(svc.Restaurant))
		apiGroup.GET("/menu", api.MenuHandler(svc.Bookings))

		apiGroup.GET("/bookings/:id", api.GetBookingHandler(svc.Bookings))
		apiGroup.POST("/bookings", api.CreateBookingHandler(svc.Bookings))
		apiGroup.DELETE("/bookings/:id", api.CancelBookingHandler(svc.Bookings))
		apiGroup.GET("/admin/bookings", api.ListBookingsHandler(svc.Bookings))

		apiGroup.POST("/chat", api.ChatHandler(svc.Chat, svc.Logger))
		apiGroup.GET("/chat/:session_id", api.GetSessionHandler(svc.Chat))
		apiGroup.DELETE("/chat/:session_id", api.ResetSessionHandler(svc.Chat))
	}

	r.GET("/ws/chat", api.ChatSocketHandler(svc.Chat, svc.Logger))
}
