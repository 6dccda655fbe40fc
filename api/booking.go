package api

import (
	"io"
	"net/http"

	"gastroguide/internal/apperrors"
	"gastroguide/internal/validation"
	"gastroguide/service"

	"github.com/gin-gonic/gin"
)

func MenuHandler(bookingSvc *service.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := bookingSvc.Menu(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "menu": items})
	}
}

func GetBookingHandler(bookingSvc *service.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		b, err := bookingSvc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "booking": b})
	}
}

// CreateBookingHandler validates the raw body against the booking schema
// before binding, so the first missing field is named in the error.
func CreateBookingHandler(bookingSvc *service.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
		if err != nil {
			fail(c, apperrors.NewValidationError("body", "Invalid request body"))
			return
		}
		req, err := validation.DecodeBookingRequest(body)
		if err != nil {
			fail(c, err)
			return
		}

		b, err := bookingSvc.Create(c.Request.Context(), req)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"booking": b,
			"message": "Booking created successfully",
		})
	}
}

func CancelBookingHandler(bookingSvc *service.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := bookingSvc.Cancel(c.Request.Context(), id); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Booking " + id + " cancelled successfully",
		})
	}
}

func ListBookingsHandler(bookingSvc *service.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := bookingSvc.List(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "bookings": list, "count": len(list)})
	}
}
