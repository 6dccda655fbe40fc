package api

import (
	"net/http"

	"gastroguide/model"

	"github.com/gin-gonic/gin"
)

func InfoHandler(info model.RestaurantInfo) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "info": info})
	}
}
