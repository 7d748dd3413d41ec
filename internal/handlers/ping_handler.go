package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karnikjan/EasyEvent/internal/models"
)

func Ping() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"status":  "OK",
			"service": "easyevent-api",
		}, "pong"))
	}
}
