package handlers

import (
	"net/http"

	"skillbridge/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last dependency probe; 503 when any dependency is down.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
