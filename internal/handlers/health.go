package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

var startTime = time.Now()

// Health expose l'état du service et son uptime.
func Health(c *gin.Context) {
	uptime := time.Since(startTime)
	hours := int(uptime.Hours())
	minutes := int(uptime.Minutes()) % 60
	seconds := int(uptime.Seconds()) % 60

	c.JSON(http.StatusOK, gin.H{
		"status": "Healthy",
		"uptime": fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds),
	})
}
