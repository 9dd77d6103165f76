package handlers

import (
	"net/http"

	"go-smartstore/internal/utils"

	"github.com/gin-gonic/gin"
)

// GetSystemStatus feeds the settings screen the Device ID so the shop owner
// can read it out on a support call.
func GetSystemStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "online",
		"device_id": utils.GetDeviceID(),
	})
}
