package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Status handles GET /status.
func Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Banner handles GET / with a short service description.
func Banner(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "dentist appointment booking",
		"status":  "ok",
	})
}

// Handshake answers the platform's capability validation probes.
func Handshake(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
