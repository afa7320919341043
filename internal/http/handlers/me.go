package handlers

import (
	"net/http"

	"prime31/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Me(c *gin.Context) {
	username := c.GetString(middleware.ContextUsername)
	if username == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	online, roomID := h.Presence.Presence(username)
	c.JSON(http.StatusOK, gin.H{
		"username": username,
		"online":   online,
		"room_id":  roomID,
	})
}
