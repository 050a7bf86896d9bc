package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetMyNotifications is the handler for GET /v1/notifications
// It hands the UI every pending notice and empties the feed.
func (h *Handlers) GetMyNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"notifications": h.Notices.Drain(),
	})
}
