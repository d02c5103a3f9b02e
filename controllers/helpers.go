package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// userIDFromCtx pulls the authenticated user id set by the auth middleware.
// Writes a 401 and returns false when it is missing.
func userIDFromCtx(c *gin.Context) (uint, bool) {
	v, ok := c.Get("userID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return 0, false
	}
	id, ok := v.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return 0, false
	}
	return id, true
}
