package handler

import "github.com/gin-gonic/gin"

// Health handles the /healthz endpoint used for liveness checks.
func Health(c *gin.Context) {
	// Never cached.
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case "HEAD":
		c.Status(200)
	case "OPTIONS":
		c.Status(204)
	default:
		c.JSON(200, gin.H{"status": "ok"})
	}
}
