package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexoventlabs/business-tracker/pkg/logger"
)

// DriverMemory names the in-process record store driver.
const DriverMemory = "memory"

// Pinger checks that the record store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RegisterSystemRoutes registers the service banner, the liveness probe and the
// store connectivity check.
// - GET /                     -> static banner
// - GET /api/health           -> {"status":"ok"}, never touches the store
// - GET /api/test-connection  -> forces store connection + ping
//
// driver is the configured store driver; "memory" gets its own success message so
// the check never claims a MongoDB connection that does not exist.
func RegisterSystemRoutes(r *gin.Engine, store Pinger, driver string) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Backend API is running"})
	})

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api.GET("/test-connection", func(c *gin.Context) {
		if err := store.Ping(c.Request.Context()); err != nil {
			logger.Warnf("test-connection: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "MongoDB connection failed",
				"error":   err.Error(),
			})
			return
		}
		if driver == DriverMemory {
			c.JSON(http.StatusOK, gin.H{"status": "success", "message": "In-memory store available", "driver": DriverMemory})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "MongoDB connection successful"})
	})
}
