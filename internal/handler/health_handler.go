package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"construction-stage-api/internal/database"
)

// HealthHandler answers liveness and readiness probes
type HealthHandler struct {
	handle *database.Handle
}

func NewHealthHandler(handle *database.Handle) *HealthHandler {
	return &HealthHandler{handle: handle}
}

// Health reports process liveness
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports readiness; fails while the database is unreachable
func (h *HealthHandler) Ready(c *gin.Context) {
	db := h.handle.Get()
	if db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database not connected"})
		return
	}

	sqlDB, err := db.DB()
	if err != nil || sqlDB.Ping() != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database unreachable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
