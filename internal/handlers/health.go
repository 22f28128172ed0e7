package handlers

import (
	"github.com/adwyte/synergysphere-web/internal/models"
	"github.com/gin-gonic/gin"
)

// HealthHandler reports service health for probes.
type HealthHandler struct {
	upstreamURL string
}

func NewHealthHandler(upstreamURL string) *HealthHandler {
	return &HealthHandler{upstreamURL: upstreamURL}
}

// CheckHealth returns the health status of the gateway and its session store.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	overall := "healthy"

	dbStatus := "ok"
	sqlDB, err := models.GetDB().DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	}

	var sessionCount int64
	models.GetDB().Model(&models.Session{}).Count(&sessionCount)

	c.JSON(200, gin.H{
		"status":  overall,
		"service": "synergysphere-web",
		"components": gin.H{
			"session_store":   dbStatus,
			"active_sessions": sessionCount,
			"backend":         h.upstreamURL,
		},
	})
}
