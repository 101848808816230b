package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/applylikeprince/backend/internal/services"
)

type PlatformHandler struct {
	Platforms *services.PlatformService
}

func NewPlatformHandler(platforms *services.PlatformService) *PlatformHandler {
	return &PlatformHandler{Platforms: platforms}
}

// List is GET /platforms, the active catalog.
func (h *PlatformHandler) List(c *gin.Context) {
	platforms, err := h.Platforms.ListActive()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, platforms)
}

// HealthCheck is GET /health.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
