package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/applylikeprince/backend/internal/dtos"
	"github.com/applylikeprince/backend/internal/services"
)

type ApplicationHandler struct {
	Applications *services.ApplicationService
}

func NewApplicationHandler(applications *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{Applications: applications}
}

// Apply is POST /applications/apply. The response always carries one
// result per requested platform, mixed outcomes included.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req dtos.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	results, err := h.Applications.ApplyToJobs(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// History is GET /applications?page=0&size=10.
func (h *ApplicationHandler) History(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	apps, total, err := h.Applications.GetHistory(currentUserID(c), page, size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"content": apps,
		"total":   total,
		"page":    page,
		"size":    size,
	})
}

// Recent is GET /applications/recent.
func (h *ApplicationHandler) Recent(c *gin.Context) {
	apps, err := h.Applications.GetRecent(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// Stats is GET /applications/stats.
func (h *ApplicationHandler) Stats(c *gin.Context) {
	stats, err := h.Applications.GetDashboardStats(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetByID is GET /applications/:id.
func (h *ApplicationHandler) GetByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	app, err := h.Applications.GetByID(currentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// AuditTrail is GET /applications/:id/logs.
func (h *ApplicationHandler) AuditTrail(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	entries, err := h.Applications.GetAuditTrail(currentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// UpdateStatus is PATCH /applications/:id/status.
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	var req dtos.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	app, err := h.Applications.UpdateStatus(currentUserID(c), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, err
	}
	return uint(id), nil
}
