package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/applylikeprince/backend/internal/services"
)

type ResumeHandler struct {
	Resumes *services.ResumeService
	AI      *services.AIService
}

func NewResumeHandler(resumes *services.ResumeService, ai *services.AIService) *ResumeHandler {
	return &ResumeHandler{Resumes: resumes, AI: ai}
}

// Upload is POST /resumes (multipart "file").
func (h *ResumeHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file: " + err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "open file: " + err.Error()})
		return
	}
	defer file.Close()

	resume, err := h.Resumes.Upload(
		c.Request.Context(),
		currentUserID(c),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
		fileHeader.Size,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resume)
}

// List is GET /resumes.
func (h *ResumeHandler) List(c *gin.Context) {
	resumes, err := h.Resumes.ListForUser(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resumes)
}

// Get is GET /resumes/:id.
func (h *ResumeHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	resume, err := h.Resumes.GetOwned(id, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resume)
}

// Delete is DELETE /resumes/:id.
func (h *ResumeHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	if err := h.Resumes.Delete(id, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// SetPrimary is PATCH /resumes/:id/primary.
func (h *ResumeHandler) SetPrimary(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	if err := h.Resumes.SetPrimary(id, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"primary": true})
}

// Optimize is POST /resumes/:id/optimize with {"job_description": ...}.
func (h *ResumeHandler) Optimize(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}
	var req struct {
		JobDescription string `json:"job_description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	resume, err := h.Resumes.GetOwned(id, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	suggestions, err := h.AI.OptimizeResumeForJob(c.Request.Context(), resume.RawContent, req.JobDescription)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
