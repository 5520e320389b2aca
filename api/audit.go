package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anurakx/villadesk/internal/repository"
)

const defaultAuditLimit = 100

type AuditHandler struct {
	repo repository.AuditRepository
}

func NewAuditHandler(repo repository.AuditRepository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

func (h *AuditHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
}

type auditEntryResponse struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"`
	User      string `json:"user"`
	Details   string `json:"details,omitempty"`
}

func (h *AuditHandler) list(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultAuditLimit)))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	entries, err := h.repo.ListRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]auditEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, auditEntryResponse{
			ID:        e.ID,
			Timestamp: e.Timestamp.Format(time.RFC3339),
			Action:    e.Action,
			User:      e.User,
			Details:   e.Details,
		})
	}
	c.JSON(http.StatusOK, gin.H{"entries": out})
}
