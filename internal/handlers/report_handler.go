package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"campusfix/internal/services"
)

type ReportHandler struct {
	service services.ReportService
}

func NewReportHandler(service services.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// GET /reports/summary — counts by status and by work type for the dashboard.
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		log.Printf("[report][summary][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build summary"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
