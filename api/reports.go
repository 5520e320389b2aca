package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anurakx/villadesk/internal/service/dashboard"
)

type ReportHandler struct {
	service dashboard.DashboardUseCase
}

func NewReportHandler(service dashboard.DashboardUseCase) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) Register(router *gin.RouterGroup) {
	router.GET("/finance", h.finance)
}

func (h *ReportHandler) finance(c *gin.Context) {
	data, err := h.service.FinanceReport(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "finance.xlsx"))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
