package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/anurakx/villadesk/internal/auth"
	"github.com/anurakx/villadesk/internal/domain"
	"github.com/anurakx/villadesk/internal/service/dashboard"
	"github.com/anurakx/villadesk/internal/stats"
)

type DashboardHandler struct {
	service dashboard.DashboardUseCase
}

func NewDashboardHandler(service dashboard.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) Register(router *gin.RouterGroup) {
	router.GET("/stats", h.stats)
	router.GET("/charts", h.charts)
	router.GET("/forecast", h.forecast)
	router.GET("/arrivals", h.arrivals)
}

// stats serves the headline summary. Revenue figures are included only
// for authenticated callers.
func (h *DashboardHandler) stats(c *gin.Context) {
	includeRevenue := auth.UserFrom(c) != ""

	summary, err := h.service.Stats(c.Request.Context(), includeRevenue)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *DashboardHandler) charts(c *gin.Context) {
	metric := stats.Metric(c.DefaultQuery("metric", string(stats.MetricRevenue)))
	rng := stats.Range(c.DefaultQuery("range", string(stats.RangeDaily)))
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "offset must be a non-negative integer"})
		return
	}

	if metric != stats.MetricRevenue && metric != stats.MetricOccupancy {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown metric"})
		return
	}
	switch rng {
	case stats.RangeDaily, stats.RangeWeekly, stats.RangeMonthly, stats.RangeYearly:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown range"})
		return
	}

	points, err := h.service.ChartData(c.Request.Context(), metric, rng, offset)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"metric": metric, "range": rng, "offset": offset, "points": points})
}

type forecastDayResponse struct {
	Date             string  `json:"date"`
	AvailableRoomIDs []int64 `json:"availableRoomIds"`
	AvailableRooms   int     `json:"availableRooms"`
}

func (h *DashboardHandler) forecast(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a non-negative integer"})
		return
	}

	days, err := h.service.Forecast(c.Request.Context(), page)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	out := make([]forecastDayResponse, 0, len(days))
	for _, d := range days {
		out = append(out, forecastDayResponse{
			Date:             domain.FormatDate(d.Date),
			AvailableRoomIDs: d.RoomIDs(),
			AvailableRooms:   len(d.AvailableRooms),
		})
	}
	c.JSON(http.StatusOK, gin.H{"page": page, "days": out})
}

func (h *DashboardHandler) arrivals(c *gin.Context) {
	arrivals, err := h.service.Arrivals(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	out := make([]bookingResponse, 0, len(arrivals))
	for _, b := range arrivals {
		out = append(out, toBookingResponse(b))
	}
	c.JSON(http.StatusOK, gin.H{"arrivals": out})
}
