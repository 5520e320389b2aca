package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anurakx/villadesk/internal/domain"
	"github.com/anurakx/villadesk/internal/service/bookings"
)

type RoomHandler struct {
	inventory []domain.Room
	service   bookings.BookingUseCase
}

func NewRoomHandler(inventory []domain.Room, service bookings.BookingUseCase) *RoomHandler {
	return &RoomHandler{inventory: inventory, service: service}
}

func (h *RoomHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/available", h.available)
}

type roomResponse struct {
	ID            int64    `json:"id"`
	Number        string   `json:"roomNumber"`
	Type          string   `json:"type"`
	PricePerNight float64  `json:"pricePerNight"`
	Status        string   `json:"status"`
	Amenities     []string `json:"amenities,omitempty"`
}

func toRoomResponse(r domain.Room) roomResponse {
	return roomResponse{
		ID:            r.ID,
		Number:        r.Number,
		Type:          string(r.Type),
		PricePerNight: r.PricePerNight,
		Status:        string(r.Status),
		Amenities:     r.Amenities,
	}
}

func (h *RoomHandler) list(c *gin.Context) {
	out := make([]roomResponse, 0, len(h.inventory))
	for _, r := range h.inventory {
		out = append(out, toRoomResponse(r))
	}
	c.JSON(http.StatusOK, gin.H{"rooms": out})
}

// available proxies the availability query to the booking backend,
// which owns the authoritative booking ledger.
func (h *RoomHandler) available(c *gin.Context) {
	start, err := domain.ParseDate(c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "startDate must be YYYY-MM-DD"})
		return
	}
	end, err := domain.ParseDate(c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endDate must be YYYY-MM-DD"})
		return
	}

	rooms, err := h.service.AvailableRooms(c.Request.Context(), start, end)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	out := make([]roomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toRoomResponse(r))
	}
	c.JSON(http.StatusOK, gin.H{"rooms": out})
}
