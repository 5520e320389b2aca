package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anurakx/villadesk/internal/auth"
	"github.com/anurakx/villadesk/internal/domain"
	"github.com/anurakx/villadesk/internal/service/bookings"
)

type BookingHandler struct {
	service bookings.BookingUseCase
}

func NewBookingHandler(service bookings.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
	router.PUT("/:id/status", h.changeStatus)
	router.GET("/:id/payments", h.listPayments)
	router.POST("/:id/payments", h.addPayment)
}

type bookingResponse struct {
	ID             string   `json:"id"`
	RoomID         int64    `json:"roomId"`
	Guest          string   `json:"guest"`
	GuestEmail     string   `json:"guestEmail,omitempty"`
	ContactNumber  string   `json:"contactNumber,omitempty"`
	CheckInDate    string   `json:"checkInDate"`
	CheckOutDate   string   `json:"checkOutDate"`
	Nights         int      `json:"nights"`
	BookingSource  string   `json:"bookingSource,omitempty"`
	Status         string   `json:"status"`
	TotalAmount    *float64 `json:"totalAmount,omitempty"`
	TotalPaid      *float64 `json:"totalPaid,omitempty"`
	PendingBalance *float64 `json:"balance,omitempty"`
	Notes          string   `json:"notes,omitempty"`
}

// writeServiceError maps a rejected payload to 400 and anything else,
// an upstream booking-system failure, to 502.
func writeServiceError(c *gin.Context, err error) {
	status := http.StatusBadGateway
	if errors.Is(err, bookings.ErrInvalidInput) {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func toBookingResponse(b domain.Booking) bookingResponse {
	return bookingResponse{
		ID:             b.ID,
		RoomID:         b.RoomID,
		Guest:          b.GuestName,
		GuestEmail:     b.GuestEmail,
		ContactNumber:  b.GuestPhone,
		CheckInDate:    domain.FormatDate(b.CheckIn),
		CheckOutDate:   domain.FormatDate(b.CheckOut),
		Nights:         b.Nights(),
		BookingSource:  string(b.Source),
		Status:         string(b.Status),
		TotalAmount:    b.TotalAmount,
		TotalPaid:      b.TotalPaid,
		PendingBalance: b.PendingBalance,
		Notes:          b.Notes,
	}
}

func (h *BookingHandler) list(c *gin.Context) {
	filter := bookings.ListFilter{
		Status: c.Query("status"),
		Date:   c.Query("date"),
		Filter: c.Query("filter"),
	}

	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	out := make([]bookingResponse, 0, len(items))
	for _, b := range items {
		out = append(out, toBookingResponse(b))
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out})
}

func (h *BookingHandler) get(c *gin.Context) {
	detail, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *BookingHandler) create(c *gin.Context) {
	var input bookings.SaveBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.Create(c.Request.Context(), input, auth.UserFrom(c)); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "created"})
}

func (h *BookingHandler) update(c *gin.Context) {
	var input bookings.SaveBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.Update(c.Request.Context(), c.Param("id"), input, auth.UserFrom(c)); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *BookingHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), auth.UserFrom(c)); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

type changeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *BookingHandler) changeStatus(c *gin.Context) {
	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.ChangeStatus(c.Request.Context(), c.Param("id"), domain.BookingStatus(req.Status), auth.UserFrom(c)); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

type paymentResponse struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
	Method string  `json:"method"`
	Type   string  `json:"type"`
	Notes  string  `json:"notes,omitempty"`
}

func (h *BookingHandler) listPayments(c *gin.Context) {
	payments, err := h.service.ListPayments(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	out := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		date := ""
		if !p.Date.IsZero() {
			date = p.Date.Format(time.RFC3339)
		}
		out = append(out, paymentResponse{
			ID:     p.ID,
			Amount: p.Amount,
			Date:   date,
			Method: string(p.Method),
			Type:   string(p.Type),
			Notes:  p.Notes,
		})
	}
	c.JSON(http.StatusOK, gin.H{"payments": out})
}

func (h *BookingHandler) addPayment(c *gin.Context) {
	var input bookings.PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.AddPayment(c.Request.Context(), c.Param("id"), input, auth.UserFrom(c)); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "recorded"})
}
