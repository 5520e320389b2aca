// Package backend is the HTTP client for the remote booking backend, the
// external system that owns room/booking/payment persistence. The dashboard
// never writes state of its own here; it fetches snapshots and proxies
// mutations.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/anurakx/villadesk/config"
	"github.com/anurakx/villadesk/internal/domain"
	"github.com/anurakx/villadesk/internal/observability/metrics"
)

type Client struct {
	http   *resty.Client
	mapper *Mapper
	logger *zap.Logger
}

func NewClient(cfg config.BackendConfig, inventory []domain.Room, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		http:   httpClient,
		mapper: NewMapper(inventory, logger),
		logger: logger,
	}
}

type errorResponse struct {
	Message string `json:"message"`
}

func (c *Client) fail(op string, resp *resty.Response, err error) error {
	metrics.BackendErrors.Inc()
	if err != nil {
		c.logger.Error("backend call failed", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	msg := resp.Status()
	var body errorResponse
	if jErr := json.Unmarshal(resp.Body(), &body); jErr == nil && body.Message != "" {
		msg = body.Message
	}
	c.logger.Error("backend call rejected", zap.String("op", op), zap.Int("status", resp.StatusCode()), zap.String("message", msg))
	return fmt.Errorf("%s: %s", op, msg)
}

// ListBookings fetches the full booking snapshot. Records that fail
// ingestion (malformed dates) are dropped with a warning rather than
// silently degrading every downstream comparison.
func (c *Client) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	var items []bookingListItem
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&items).
		Get("/allBooking")
	if err != nil || resp.IsError() {
		return nil, c.fail("list bookings", resp, err)
	}

	bookings := make([]domain.Booking, 0, len(items))
	for _, item := range items {
		b, mapErr := c.mapper.Booking(item)
		if mapErr != nil {
			metrics.RejectedBookingRecords.Inc()
			c.logger.Warn("rejected booking record", zap.String("booking_id", item.ID), zap.Error(mapErr))
			continue
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// GetBooking fetches the editable detail view of one booking.
func (c *Client) GetBooking(ctx context.Context, id string) (*BookingDetail, error) {
	var detail BookingDetail
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&detail).
		SetPathParam("id", id).
		Get("/bookings/{id}")
	if err != nil || resp.IsError() {
		return nil, c.fail("get booking", resp, err)
	}
	return &detail, nil
}

// CreateBooking submits a new booking.
func (c *Client) CreateBooking(ctx context.Context, payload SaveBookingPayload) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		Post("/saveBooking")
	if err != nil || resp.IsError() {
		return c.fail("create booking", resp, err)
	}
	return nil
}

// UpdateBooking replaces an existing booking.
func (c *Client) UpdateBooking(ctx context.Context, id string, payload SaveBookingPayload) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetPathParam("id", id).
		Put("/bookings/{id}")
	if err != nil || resp.IsError() {
		return c.fail("update booking", resp, err)
	}
	return nil
}

// DeleteBooking removes a booking.
func (c *Client) DeleteBooking(ctx context.Context, id string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", id).
		Delete("/bookings/{id}")
	if err != nil || resp.IsError() {
		return c.fail("delete booking", resp, err)
	}
	return nil
}

// UpdateBookingStatus moves a booking through its lifecycle.
func (c *Client) UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"status": string(status)}).
		SetPathParam("id", id).
		Put("/bookings/{id}/status")
	if err != nil || resp.IsError() {
		return c.fail("update booking status", resp, err)
	}
	return nil
}

// ListPayments fetches the payments recorded against one booking.
func (c *Client) ListPayments(ctx context.Context, bookingID string) ([]domain.Payment, error) {
	var items []paymentItem
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&items).
		SetPathParam("id", bookingID).
		Get("/bookings/{id}/payments")
	if err != nil || resp.IsError() {
		return nil, c.fail("list payments", resp, err)
	}

	payments := make([]domain.Payment, 0, len(items))
	for _, item := range items {
		payments = append(payments, c.mapper.Payment(item))
	}
	return payments, nil
}

// AddPayment records a payment against a booking. Payments are recorded,
// not processed; there is no gateway behind this.
func (c *Client) AddPayment(ctx context.Context, bookingID string, payload AddPaymentPayload) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetPathParam("id", bookingID).
		Post("/bookings/{id}/payments")
	if err != nil || resp.IsError() {
		return c.fail("add payment", resp, err)
	}
	return nil
}

// AvailableRooms asks the backend which rooms are free for a date range.
func (c *Client) AvailableRooms(ctx context.Context, start, end time.Time) ([]domain.Room, error) {
	var items []roomItem
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&items).
		SetQueryParam("startDate", domain.FormatDate(start)).
		SetQueryParam("endDate", domain.FormatDate(end)).
		Get("/available-rooms")
	if err != nil || resp.IsError() {
		return nil, c.fail("available rooms", resp, err)
	}

	rooms := make([]domain.Room, 0, len(items))
	for _, item := range items {
		rooms = append(rooms, item.toDomain())
	}
	return rooms, nil
}
