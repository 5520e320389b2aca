package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/anurakx/villadesk/internal/backend"
	"github.com/anurakx/villadesk/internal/domain"
	"github.com/anurakx/villadesk/internal/kafka"
	"github.com/anurakx/villadesk/internal/repository"
)

// ErrInvalidInput marks a rejection of the caller's payload, as
// opposed to an upstream failure.
var ErrInvalidInput = errors.New("invalid input")

type BookingUseCase interface {
	List(ctx context.Context, filter ListFilter) ([]domain.Booking, error)
	Get(ctx context.Context, id string) (*backend.BookingDetail, error)
	Create(ctx context.Context, input SaveBookingInput, actor string) error
	Update(ctx context.Context, id string, input SaveBookingInput, actor string) error
	Delete(ctx context.Context, id string, actor string) error
	ChangeStatus(ctx context.Context, id string, status domain.BookingStatus, actor string) error
	ListPayments(ctx context.Context, id string) ([]domain.Payment, error)
	AddPayment(ctx context.Context, id string, input PaymentInput, actor string) error
	AvailableRooms(ctx context.Context, start, end time.Time) ([]domain.Room, error)
}

// Backend is the upstream booking system surface the service drives.
type Backend interface {
	ListBookings(ctx context.Context) ([]domain.Booking, error)
	GetBooking(ctx context.Context, id string) (*backend.BookingDetail, error)
	CreateBooking(ctx context.Context, payload backend.SaveBookingPayload) error
	UpdateBooking(ctx context.Context, id string, payload backend.SaveBookingPayload) error
	DeleteBooking(ctx context.Context, id string) error
	UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) error
	ListPayments(ctx context.Context, bookingID string) ([]domain.Payment, error)
	AddPayment(ctx context.Context, bookingID string, payload backend.AddPaymentPayload) error
	AvailableRooms(ctx context.Context, start, end time.Time) ([]domain.Room, error)
}

// Invalidator drops the dashboard snapshot after a mutation so the
// next read sees the write.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	backend     Backend
	cache       Invalidator
	audit       repository.AuditRepository
	producer    Producer
	eventsTopic string
	logger      *zap.Logger
	nowFn       func() time.Time
}

type BookingServiceOption func(*BookingService)

func WithAudit(audit repository.AuditRepository) BookingServiceOption {
	return func(s *BookingService) {
		s.audit = audit
	}
}

func WithProducer(producer Producer, topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.eventsTopic = topic
	}
}

func WithClock(nowFn func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.nowFn = nowFn
	}
}

func NewBookingService(be Backend, cache Invalidator, logger *zap.Logger, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		backend: be,
		cache:   cache,
		logger:  logger,
		nowFn:   time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

type ListFilter struct {
	Status string
	Date   string
	Filter string
}

const (
	FilterCheckin       = "checkin"
	FilterPendingAmount = "pending"
)

type SaveBookingInput struct {
	FullName      string  `json:"fullName" binding:"required"`
	EmailID       string  `json:"emailId"`
	MobileNumber  string  `json:"mobileNumber"`
	CheckInDate   string  `json:"checkInDate" binding:"required"`
	CheckOutDate  string  `json:"checkOutDate" binding:"required"`
	RoomNo        string  `json:"roomNo" binding:"required"`
	NightlyRate   float64 `json:"nightlyRate"`
	BookingSource string  `json:"bookingSource"`
	AdvanceAmount float64 `json:"advanceAmount"`
	PaymentMethod string  `json:"paymentMethod"`
	InternalNotes string  `json:"internalNotes"`
}

type PaymentInput struct {
	Amount float64 `json:"amount" binding:"required"`
	Method string  `json:"method"`
	Type   string  `json:"type"`
	Notes  string  `json:"notes"`
}

func (s *BookingService) List(ctx context.Context, filter ListFilter) ([]domain.Booking, error) {
	bookings, err := s.backend.ListBookings(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if !matches(b, filter, s.nowFn()) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func matches(b domain.Booking, filter ListFilter, now time.Time) bool {
	if filter.Status != "" && !strings.EqualFold(string(b.Status), filter.Status) {
		return false
	}
	switch filter.Filter {
	case FilterCheckin:
		// The checkin filter matches arrivals on the supplied date,
		// or today when no date is given.
		day := domain.DateOf(now)
		if filter.Date != "" {
			parsed, err := domain.ParseDate(filter.Date)
			if err != nil {
				return false
			}
			day = parsed
		}
		return b.CheckIn.Equal(day)
	case FilterPendingAmount:
		if b.PendingBalance == nil || *b.PendingBalance <= 0 {
			return false
		}
	}
	if filter.Date != "" {
		day, err := domain.ParseDate(filter.Date)
		if err != nil {
			return false
		}
		// A booking matches a date when that night is part of the stay.
		if day.Before(b.CheckIn) || !day.Before(b.CheckOut) {
			return false
		}
	}
	return true
}

func (s *BookingService) Get(ctx context.Context, id string) (*backend.BookingDetail, error) {
	return s.backend.GetBooking(ctx, id)
}

func (s *BookingService) Create(ctx context.Context, input SaveBookingInput, actor string) error {
	payload, err := s.buildPayload(input)
	if err != nil {
		return err
	}

	if err := s.backend.CreateBooking(ctx, *payload); err != nil {
		return err
	}

	s.afterWrite(ctx, "booking.create", actor,
		fmt.Sprintf("room %s, %s to %s, guest %s", input.RoomNo, input.CheckInDate, input.CheckOutDate, input.FullName))
	s.publishEvent(ctx, kafka.EventBookingCreated, "", input)
	return nil
}

func (s *BookingService) Update(ctx context.Context, id string, input SaveBookingInput, actor string) error {
	if id == "" {
		return fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}
	payload, err := s.buildPayload(input)
	if err != nil {
		return err
	}

	if err := s.backend.UpdateBooking(ctx, id, *payload); err != nil {
		return err
	}

	s.afterWrite(ctx, "booking.update", actor, fmt.Sprintf("booking %s", id))
	s.publishEvent(ctx, kafka.EventBookingUpdated, id, input)
	return nil
}

func (s *BookingService) Delete(ctx context.Context, id string, actor string) error {
	if id == "" {
		return fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}
	if err := s.backend.DeleteBooking(ctx, id); err != nil {
		return err
	}

	s.afterWrite(ctx, "booking.delete", actor, fmt.Sprintf("booking %s", id))
	s.publishEvent(ctx, kafka.EventBookingCancelled, id, SaveBookingInput{})
	return nil
}

func (s *BookingService) ChangeStatus(ctx context.Context, id string, status domain.BookingStatus, actor string) error {
	if id == "" {
		return fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}
	if !status.Valid() {
		return fmt.Errorf("%w: unknown booking status %q", ErrInvalidInput, status)
	}
	if err := s.backend.UpdateBookingStatus(ctx, id, status); err != nil {
		return err
	}

	s.afterWrite(ctx, "booking.status", actor, fmt.Sprintf("booking %s -> %s", id, status))
	eventType := kafka.EventBookingStatusChanged
	if status == domain.BookingStatusCancelled {
		eventType = kafka.EventBookingCancelled
	}
	s.publish(ctx, kafka.BookingEvent{Type: eventType, BookingID: id, Status: string(status)})
	return nil
}

func (s *BookingService) ListPayments(ctx context.Context, id string) ([]domain.Payment, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}
	return s.backend.ListPayments(ctx, id)
}

func (s *BookingService) AddPayment(ctx context.Context, id string, input PaymentInput, actor string) error {
	if id == "" {
		return fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}
	if input.Amount <= 0 {
		return fmt.Errorf("%w: payment amount must be positive", ErrInvalidInput)
	}

	payload := backend.AddPaymentPayload{
		BookingID: id,
		Amount:    input.Amount,
		Method:    input.Method,
		Type:      input.Type,
		Date:      domain.FormatDate(s.nowFn()),
		Notes:     input.Notes,
	}
	if err := s.backend.AddPayment(ctx, id, payload); err != nil {
		return err
	}

	s.afterWrite(ctx, "booking.payment", actor, fmt.Sprintf("booking %s amount %.2f", id, input.Amount))
	s.publishEvent(ctx, kafka.EventPaymentRecorded, id, SaveBookingInput{})
	return nil
}

func (s *BookingService) AvailableRooms(ctx context.Context, start, end time.Time) ([]domain.Room, error) {
	if !end.After(start) {
		return nil, fmt.Errorf("%w: end date must be after start date", ErrInvalidInput)
	}
	return s.backend.AvailableRooms(ctx, start, end)
}

// buildPayload validates the input and fills the derived totalAmount:
// nightly rate times the stay length, with a one-night floor so a
// same-day booking is never free.
func (s *BookingService) buildPayload(input SaveBookingInput) (*backend.SaveBookingPayload, error) {
	if strings.TrimSpace(input.FullName) == "" {
		return nil, fmt.Errorf("%w: guest name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.RoomNo) == "" {
		return nil, fmt.Errorf("%w: room is required", ErrInvalidInput)
	}
	checkIn, err := domain.ParseDate(input.CheckInDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid check-in date: %v", ErrInvalidInput, err)
	}
	checkOut, err := domain.ParseDate(input.CheckOutDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid check-out date: %v", ErrInvalidInput, err)
	}
	if !checkOut.After(checkIn) {
		return nil, fmt.Errorf("%w: check-out must be after check-in", ErrInvalidInput)
	}
	if input.NightlyRate < 0 || input.AdvanceAmount < 0 {
		return nil, fmt.Errorf("%w: amounts must not be negative", ErrInvalidInput)
	}

	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights < 1 {
		nights = 1
	}

	return &backend.SaveBookingPayload{
		FullName:      strings.TrimSpace(input.FullName),
		EmailID:       strings.TrimSpace(input.EmailID),
		MobileNumber:  strings.TrimSpace(input.MobileNumber),
		CheckInDate:   domain.FormatDate(checkIn),
		CheckOutDate:  domain.FormatDate(checkOut),
		RoomNo:        strings.TrimSpace(input.RoomNo),
		NightlyRate:   input.NightlyRate,
		BookingSource: input.BookingSource,
		AdvanceAmount: input.AdvanceAmount,
		PaymentMethod: input.PaymentMethod,
		InternalNotes: input.InternalNotes,
		TotalAmount:   input.NightlyRate * float64(nights),
	}, nil
}

// afterWrite invalidates the dashboard snapshot and appends an audit
// entry. Both are best effort; the underlying write already succeeded.
func (s *BookingService) afterWrite(ctx context.Context, action, actor, details string) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("failed to invalidate snapshot", zap.Error(err))
		}
	}
	if s.audit != nil {
		entry := &domain.AuditLog{
			ID:        uuid.NewString(),
			Timestamp: s.nowFn(),
			Action:    action,
			User:      actor,
			Details:   details,
		}
		if err := s.audit.Append(ctx, entry); err != nil {
			s.logger.Warn("failed to append audit entry", zap.String("action", action), zap.Error(err))
		}
	}
}

func (s *BookingService) publishEvent(ctx context.Context, eventType, bookingID string, input SaveBookingInput) {
	s.publish(ctx, kafka.BookingEvent{
		Type:       eventType,
		BookingID:  bookingID,
		RoomNumber: input.RoomNo,
		Guest:      input.FullName,
		GuestEmail: input.EmailID,
		CheckIn:    input.CheckInDate,
		CheckOut:   input.CheckOutDate,
	})
}

// publish is best effort: a kafka outage never fails the mutation.
func (s *BookingService) publish(ctx context.Context, event kafka.BookingEvent) {
	if s.producer == nil {
		return
	}

	key := event.BookingID
	if key == "" {
		key = event.Type
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, key, event); err != nil {
		s.logger.Warn("failed to publish booking event",
			zap.String("type", event.Type),
			zap.String("bookingId", event.BookingID),
			zap.Error(err))
	}
}

var _ BookingUseCase = (*BookingService)(nil)
