package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/anurakx/villadesk/internal/backend"
	"github.com/anurakx/villadesk/internal/domain"
	"github.com/anurakx/villadesk/internal/kafka"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBackend) GetBooking(ctx context.Context, id string) (*backend.BookingDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backend.BookingDetail), args.Error(1)
}

func (m *MockBackend) CreateBooking(ctx context.Context, payload backend.SaveBookingPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *MockBackend) UpdateBooking(ctx context.Context, id string, payload backend.SaveBookingPayload) error {
	args := m.Called(ctx, id, payload)
	return args.Error(0)
}

func (m *MockBackend) DeleteBooking(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBackend) UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBackend) ListPayments(ctx context.Context, bookingID string) ([]domain.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockBackend) AddPayment(ctx context.Context, bookingID string, payload backend.AddPaymentPayload) error {
	args := m.Called(ctx, bookingID, payload)
	return args.Error(0)
}

func (m *MockBackend) AvailableRooms(ctx context.Context, start, end time.Time) ([]domain.Room, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockAudit struct {
	mock.Mock
}

func (m *MockAudit) Append(ctx context.Context, entry *domain.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAudit) ListRecent(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func validInput() SaveBookingInput {
	return SaveBookingInput{
		FullName:      "Maya Prasert",
		EmailID:       "maya@example.com",
		CheckInDate:   "2024-03-01",
		CheckOutDate:  "2024-03-04",
		RoomNo:        "101",
		NightlyRate:   100,
		BookingSource: "Walk-in",
	}
}

func TestBookingService_Create_ComputesTotalAmount(t *testing.T) {
	be := &MockBackend{}
	inv := &MockInvalidator{}
	service := NewBookingService(be, inv, zap.NewNop())

	ctx := context.Background()
	be.On("CreateBooking", ctx, mock.MatchedBy(func(p backend.SaveBookingPayload) bool {
		return p.TotalAmount == 300 && p.RoomNo == "101" && p.CheckInDate == "2024-03-01"
	})).Return(nil).Once()
	inv.On("Invalidate", ctx).Return(nil).Once()

	err := service.Create(ctx, validInput(), "admin")

	assert.NoError(t, err)
	be.AssertExpectations(t)
	inv.AssertExpectations(t)
}

func TestBookingService_Create_ValidationErrors(t *testing.T) {
	be := &MockBackend{}
	service := NewBookingService(be, nil, zap.NewNop())
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*SaveBookingInput)
	}{
		{"missing guest", func(i *SaveBookingInput) { i.FullName = "  " }},
		{"missing room", func(i *SaveBookingInput) { i.RoomNo = "" }},
		{"bad check-in", func(i *SaveBookingInput) { i.CheckInDate = "01/03/2024" }},
		{"bad check-out", func(i *SaveBookingInput) { i.CheckOutDate = "soon" }},
		{"inverted stay", func(i *SaveBookingInput) { i.CheckOutDate = "2024-02-28" }},
		{"same-day stay", func(i *SaveBookingInput) { i.CheckOutDate = "2024-03-01" }},
		{"negative rate", func(i *SaveBookingInput) { i.NightlyRate = -5 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)
			assert.ErrorIs(t, service.Create(ctx, input, "admin"), ErrInvalidInput)
		})
	}
	be.AssertNotCalled(t, "CreateBooking")
}

func TestBookingService_Create_BackendErrorSkipsSideEffects(t *testing.T) {
	be := &MockBackend{}
	inv := &MockInvalidator{}
	audit := &MockAudit{}
	service := NewBookingService(be, inv, zap.NewNop(), WithAudit(audit))

	ctx := context.Background()
	be.On("CreateBooking", ctx, mock.Anything).Return(errors.New("backend down")).Once()

	err := service.Create(ctx, validInput(), "admin")

	assert.Error(t, err)
	inv.AssertNotCalled(t, "Invalidate")
	audit.AssertNotCalled(t, "Append")
}

func TestBookingService_Create_PublishFailureIsNonFatal(t *testing.T) {
	be := &MockBackend{}
	inv := &MockInvalidator{}
	producer := &MockProducer{}
	service := NewBookingService(be, inv, zap.NewNop(), WithProducer(producer, "booking-events"))

	ctx := context.Background()
	be.On("CreateBooking", ctx, mock.Anything).Return(nil).Once()
	inv.On("Invalidate", ctx).Return(nil).Once()
	producer.On("Publish", ctx, "booking-events", mock.Anything, mock.Anything).
		Return(errors.New("kafka down")).Once()

	assert.NoError(t, service.Create(ctx, validInput(), "admin"))
	producer.AssertExpectations(t)
}

func TestBookingService_Create_AppendsAudit(t *testing.T) {
	be := &MockBackend{}
	audit := &MockAudit{}
	now := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	service := NewBookingService(be, nil, zap.NewNop(), WithAudit(audit), WithClock(func() time.Time { return now }))

	ctx := context.Background()
	be.On("CreateBooking", ctx, mock.Anything).Return(nil).Once()
	audit.On("Append", ctx, mock.MatchedBy(func(e *domain.AuditLog) bool {
		return e.Action == "booking.create" && e.User == "admin" && e.Timestamp.Equal(now) && e.ID != ""
	})).Return(nil).Once()

	assert.NoError(t, service.Create(ctx, validInput(), "admin"))
	audit.AssertExpectations(t)
}

func TestBookingService_ChangeStatus(t *testing.T) {
	be := &MockBackend{}
	inv := &MockInvalidator{}
	producer := &MockProducer{}
	service := NewBookingService(be, inv, zap.NewNop(), WithProducer(producer, "booking-events"))

	ctx := context.Background()
	be.On("UpdateBookingStatus", ctx, "bk1", domain.BookingStatusCheckedIn).Return(nil).Once()
	inv.On("Invalidate", ctx).Return(nil).Once()
	producer.On("Publish", ctx, "booking-events", "bk1", mock.MatchedBy(func(e kafka.BookingEvent) bool {
		return e.Type == kafka.EventBookingStatusChanged
	})).Return(nil).Once()

	err := service.ChangeStatus(ctx, "bk1", domain.BookingStatusCheckedIn, "admin")

	assert.NoError(t, err)
	be.AssertExpectations(t)
}

func TestBookingService_ChangeStatus_CancelMapsToCancelEvent(t *testing.T) {
	be := &MockBackend{}
	producer := &MockProducer{}
	service := NewBookingService(be, nil, zap.NewNop(), WithProducer(producer, "booking-events"))

	ctx := context.Background()
	be.On("UpdateBookingStatus", ctx, "bk1", domain.BookingStatusCancelled).Return(nil).Once()
	producer.On("Publish", ctx, "booking-events", "bk1", mock.MatchedBy(func(e kafka.BookingEvent) bool {
		return e.Type == kafka.EventBookingCancelled
	})).Return(nil).Once()

	assert.NoError(t, service.ChangeStatus(ctx, "bk1", domain.BookingStatusCancelled, "admin"))
	producer.AssertExpectations(t)
}

func TestBookingService_ChangeStatus_RejectsUnknown(t *testing.T) {
	be := &MockBackend{}
	service := NewBookingService(be, nil, zap.NewNop())

	err := service.ChangeStatus(context.Background(), "bk1", "Departed", "admin")

	assert.ErrorIs(t, err, ErrInvalidInput)
	be.AssertNotCalled(t, "UpdateBookingStatus")
}

func TestBookingService_List_Filters(t *testing.T) {
	be := &MockBackend{}
	now := time.Date(2024, time.March, 2, 9, 0, 0, 0, time.UTC)
	service := NewBookingService(be, nil, zap.NewNop(), WithClock(func() time.Time { return now }))

	pending := 50.0
	zero := 0.0
	bookings := []domain.Booking{
		{
			ID: "bk1", Status: domain.BookingStatusConfirmed,
			CheckIn:        time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC),
			CheckOut:       time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
			PendingBalance: &pending,
		},
		{
			ID: "bk2", Status: domain.BookingStatusCheckedOut,
			CheckIn:        time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC),
			CheckOut:       time.Date(2024, time.February, 23, 0, 0, 0, 0, time.UTC),
			PendingBalance: &zero,
		},
	}

	ctx := context.Background()
	be.On("ListBookings", ctx).Return(bookings, nil)

	byStatus, err := service.List(ctx, ListFilter{Status: "confirmed"})
	assert.NoError(t, err)
	assert.Len(t, byStatus, 1)
	assert.Equal(t, "bk1", byStatus[0].ID)

	byDate, err := service.List(ctx, ListFilter{Date: "2024-02-21"})
	assert.NoError(t, err)
	assert.Len(t, byDate, 1)
	assert.Equal(t, "bk2", byDate[0].ID)

	// A checkout day is not an occupied night.
	byCheckoutDay, err := service.List(ctx, ListFilter{Date: "2024-02-23"})
	assert.NoError(t, err)
	assert.Empty(t, byCheckoutDay)

	checkins, err := service.List(ctx, ListFilter{Filter: FilterCheckin})
	assert.NoError(t, err)
	assert.Len(t, checkins, 1)
	assert.Equal(t, "bk1", checkins[0].ID)

	// With a date, the checkin filter matches arrivals on that date
	// instead of today.
	checkinsOn, err := service.List(ctx, ListFilter{Filter: FilterCheckin, Date: "2024-02-20"})
	assert.NoError(t, err)
	assert.Len(t, checkinsOn, 1)
	assert.Equal(t, "bk2", checkinsOn[0].ID)

	noArrivals, err := service.List(ctx, ListFilter{Filter: FilterCheckin, Date: "2024-02-21"})
	assert.NoError(t, err)
	assert.Empty(t, noArrivals)

	withBalance, err := service.List(ctx, ListFilter{Filter: FilterPendingAmount})
	assert.NoError(t, err)
	assert.Len(t, withBalance, 1)
	assert.Equal(t, "bk1", withBalance[0].ID)
}

func TestBookingService_AddPayment(t *testing.T) {
	be := &MockBackend{}
	inv := &MockInvalidator{}
	now := time.Date(2024, time.March, 2, 9, 0, 0, 0, time.UTC)
	service := NewBookingService(be, inv, zap.NewNop(), WithClock(func() time.Time { return now }))

	ctx := context.Background()
	be.On("AddPayment", ctx, "bk1", mock.MatchedBy(func(p backend.AddPaymentPayload) bool {
		return p.Amount == 120 && p.Date == "2024-03-02" && p.BookingID == "bk1"
	})).Return(nil).Once()
	inv.On("Invalidate", ctx).Return(nil).Once()

	err := service.AddPayment(ctx, "bk1", PaymentInput{Amount: 120, Method: "Cash", Type: "Advance"}, "admin")

	assert.NoError(t, err)
	be.AssertExpectations(t)
}

func TestBookingService_AddPayment_RejectsNonPositive(t *testing.T) {
	be := &MockBackend{}
	service := NewBookingService(be, nil, zap.NewNop())

	assert.Error(t, service.AddPayment(context.Background(), "bk1", PaymentInput{Amount: 0}, "admin"))
	be.AssertNotCalled(t, "AddPayment")
}

func TestBookingService_AvailableRooms_RejectsInvertedRange(t *testing.T) {
	be := &MockBackend{}
	service := NewBookingService(be, nil, zap.NewNop())

	start := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	_, err := service.AvailableRooms(context.Background(), start, end)

	assert.ErrorIs(t, err, ErrInvalidInput)
	be.AssertNotCalled(t, "AvailableRooms")
}

func TestBookingService_Delete(t *testing.T) {
	be := &MockBackend{}
	inv := &MockInvalidator{}
	service := NewBookingService(be, inv, zap.NewNop())

	ctx := context.Background()
	be.On("DeleteBooking", ctx, "bk1").Return(nil).Once()
	inv.On("Invalidate", ctx).Return(nil).Once()

	assert.NoError(t, service.Delete(ctx, "bk1", "admin"))
	assert.Error(t, service.Delete(ctx, "", "admin"))
}
