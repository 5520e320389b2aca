package backend

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/anurakx/villadesk/internal/domain"
)

// flexString decodes a JSON field the backend serves inconsistently as
// either a string or a number (room numbers, mostly).
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

// bookingListItem is one element of the /allBooking response.
type bookingListItem struct {
	ID            string     `json:"id"`
	Room          flexString `json:"room"`
	Guest         string     `json:"guest"`
	GuestEmail    string     `json:"guestEmail"`
	ContactNumber string     `json:"contactNumber"`
	CheckInDate   string     `json:"checkInDate"`
	CheckOutDate  string     `json:"checkOutDate"`
	BookingSource string     `json:"bookingSource"`
	Status        string     `json:"status"`
	TotalAmount   *float64   `json:"totalAmount"`
	TotalPaid     *float64   `json:"totalPaid"`
	Balance       *float64   `json:"balance"`
	Notes         string     `json:"notes"`
}

// BookingDetail is the /bookings/{id} response, the shape the booking form
// edits.
type BookingDetail struct {
	FullName      string  `json:"fullName"`
	EmailID       string  `json:"emailId"`
	MobileNumber  string  `json:"mobileNumber"`
	CheckInDate   string  `json:"checkInDate"`
	CheckOutDate  string  `json:"checkOutDate"`
	RoomNo        string  `json:"roomNo"`
	NightlyRate   float64 `json:"nightlyRate"`
	AdvanceAmount float64 `json:"advanceAmount"`
	BookingSource string  `json:"bookingSource"`
	PaymentMethod string  `json:"paymentMethod"`
	InternalNotes string  `json:"internalNotes"`
}

// SaveBookingPayload is what /saveBooking and PUT /bookings/{id} accept.
type SaveBookingPayload struct {
	FullName      string  `json:"fullName"`
	EmailID       string  `json:"emailId"`
	MobileNumber  string  `json:"mobileNumber"`
	CheckInDate   string  `json:"checkInDate"`
	CheckOutDate  string  `json:"checkOutDate"`
	RoomNo        string  `json:"roomNo"`
	NightlyRate   float64 `json:"nightlyRate"`
	BookingSource string  `json:"bookingSource"`
	AdvanceAmount float64 `json:"advanceAmount"`
	PaymentMethod string  `json:"paymentMethod"`
	InternalNotes string  `json:"internalNotes"`
	TotalAmount   float64 `json:"totalAmount"`
}

type AddPaymentPayload struct {
	BookingID string  `json:"bookingId"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
	Type      string  `json:"type"`
	Date      string  `json:"date"`
	Notes     string  `json:"notes,omitempty"`
}

type paymentItem struct {
	ID        string  `json:"id"`
	BookingID string  `json:"bookingId"`
	Amount    float64 `json:"amount"`
	Date      string  `json:"date"`
	Method    string  `json:"method"`
	Type      string  `json:"type"`
	Notes     string  `json:"notes"`
}

type roomItem struct {
	ID            int64      `json:"id"`
	RoomNumber    flexString `json:"roomNumber"`
	Type          string     `json:"type"`
	PricePerNight float64    `json:"pricePerNight"`
	Status        string     `json:"status"`
	Amenities     []string   `json:"amenities"`
}

func (r roomItem) toDomain() domain.Room {
	return domain.Room{
		ID:            r.ID,
		Number:        string(r.RoomNumber),
		Type:          domain.RoomType(r.Type),
		PricePerNight: r.PricePerNight,
		Status:        domain.RoomStatus(r.Status),
		Amenities:     r.Amenities,
	}
}

// InvalidRecordError marks a backend booking payload the ingestion boundary
// refuses to hand to the stats core.
type InvalidRecordError struct {
	BookingID string
	Field     string
	Err       error
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("invalid booking record %s: field %s: %v", e.BookingID, e.Field, e.Err)
}

func (e *InvalidRecordError) Unwrap() error { return e.Err }

// Mapper turns remote payloads into domain entities, resolving room numbers
// against the configured inventory.
type Mapper struct {
	roomsByNumber map[string]int64
	logger        *zap.Logger
}

func NewMapper(inventory []domain.Room, logger *zap.Logger) *Mapper {
	byNumber := make(map[string]int64, len(inventory))
	for _, r := range inventory {
		byNumber[normalizeRoomNumber(r.Number)] = r.ID
	}
	return &Mapper{roomsByNumber: byNumber, logger: logger}
}

// Booking maps one list item. Malformed dates are rejected outright: letting
// an unparseable date degrade every overlap comparison to "no overlap" is
// the failure mode this boundary exists to stop.
func (m *Mapper) Booking(item bookingListItem) (domain.Booking, error) {
	checkIn, err := normalizeDate(item.CheckInDate)
	if err != nil {
		return domain.Booking{}, &InvalidRecordError{BookingID: item.ID, Field: "checkInDate", Err: err}
	}
	checkOut, err := normalizeDate(item.CheckOutDate)
	if err != nil {
		return domain.Booking{}, &InvalidRecordError{BookingID: item.ID, Field: "checkOutDate", Err: err}
	}

	roomID, ok := m.roomsByNumber[normalizeRoomNumber(string(item.Room))]
	if !ok {
		roomID = domain.UnresolvedRoomID
		m.logger.Warn("booking references unknown room",
			zap.String("booking_id", item.ID),
			zap.String("room", string(item.Room)),
		)
	}

	balance := item.Balance
	if balance == nil && item.TotalAmount != nil && item.TotalPaid != nil {
		// Older backend payloads omit the balance field.
		derived := *item.TotalAmount - *item.TotalPaid
		balance = &derived
	}

	return domain.Booking{
		ID:             item.ID,
		RoomID:         roomID,
		GuestName:      item.Guest,
		GuestEmail:     item.GuestEmail,
		GuestPhone:     item.ContactNumber,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		Source:         domain.BookingSource(item.BookingSource),
		Status:         domain.BookingStatus(item.Status),
		TotalAmount:    item.TotalAmount,
		TotalPaid:      item.TotalPaid,
		PendingBalance: balance,
		Notes:          item.Notes,
	}, nil
}

// Payment maps one payment item. A payment with an unreadable date keeps
// its amount and gets a zero date; payments only feed balances, not the
// interval math.
func (m *Mapper) Payment(item paymentItem) domain.Payment {
	date, err := normalizeDate(item.Date)
	if err != nil {
		m.logger.Warn("payment with unreadable date", zap.String("payment_id", item.ID), zap.Error(err))
	}
	return domain.Payment{
		ID:        item.ID,
		BookingID: item.BookingID,
		Amount:    item.Amount,
		Date:      date,
		Method:    domain.PaymentMethod(item.Method),
		Type:      domain.PaymentType(item.Type),
		Notes:     item.Notes,
	}
}

// normalizeDate accepts the strict civil form or a full timestamp and
// reduces both to midnight UTC.
func normalizeDate(s string) (time.Time, error) {
	if d, err := domain.ParseDate(s); err == nil {
		return d, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return domain.DateOf(t), nil
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// normalizeRoomNumber makes "101", " 101 " and the numeric 101 compare
// equal.
func normalizeRoomNumber(n string) string {
	n = strings.TrimSpace(n)
	if v, err := strconv.Atoi(n); err == nil {
		return strconv.Itoa(v)
	}
	return n
}
