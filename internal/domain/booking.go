package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed  BookingStatus = "Confirmed"
	BookingStatusCheckedIn  BookingStatus = "Checked In"
	BookingStatusCheckedOut BookingStatus = "Checked Out"
	BookingStatusCancelled  BookingStatus = "Cancelled"
)

// Valid reports whether s is one of the recognized booking statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusConfirmed, BookingStatusCheckedIn, BookingStatusCheckedOut, BookingStatusCancelled:
		return true
	}
	return false
}

type BookingSource string

const (
	BookingSourceDirect     BookingSource = "Direct Website"
	BookingSourceWalkIn     BookingSource = "Walk-in"
	BookingSourceBookingCom BookingSource = "Booking.com"
	BookingSourceAirbnb     BookingSource = "Airbnb"
	BookingSourceExpedia    BookingSource = "Expedia"
)

// UnresolvedRoomID marks a booking whose room number could not be matched
// against the configured inventory. Such bookings are excluded from
// room-scoped computations but still count in guest-scoped ones.
const UnresolvedRoomID int64 = -1

// Booking is a reservation of exactly one room for a contiguous range of
// nights. CheckIn and CheckOut are civil dates normalized to midnight UTC;
// the stay occupies the half-open interval [CheckIn, CheckOut).
type Booking struct {
	ID         string
	RoomID     int64
	GuestName  string
	GuestEmail string
	GuestPhone string
	CheckIn    time.Time
	CheckOut   time.Time
	Source     BookingSource
	Status     BookingStatus

	// Money fields are pointers: the remote backend omits them on some
	// payloads and zero is a meaningful amount.
	TotalAmount    *float64
	TotalPaid      *float64
	PendingBalance *float64

	Notes     string
	CreatedAt time.Time
}

// Nights returns the booked stay length in whole nights. A malformed stay
// (checkout not after checkin) yields 0.
func (b Booking) Nights() int {
	n := int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}
