package stats

import (
	"testing"
	"time"

	"github.com/anurakx/villadesk/internal/domain"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func amount(v float64) *float64 {
	return &v
}

func testRooms() []domain.Room {
	return []domain.Room{
		{ID: 1, Number: "101", Type: domain.RoomTypeSingle, PricePerNight: 80, Status: domain.RoomStatusAvailable},
		{ID: 2, Number: "102", Type: domain.RoomTypeSingle, PricePerNight: 80, Status: domain.RoomStatusAvailable},
	}
}

func marchBooking() domain.Booking {
	return domain.Booking{
		ID:          "b1",
		RoomID:      1,
		GuestName:   "Ana",
		CheckIn:     date(2024, time.March, 1),
		CheckOut:    date(2024, time.March, 4),
		Status:      domain.BookingStatusConfirmed,
		TotalAmount: amount(300),
	}
}

func TestOverlapNights_FullOverlap(t *testing.T) {
	b := marchBooking()
	n := OverlapNights(b.CheckIn, b.CheckOut, date(2024, time.March, 1), date(2024, time.March, 4))
	assert.Equal(t, 3, n)
}

func TestOverlapNights_PartialOverlap(t *testing.T) {
	b := marchBooking()
	n := OverlapNights(b.CheckIn, b.CheckOut, date(2024, time.March, 3), date(2024, time.March, 6))
	assert.Equal(t, 1, n)
}

func TestOverlapNights_NoOverlap(t *testing.T) {
	b := marchBooking()

	// Query window starting on the checkout day shares zero nights.
	n := OverlapNights(b.CheckIn, b.CheckOut, date(2024, time.March, 4), date(2024, time.March, 5))
	assert.Equal(t, 0, n)

	n = OverlapNights(b.CheckIn, b.CheckOut, date(2024, time.February, 1), date(2024, time.March, 1))
	assert.Equal(t, 0, n)
}

func TestOverlapNights_WindowInsideStay(t *testing.T) {
	n := OverlapNights(date(2024, time.January, 1), date(2024, time.January, 31), date(2024, time.January, 10), date(2024, time.January, 12))
	assert.Equal(t, 2, n)
}

func TestOverlapNights_InvertedStayYieldsZero(t *testing.T) {
	// checkOut <= checkIn is invalid upstream; the kernel must not go
	// negative or panic on it.
	n := OverlapNights(date(2024, time.March, 5), date(2024, time.March, 1), date(2024, time.January, 1), date(2025, time.January, 1))
	assert.Equal(t, 0, n)
}

func TestOverlapNights_NeverExceedsStayOrWindow(t *testing.T) {
	stays := [][2]time.Time{
		{date(2024, time.March, 1), date(2024, time.March, 4)},
		{date(2024, time.February, 27), date(2024, time.March, 2)},
		{date(2024, time.March, 3), date(2024, time.March, 20)},
	}
	from, to := date(2024, time.March, 1), date(2024, time.March, 8)
	window := int(to.Sub(from).Hours() / 24)

	for _, s := range stays {
		n := OverlapNights(s[0], s[1], from, to)
		stay := int(s[1].Sub(s[0]).Hours() / 24)
		assert.GreaterOrEqual(t, n, 0)
		assert.LessOrEqual(t, n, stay)
		assert.LessOrEqual(t, n, window)
	}
}

func TestNightlyRate_PrefersTotalAmount(t *testing.T) {
	rooms := roomsByID(testRooms())
	b := marchBooking()
	b.TotalPaid = amount(90)
	assert.InDelta(t, 100.0, nightlyRate(b, rooms), 1e-9)
}

func TestNightlyRate_FallsBackToTotalPaid(t *testing.T) {
	rooms := roomsByID(testRooms())
	b := marchBooking()
	b.TotalAmount = nil
	b.TotalPaid = amount(90)
	assert.InDelta(t, 30.0, nightlyRate(b, rooms), 1e-9)
}

func TestNightlyRate_FallsBackToRoomRate(t *testing.T) {
	rooms := roomsByID(testRooms())
	b := marchBooking()
	b.TotalAmount = nil
	assert.InDelta(t, 80.0, nightlyRate(b, rooms), 1e-9)
}

func TestNightlyRate_ZeroNightStayFlooredToOne(t *testing.T) {
	rooms := roomsByID(testRooms())
	b := marchBooking()
	b.CheckOut = b.CheckIn
	b.TotalAmount = amount(120)
	assert.InDelta(t, 120.0, nightlyRate(b, rooms), 1e-9)
}
