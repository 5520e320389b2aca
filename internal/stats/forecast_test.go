package stats

import (
	"testing"
	"time"

	"github.com/anurakx/villadesk/internal/domain"
	"github.com/stretchr/testify/assert"
)

func januaryBooking() domain.Booking {
	return domain.Booking{
		ID:       "j1",
		RoomID:   1,
		CheckIn:  date(2024, time.January, 1),
		CheckOut: date(2024, time.January, 5),
		Status:   domain.BookingStatusConfirmed,
	}
}

func availableOn(t *testing.T, forecast []ForecastDay, d time.Time, roomID int64) bool {
	t.Helper()
	for _, fd := range forecast {
		if fd.Date.Equal(d) {
			for _, id := range fd.RoomIDs() {
				if id == roomID {
					return true
				}
			}
			return false
		}
	}
	t.Fatalf("day %s not in forecast", d)
	return false
}

func TestAvailabilityForecast_CheckoutDayIsFree(t *testing.T) {
	now := date(2024, time.January, 1)
	forecast := AvailabilityForecast(testRooms(), []domain.Booking{januaryBooking()}, 0, now)

	assert.Len(t, forecast, ForecastDays)

	// Occupied for the nights of Jan 1-4, free again from checkout day on.
	for d := 1; d <= 4; d++ {
		assert.False(t, availableOn(t, forecast, date(2024, time.January, d), 1))
	}
	assert.True(t, availableOn(t, forecast, date(2024, time.January, 5), 1))

	// The second room was never booked.
	for d := 1; d <= 12; d++ {
		assert.True(t, availableOn(t, forecast, date(2024, time.January, d), 2))
	}
}

func TestAvailabilityForecast_SingleNightStay(t *testing.T) {
	b := januaryBooking()
	b.CheckOut = date(2024, time.January, 2)
	forecast := AvailabilityForecast(testRooms(), []domain.Booking{b}, 0, date(2024, time.January, 1))

	assert.False(t, availableOn(t, forecast, date(2024, time.January, 1), 1))
	assert.True(t, availableOn(t, forecast, date(2024, time.January, 2), 1))
}

func TestAvailabilityForecast_CancelledAndCheckedOutFreeTheRoom(t *testing.T) {
	now := date(2024, time.January, 1)

	cancelled := januaryBooking()
	cancelled.Status = domain.BookingStatusCancelled
	forecast := AvailabilityForecast(testRooms(), []domain.Booking{cancelled}, 0, now)
	assert.True(t, availableOn(t, forecast, date(2024, time.January, 2), 1))

	// An early departure marked Checked Out no longer blocks its dates.
	left := januaryBooking()
	left.Status = domain.BookingStatusCheckedOut
	forecast = AvailabilityForecast(testRooms(), []domain.Booking{left}, 0, now)
	assert.True(t, availableOn(t, forecast, date(2024, time.January, 2), 1))
}

func TestAvailabilityForecast_UnresolvedRoomIgnored(t *testing.T) {
	orphan := januaryBooking()
	orphan.RoomID = domain.UnresolvedRoomID
	forecast := AvailabilityForecast(testRooms(), []domain.Booking{orphan}, 0, date(2024, time.January, 1))

	assert.True(t, availableOn(t, forecast, date(2024, time.January, 2), 1))
	assert.True(t, availableOn(t, forecast, date(2024, time.January, 2), 2))
}

func TestAvailabilityForecast_PagesSlideForward(t *testing.T) {
	now := date(2024, time.January, 1)
	page0 := AvailabilityForecast(testRooms(), nil, 0, now)
	page1 := AvailabilityForecast(testRooms(), nil, 1, now)

	assert.Equal(t, date(2024, time.January, 1), page0[0].Date)
	assert.Equal(t, date(2024, time.January, 13), page1[0].Date)
	assert.Equal(t, page0[len(page0)-1].Date.AddDate(0, 0, 1), page1[0].Date)
}

func TestUpcomingArrivals_WindowAndOrder(t *testing.T) {
	now := date(2024, time.March, 10)

	tomorrow := marchBooking()
	tomorrow.ID = "a1"
	tomorrow.CheckIn = date(2024, time.March, 11)
	tomorrow.CheckOut = date(2024, time.March, 13)

	today := marchBooking()
	today.ID = "a2"
	today.CheckIn = date(2024, time.March, 10)
	today.CheckOut = date(2024, time.March, 12)

	past := marchBooking() // checked in March 1, not an upcoming arrival

	nextMonth := marchBooking()
	nextMonth.ID = "a3"
	nextMonth.CheckIn = date(2024, time.April, 2)
	nextMonth.CheckOut = date(2024, time.April, 4)

	cancelled := marchBooking()
	cancelled.ID = "a4"
	cancelled.CheckIn = date(2024, time.March, 12)
	cancelled.Status = domain.BookingStatusCancelled

	arrivals := UpcomingArrivals([]domain.Booking{tomorrow, today, past, nextMonth, cancelled}, now)

	assert.Len(t, arrivals, 2)
	assert.Equal(t, "a2", arrivals[0].ID)
	assert.Equal(t, "a1", arrivals[1].ID)
}

func TestUpcomingArrivals_BoundaryInclusive(t *testing.T) {
	now := date(2024, time.March, 10)
	edge := marchBooking()
	edge.ID = "edge"
	edge.CheckIn = date(2024, time.March, 17)
	edge.CheckOut = date(2024, time.March, 19)

	arrivals := UpcomingArrivals([]domain.Booking{edge}, now)
	assert.Len(t, arrivals, 1)

	past := marchBooking()
	past.ID = "late"
	past.CheckIn = date(2024, time.March, 18)
	arrivals = UpcomingArrivals([]domain.Booking{past}, now)
	assert.Empty(t, arrivals)
}
