package stats

import (
	"sort"
	"time"

	"github.com/anurakx/villadesk/internal/domain"
)

// ForecastDays is the number of days on one availability-forecast page.
const ForecastDays = 12

// ArrivalWindowDays bounds the upcoming-arrivals list.
const ArrivalWindowDays = 7

// ForecastDay lists the rooms free on one specific day.
type ForecastDay struct {
	Date           time.Time
	AvailableRooms []domain.Room
}

// RoomIDs projects the free rooms to their ids.
func (f ForecastDay) RoomIDs() []int64 {
	ids := make([]int64, 0, len(f.AvailableRooms))
	for _, r := range f.AvailableRooms {
		ids = append(ids, r.ID)
	}
	return ids
}

// AvailabilityForecast reports, for each of the ForecastDays days starting
// at today + page*ForecastDays, which rooms have no active booking. A room
// is occupied on day D when a non-cancelled, non-checked-out booking for it
// satisfies checkIn <= D < checkOut; the checkout day itself is free, so a
// room vacated on D can take a new arrival that same day.
func AvailabilityForecast(rooms []domain.Room, bookings []domain.Booking, page int, now time.Time) []ForecastDay {
	first := domain.DateOf(now).AddDate(0, 0, page*ForecastDays)

	forecast := make([]ForecastDay, 0, ForecastDays)
	for i := 0; i < ForecastDays; i++ {
		d := first.AddDate(0, 0, i)
		fd := ForecastDay{Date: d, AvailableRooms: make([]domain.Room, 0, len(rooms))}
		for _, room := range rooms {
			if !roomBookedOn(room.ID, bookings, d) {
				fd.AvailableRooms = append(fd.AvailableRooms, room)
			}
		}
		forecast = append(forecast, fd)
	}
	return forecast
}

func roomBookedOn(roomID int64, bookings []domain.Booking, d time.Time) bool {
	for _, b := range bookings {
		if b.RoomID != roomID {
			continue
		}
		if b.Status == domain.BookingStatusCancelled || b.Status == domain.BookingStatusCheckedOut {
			continue
		}
		if OverlapNights(b.CheckIn, b.CheckOut, d, d.AddDate(0, 0, 1)) > 0 {
			return true
		}
	}
	return false
}

// UpcomingArrivals lists bookings checking in within the next
// ArrivalWindowDays days (inclusive of today), soonest first. Cancelled and
// already checked-out bookings are not arrivals.
func UpcomingArrivals(bookings []domain.Booking, now time.Time) []domain.Booking {
	today := domain.DateOf(now)
	limit := today.AddDate(0, 0, ArrivalWindowDays)

	arrivals := make([]domain.Booking, 0)
	for _, b := range bookings {
		if b.Status == domain.BookingStatusCancelled || b.Status == domain.BookingStatusCheckedOut {
			continue
		}
		if b.CheckIn.Before(today) || b.CheckIn.After(limit) {
			continue
		}
		arrivals = append(arrivals, b)
	}
	sort.Slice(arrivals, func(i, j int) bool {
		return arrivals[i].CheckIn.Before(arrivals[j].CheckIn)
	})
	return arrivals
}
