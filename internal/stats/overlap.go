// Package stats is the pure derived-analytics core of the dashboard. Every
// function here consumes an in-memory snapshot of rooms and bookings plus an
// explicit reference time and returns fresh values; nothing reads a clock,
// performs I/O or keeps state between calls, so callers may recompute on
// every snapshot change and memoize freely.
package stats

import (
	"time"

	"github.com/anurakx/villadesk/internal/domain"
)

const day = 24 * time.Hour

// OverlapNights returns the number of whole nights the stay [checkIn,
// checkOut) shares with the query window [from, to). All four instants must
// be midnight-normalized civil dates; the result is then an exact integer.
// Zero overlap is the normal case for most booking/window pairs, not an
// error, and the result is never negative.
func OverlapNights(checkIn, checkOut, from, to time.Time) int {
	start := checkIn
	if from.After(start) {
		start = from
	}
	end := checkOut
	if to.Before(end) {
		end = to
	}
	if !start.Before(end) {
		return 0
	}
	return int(end.Sub(start) / day)
}

// nightlyRate derives the per-night value of a booking: total amount if
// recorded, else total paid, else the room's list rate. Nights are floored
// at 1 so a malformed zero-night stay cannot divide by zero.
func nightlyRate(b domain.Booking, rooms map[int64]domain.Room) float64 {
	nights := b.Nights()
	if nights < 1 {
		nights = 1
	}
	switch {
	case b.TotalAmount != nil:
		return *b.TotalAmount / float64(nights)
	case b.TotalPaid != nil:
		return *b.TotalPaid / float64(nights)
	}
	if room, ok := rooms[b.RoomID]; ok {
		return room.PricePerNight
	}
	return 0
}

// bookingAmount is the unprorated value of a booking for grand totals.
func bookingAmount(b domain.Booking) float64 {
	switch {
	case b.TotalAmount != nil:
		return *b.TotalAmount
	case b.TotalPaid != nil:
		return *b.TotalPaid
	}
	return 0
}

func roomsByID(rooms []domain.Room) map[int64]domain.Room {
	m := make(map[int64]domain.Room, len(rooms))
	for _, r := range rooms {
		m[r.ID] = r
	}
	return m
}
