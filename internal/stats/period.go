package stats

import (
	"time"

	"github.com/anurakx/villadesk/internal/domain"
)

// Period is a half-open [Start, End) date window at day granularity.
type Period struct {
	Start time.Time
	End   time.Time
}

// Nights is the window width in whole nights, floored at 1 so occupancy
// denominators stay positive.
func (p Period) Nights() int {
	n := int(p.End.Sub(p.Start) / day)
	if n < 1 {
		return 1
	}
	return n
}

// Today is [midnight, next midnight) of the reference day.
func Today(now time.Time) Period {
	start := domain.DateOf(now)
	return Period{Start: start, End: start.AddDate(0, 0, 1)}
}

// ThisWeek is the Sunday-based calendar week containing the reference day.
// The headline stat periods all use Sunday starts; only the weekly chart
// buckets run Monday to Sunday.
func ThisWeek(now time.Time) Period {
	d := domain.DateOf(now)
	start := d.AddDate(0, 0, -int(d.Weekday()))
	return Period{Start: start, End: start.AddDate(0, 0, 7)}
}

// ThisMonth is the full calendar month containing the reference day.
func ThisMonth(now time.Time) Period {
	y, m, _ := now.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	return Period{Start: start, End: start.AddDate(0, 1, 0)}
}

// ThisYear is the full calendar year containing the reference day.
func ThisYear(now time.Time) Period {
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	return Period{Start: start, End: start.AddDate(1, 0, 0)}
}

// AllTime spans the earliest check-in to the latest check-out across the
// non-cancelled bookings. ok is false when there are none.
func AllTime(bookings []domain.Booking) (Period, bool) {
	var p Period
	found := false
	for _, b := range bookings {
		if b.Status == domain.BookingStatusCancelled {
			continue
		}
		if !found {
			p = Period{Start: b.CheckIn, End: b.CheckOut}
			found = true
			continue
		}
		if b.CheckIn.Before(p.Start) {
			p.Start = b.CheckIn
		}
		if b.CheckOut.After(p.End) {
			p.End = b.CheckOut
		}
	}
	return p, found
}

// mondayOf returns the Monday of the ISO week containing d.
func mondayOf(d time.Time) time.Time {
	d = domain.DateOf(d)
	wd := int(d.Weekday())
	if wd == 0 {
		wd = 7
	}
	return d.AddDate(0, 0, 1-wd)
}
