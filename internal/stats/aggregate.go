package stats

import (
	"math"
	"time"

	"github.com/anurakx/villadesk/internal/domain"
)

// Summary is the headline stat bundle shown at the top of the dashboard.
// Occupancy values are integer percents in [0, 100]; revenue values are
// prorated per period and rounded to whole currency units, except
// TotalRevenue which is the unprorated grand total.
type Summary struct {
	TotalRevenue *int64 `json:"totalRevenue,omitempty"`
	RevenueToday *int64 `json:"revenueToday,omitempty"`
	RevenueWeek  *int64 `json:"revenueWeek,omitempty"`
	RevenueMonth *int64 `json:"revenueMonth,omitempty"`
	RevenueYear  *int64 `json:"revenueYear,omitempty"`

	OccupancyToday   int `json:"occupancyToday"`
	OccupancyWeek    int `json:"occupancyWeek"`
	OccupancyMonth   int `json:"occupancyMonth"`
	OccupancyYear    int `json:"occupancyYear"`
	OccupancyAllTime int `json:"occupancyAllTime"`

	CheckInsToday int `json:"checkInsToday"`
	CheckInsWeek  int `json:"checkInsWeek"`
	CheckInsMonth int `json:"checkInsMonth"`
	CheckInsYear  int `json:"checkInsYear"`
	TotalCheckIns int `json:"totalCheckIns"`
}

// Summarize computes the full stat bundle for one snapshot at one reference
// instant. Cancelled bookings contribute to nothing.
func Summarize(rooms []domain.Room, bookings []domain.Booking, now time.Time) Summary {
	byID := roomsByID(rooms)

	today := Today(now)
	week := ThisWeek(now)
	month := ThisMonth(now)
	year := ThisYear(now)

	s := Summary{
		RevenueToday: i64(Revenue(bookings, byID, today)),
		RevenueWeek:  i64(Revenue(bookings, byID, week)),
		RevenueMonth: i64(Revenue(bookings, byID, month)),
		RevenueYear:  i64(Revenue(bookings, byID, year)),

		OccupancyToday: Occupancy(len(rooms), bookings, today),
		OccupancyWeek:  Occupancy(len(rooms), bookings, week),
		OccupancyMonth: Occupancy(len(rooms), bookings, month),
		OccupancyYear:  Occupancy(len(rooms), bookings, year),

		CheckInsToday: CheckIns(bookings, today),
		CheckInsWeek:  CheckIns(bookings, week),
		CheckInsMonth: CheckIns(bookings, month),
		CheckInsYear:  CheckIns(bookings, year),
	}

	if span, ok := AllTime(bookings); ok {
		s.OccupancyAllTime = Occupancy(len(rooms), bookings, span)
	}

	var total float64
	for _, b := range bookings {
		if b.Status == domain.BookingStatusCancelled {
			continue
		}
		total += bookingAmount(b)
		s.TotalCheckIns++
	}
	s.TotalRevenue = i64(int64(math.Round(total)))

	return s
}

// RedactRevenue strips all revenue figures from the summary. Served to
// viewers who have not authenticated; the omitempty tags drop the
// fields from the JSON body entirely.
func (s *Summary) RedactRevenue() {
	s.TotalRevenue = nil
	s.RevenueToday = nil
	s.RevenueWeek = nil
	s.RevenueMonth = nil
	s.RevenueYear = nil
}

func i64(v int64) *int64 {
	return &v
}

// Occupancy is the occupied share of room-nights in the period, as an
// integer percent. Zero rooms means zero occupancy, never a division by
// zero; the value is capped at 100 because a shrunk room inventory can
// otherwise push stale bookings past full capacity.
func Occupancy(roomCount int, bookings []domain.Booking, p Period) int {
	if roomCount == 0 {
		return 0
	}
	occupied := 0
	for _, b := range bookings {
		if b.Status == domain.BookingStatusCancelled {
			continue
		}
		occupied += OverlapNights(b.CheckIn, b.CheckOut, p.Start, p.End)
	}
	pct := int(math.Round(float64(occupied) / float64(roomCount*p.Nights()) * 100))
	if pct > 100 {
		return 100
	}
	return pct
}

// Revenue prorates every non-cancelled booking across the period: nights
// overlapping the window times the booking's nightly rate, summed and
// rounded once. Multi-night stays therefore split cleanly across period
// boundaries instead of landing on the check-in day.
func Revenue(bookings []domain.Booking, rooms map[int64]domain.Room, p Period) int64 {
	var sum float64
	for _, b := range bookings {
		if b.Status == domain.BookingStatusCancelled {
			continue
		}
		nights := OverlapNights(b.CheckIn, b.CheckOut, p.Start, p.End)
		if nights == 0 {
			continue
		}
		sum += float64(nights) * nightlyRate(b, rooms)
	}
	return int64(math.Round(sum))
}

// CheckIns counts non-cancelled bookings whose check-in date falls inside
// the period. A guest checks in once, so this is a membership test on the
// check-in date alone, not an overlap computation.
func CheckIns(bookings []domain.Booking, p Period) int {
	n := 0
	for _, b := range bookings {
		if b.Status == domain.BookingStatusCancelled {
			continue
		}
		if !b.CheckIn.Before(p.Start) && b.CheckIn.Before(p.End) {
			n++
		}
	}
	return n
}
