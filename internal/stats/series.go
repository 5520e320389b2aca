package stats

import (
	"fmt"
	"strconv"
	"time"

	"github.com/anurakx/villadesk/internal/domain"
)

type Metric string

const (
	MetricRevenue   Metric = "revenue"
	MetricOccupancy Metric = "occupancy"
)

type Range string

const (
	RangeDaily   Range = "daily"
	RangeWeekly  Range = "weekly"
	RangeMonthly Range = "monthly"
	RangeYearly  Range = "yearly"
)

// Buckets per page for each range.
const (
	DailyBuckets   = 7
	WeeklyBuckets  = 8
	MonthlyBuckets = 6
	YearlyBuckets  = 4
)

// Point is one chart bucket. Start is the bucket's first day; buckets are
// always emitted oldest first so trend lines read left to right.
type Point struct {
	Label string    `json:"label"`
	Value int64     `json:"value"`
	Start time.Time `json:"date"`
}

// Series produces one page of chart data. Offset 0 is the window ending at
// the reference day; offset N slides exactly N full windows into the past,
// so consecutive pages are adjacent with no gap or overlap.
func Series(metric Metric, rng Range, offset int, rooms []domain.Room, bookings []domain.Booking, now time.Time) []Point {
	switch rng {
	case RangeDaily:
		ref := domain.DateOf(now).AddDate(0, 0, -offset*DailyBuckets)
		return dailySeries(metric, rooms, bookings, ref)
	case RangeWeekly:
		ref := domain.DateOf(now).AddDate(0, 0, -offset*7*WeeklyBuckets)
		return weeklySeries(metric, rooms, bookings, ref)
	case RangeMonthly:
		y, m, _ := now.Date()
		ref := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -offset*MonthlyBuckets, 0)
		return monthlySeries(metric, rooms, bookings, ref)
	case RangeYearly:
		// Yearly pages end one year ahead of the reference year so the
		// chart shows the booked-out year alongside history.
		endYear := now.Year() + 1 - offset*YearlyBuckets
		return yearlySeries(metric, rooms, bookings, endYear)
	}
	return nil
}

func bucketValue(metric Metric, rooms []domain.Room, byID map[int64]domain.Room, bookings []domain.Booking, p Period) int64 {
	if metric == MetricOccupancy {
		return int64(Occupancy(len(rooms), bookings, p))
	}
	return Revenue(bookings, byID, p)
}

func dailySeries(metric Metric, rooms []domain.Room, bookings []domain.Booking, ref time.Time) []Point {
	byID := roomsByID(rooms)
	points := make([]Point, 0, DailyBuckets)
	for i := DailyBuckets - 1; i >= 0; i-- {
		start := ref.AddDate(0, 0, -i)
		p := Period{Start: start, End: start.AddDate(0, 0, 1)}
		points = append(points, Point{
			Label: start.Format("Mon 2"),
			Value: bucketValue(metric, rooms, byID, bookings, p),
			Start: start,
		})
	}
	return points
}

func weeklySeries(metric Metric, rooms []domain.Room, bookings []domain.Booking, ref time.Time) []Point {
	byID := roomsByID(rooms)
	monday := mondayOf(ref)
	points := make([]Point, 0, WeeklyBuckets)
	for i := WeeklyBuckets - 1; i >= 0; i-- {
		start := monday.AddDate(0, 0, -7*i)
		p := Period{Start: start, End: start.AddDate(0, 0, 7)}
		points = append(points, Point{
			Label: weekLabel(start),
			Value: bucketValue(metric, rooms, byID, bookings, p),
			Start: start,
		})
	}
	return points
}

// weekLabel renders "Jan 2-8", or "Jan 30-Feb 5" when the week crosses a
// month boundary. The displayed end day is the week's Sunday.
func weekLabel(start time.Time) string {
	end := start.AddDate(0, 0, 6)
	if start.Month() == end.Month() {
		return fmt.Sprintf("%s %d-%d", start.Format("Jan"), start.Day(), end.Day())
	}
	return fmt.Sprintf("%s %d-%s %d", start.Format("Jan"), start.Day(), end.Format("Jan"), end.Day())
}

func monthlySeries(metric Metric, rooms []domain.Room, bookings []domain.Booking, ref time.Time) []Point {
	byID := roomsByID(rooms)
	points := make([]Point, 0, MonthlyBuckets)
	for i := MonthlyBuckets - 1; i >= 0; i-- {
		start := ref.AddDate(0, -i, 0)
		p := Period{Start: start, End: start.AddDate(0, 1, 0)}
		points = append(points, Point{
			Label: start.Format("Jan '06"),
			Value: bucketValue(metric, rooms, byID, bookings, p),
			Start: start,
		})
	}
	return points
}

func yearlySeries(metric Metric, rooms []domain.Room, bookings []domain.Booking, endYear int) []Point {
	byID := roomsByID(rooms)
	points := make([]Point, 0, YearlyBuckets)
	for year := endYear - YearlyBuckets + 1; year <= endYear; year++ {
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		p := Period{Start: start, End: start.AddDate(1, 0, 0)}
		points = append(points, Point{
			Label: strconv.Itoa(year),
			Value: bucketValue(metric, rooms, byID, bookings, p),
			Start: start,
		})
	}
	return points
}
