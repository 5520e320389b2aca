// Package export renders finance workbooks for download from the
// dashboard reports page.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/anurakx/villadesk/internal/domain"
	"github.com/anurakx/villadesk/internal/stats"
)

const (
	bookingsSheet = "Bookings"
	summarySheet  = "Summary"
)

var bookingHeaders = []string{
	"Booking ID", "Room", "Guest", "Check-In", "Check-Out",
	"Nights", "Source", "Status", "Total Amount", "Total Paid", "Balance",
}

// FinanceWorkbook renders the booking ledger plus a summary sheet into
// an xlsx byte slice.
func FinanceWorkbook(rooms []domain.Room, bookings []domain.Booking, now time.Time) ([]byte, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(bookingsSheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	if err := writeHeaders(f, bookingsSheet, bookingHeaders, headerStyle); err != nil {
		f.Close()
		return nil, err
	}

	byNumber := make(map[int64]string, len(rooms))
	for _, r := range rooms {
		byNumber[r.ID] = r.Number
	}

	row := 1
	for _, b := range bookings {
		if b.Status == domain.BookingStatusCancelled {
			continue
		}
		row++
		values := []interface{}{
			b.ID,
			byNumber[b.RoomID],
			b.GuestName,
			domain.FormatDate(b.CheckIn),
			domain.FormatDate(b.CheckOut),
			b.Nights(),
			string(b.Source),
			string(b.Status),
			deref(b.TotalAmount),
			deref(b.TotalPaid),
			deref(b.PendingBalance),
		}
		for col, v := range values {
			if err := setCell(f, bookingsSheet, col+1, row, v); err != nil {
				f.Close()
				return nil, err
			}
		}
	}

	if err := writeSummary(f, rooms, bookings, now, headerStyle); err != nil {
		f.Close()
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSummary(f *excelize.File, rooms []domain.Room, bookings []domain.Booking, now time.Time, headerStyle int) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	if err := writeHeaders(f, summarySheet, []string{"Metric", "Value"}, headerStyle); err != nil {
		return err
	}

	s := stats.Summarize(rooms, bookings, now)
	rows := []struct {
		label string
		value interface{}
	}{
		{"Generated", domain.FormatDate(now)},
		{"Total revenue", derefInt(s.TotalRevenue)},
		{"Revenue this month", derefInt(s.RevenueMonth)},
		{"Revenue this year", derefInt(s.RevenueYear)},
		{"Occupancy this month (%)", s.OccupancyMonth},
		{"Occupancy this year (%)", s.OccupancyYear},
		{"Check-ins this month", s.CheckInsMonth},
		{"Total check-ins", s.TotalCheckIns},
	}
	for i, r := range rows {
		if err := setCell(f, summarySheet, 1, i+2, r.label); err != nil {
			return err
		}
		if err := setCell(f, summarySheet, 2, i+2, r.value); err != nil {
			return err
		}
	}
	return nil
}

func writeHeaders(f *excelize.File, sheet string, headers []string, style int) error {
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("set header style: %w", err)
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("convert coordinates: %w", err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("set cell %s: %w", cell, err)
	}
	return nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func derefInt(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
