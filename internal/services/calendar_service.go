package services

import (
	"time"

	"github.com/mfong/awardcal/internal/models"
)

// BuildCalendar builds the fixed-shape ring calendar covering every calendar
// month from the reference day through twelve months forward, then maps each
// visible award into the day cell matching its departure date.
//
// Every ring has exactly models.CellsPerMonth slots regardless of month
// length so the radial geometry is uniform: leading Void slots pad out the
// first-of-month weekday offset, day cells follow, and trailing slots stay
// Void. Slots past models.LastDisplayIndex are never rendered but still exist
// as placeholders.
func BuildCalendar(today time.Time, visible []models.AwardResult) *models.Calendar {
	today = midnightUTC(today)
	cal := &models.Calendar{Today: today}

	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := today.AddDate(1, 0, 0)
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		cal.Months = append(cal.Months, buildMonthRing(m.Year(), m.Month(), today))
	}

	for i := range visible {
		placeAward(cal, &visible[i])
	}

	return cal
}

func buildMonthRing(year int, month time.Month, today time.Time) models.MonthRing {
	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	ring := models.MonthRing{
		Year:       year,
		Month:      month,
		StartIndex: int(firstOfMonth.Weekday()),
		Days:       daysInMonth(year, month),
		Cells:      make([]models.CalendarCell, models.CellsPerMonth),
	}

	for i := range ring.Cells {
		cell := &ring.Cells[i]
		cell.Rendered = i <= models.LastDisplayIndex
		day := i - ring.StartIndex + 1
		if day < 1 || day > ring.Days {
			cell.Type = models.CellVoid
			continue
		}
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		cell.Date = date
		cell.Weekend = date.Weekday() == time.Saturday || date.Weekday() == time.Sunday
		if date.Equal(today) {
			cell.Type = models.CellToday
		} else {
			cell.Type = models.CellInactive
		}
	}

	return ring
}

// placeAward appends an award to its day cell and upgrades the cell to
// Active when the award kept at least one fare token. Dates outside the
// indexed horizon cannot be displayed and are silently ignored.
func placeAward(cal *models.Calendar, award *models.AwardResult) {
	cell := cal.Cell(award.Date)
	if cell == nil {
		return
	}
	cell.Awards = append(cell.Awards, *award)
	if len(models.SplitFareList(award.Fares)) > 0 {
		cell.Type = models.CellActive
	}
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
