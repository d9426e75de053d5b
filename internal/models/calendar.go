package models

import (
	"time"
)

// CellType classifies a calendar ring slot.
type CellType string

const (
	CellVoid     CellType = "void"     // padding before/after the month's days
	CellInactive CellType = "inactive" // a day with no visible awards
	CellToday    CellType = "today"    // the reference "today" day
	CellActive   CellType = "active"   // a day with at least one visible award
)

// Ring geometry. Every month ring carries the same fixed number of slots so
// the angular width of a day is uniform across months of different lengths.
// Slots past the display cutoff are never drawn but keep the geometry honest.
const (
	TotalSegments    = 48
	CellsPerMonth    = TotalSegments + 1
	LastDisplayIndex = 39
)

// CalendarCell is one slot in a month ring.
type CalendarCell struct {
	Type     CellType      `json:"type"`
	Date     time.Time     `json:"date,omitzero"` // zero for Void cells
	Weekend  bool          `json:"weekend,omitempty"`
	Rendered bool          `json:"rendered"`
	Awards   []AwardResult `json:"awards,omitempty"`
}

// MonthRing is one month of the calendar: a fixed CellsPerMonth-slot ring.
type MonthRing struct {
	Year       int            `json:"year"`
	Month      time.Month     `json:"month"`
	StartIndex int            `json:"start_index"` // weekday offset of the 1st (Sunday = 0)
	Days       int            `json:"days"`
	Cells      []CalendarCell `json:"cells"`
}

// Calendar is the full ring calendar: one ring per month from the reference
// day through twelve months forward.
type Calendar struct {
	Today  time.Time   `json:"today"`
	Months []MonthRing `json:"months"`
}

// Cell locates the day cell for a date, or nil when the date falls outside
// the indexed horizon.
func (c *Calendar) Cell(date time.Time) *CalendarCell {
	for i := range c.Months {
		m := &c.Months[i]
		if m.Year == date.Year() && m.Month == date.Month() {
			idx := m.StartIndex + date.Day() - 1
			if idx < 0 || idx >= len(m.Cells) {
				return nil
			}
			return &m.Cells[idx]
		}
	}
	return nil
}
