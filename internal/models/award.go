package models

import (
	"time"
)

// EngineID identifies the booking/search backend that produced an award
// result. It is distinct from the operating airline: one engine may return
// awards operated by several carriers.
type EngineID string

// CabinCode is a single-letter cabin class code (e.g. "F", "J", "W", "Y").
type CabinCode string

// Segment is one flight leg within an award itinerary.
type Segment struct {
	Airline   string    `json:"airline"`
	Flight    string    `json:"flight"`
	Aircraft  string    `json:"aircraft"`
	Cabin     CabinCode `json:"cabin"`
	FromCity  string    `json:"from_city"`
	ToCity    string    `json:"to_city"`
	Departure time.Time `json:"departure"`
	Arrival   time.Time `json:"arrival"`
	Duration  int       `json:"duration"` // minutes
	Stops     int       `json:"stops"`
	LagDays   int       `json:"lag_days"` // arrival date offset relative to departure date
}

// AwardResult is one raw award-search result row as received from the search
// boundary. Rows are immutable once received; every derived structure copies
// what it needs rather than aliasing into them.
type AwardResult struct {
	Engine   EngineID  `json:"engine"`
	Airline  string    `json:"airline"`
	Flight   string    `json:"flight"`
	Aircraft string    `json:"aircraft"`
	Date     time.Time `json:"date"` // departure date, midnight UTC
	Cabin    CabinCode `json:"cabin"`
	Fares    string    `json:"fares"` // space-separated fare tokens, e.g. "J+ Y@"
	Quantity int       `json:"quantity"`
	Mileage  int       `json:"mileage"`
	Duration int       `json:"duration"` // total minutes
	Segments []Segment `json:"segments"`
}

// FlightKey returns the ordered flight-number sequence of the award's
// segments joined into a single identity string. Two awards with the same key
// belong to the same itinerary regardless of cabin or fares.
func (a *AwardResult) FlightKey() string {
	if len(a.Segments) == 0 {
		return a.Flight
	}
	key := ""
	for i, seg := range a.Segments {
		if i > 0 {
			key += "|"
		}
		key += seg.Flight
	}
	return key
}

// TotalStops returns the total stop count across the award's segments. Rows from
// engines that report no segment detail fall back to zero stops.
func (a *AwardResult) TotalStops() int {
	if len(a.Segments) == 0 {
		return 0
	}
	stops := len(a.Segments) - 1
	for _, seg := range a.Segments {
		stops += seg.Stops
	}
	return stops
}
