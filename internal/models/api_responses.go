package models

import (
	"encoding/json"
	"strings"
	"time"
)

// FlexibleDate is a custom time type that unmarshals both RFC3339 timestamps
// and bare "YYYY-MM-DD" dates, since search forms send dates without times.
type FlexibleDate struct {
	time.Time
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (f *FlexibleDate) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)

	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		f.Time = t
		return nil
	}

	t, err = time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	f.Time = t
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (f FlexibleDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Time)
}

// SearchRequest is the request body for issuing an award search.
type SearchRequest struct {
	From       string       `json:"from" binding:"required"`
	To         string       `json:"to" binding:"required"`
	Start      FlexibleDate `json:"start" binding:"required"`
	End        FlexibleDate `json:"end" binding:"required"`
	Passengers int          `json:"passengers" binding:"required"`
	Engines    []EngineID   `json:"engines"`
}

// IngestRequest is the request body for pushing raw award rows directly,
// bypassing the search client (used by the scraping boundary).
type IngestRequest struct {
	Results []AwardResult `json:"results" binding:"required"`
}

// IngestResponse reports how many rows were installed and the new raw-set
// version.
type IngestResponse struct {
	Accepted int    `json:"accepted"`
	Version  uint64 `json:"version"`
}

// FiltersRequest is the request body for replacing the session's filter
// configuration.
type FiltersRequest struct {
	ShowWaitlisted bool        `json:"show_waitlisted"`
	ShowNonSaver   bool        `json:"show_non_saver"`
	Cabins         []CabinCode `json:"cabins"`
	MaxStops       int         `json:"max_stops"`
	Passengers     int         `json:"passengers"`
}

// ToggleRequest is the request body for airline/flight inclusion toggles.
type ToggleRequest struct {
	Included *bool `json:"included" binding:"required"`
}

// AirlineOption is one entry in the airline selection list.
type AirlineOption struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Included bool   `json:"included"`
}

// FlightOption is one entry in the flight/aircraft selection list.
type FlightOption struct {
	Flight   string `json:"flight"`
	Aircraft string `json:"aircraft"`
	Included bool   `json:"included"`
}

// SelectionResponse is the derived airline/flight selection state for the
// filter UI.
type SelectionResponse struct {
	Airlines []AirlineOption `json:"airlines"`
	Flights  []FlightOption  `json:"flights"`
}

// DayItinerariesResponse is the expanded table for one calendar day and
// engine: the legend's fare columns plus the grouped itineraries.
type DayItinerariesResponse struct {
	Date        string       `json:"date"`
	Engine      EngineID     `json:"engine"`
	Columns     []LegendFare `json:"columns"`
	Itineraries []Itinerary  `json:"itineraries"`
}

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
