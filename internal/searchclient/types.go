package searchclient

// Wire types for the award-search backend. One response per engine; rows
// carry dates as "YYYY-MM-DD" and timestamps as RFC3339.

// SearchResponse is the backend's per-engine response envelope.
type SearchResponse struct {
	Engine  string     `json:"engine"`
	Results []AwardRow `json:"results"`
	Error   string     `json:"error,omitempty"`
}

// AwardRow is one raw award row as the backend reports it.
type AwardRow struct {
	Airline  string       `json:"airline"`
	Flight   string       `json:"flight"`
	Aircraft string       `json:"aircraft"`
	Date     string       `json:"date"`
	Cabin    string       `json:"cabin"`
	Fares    string       `json:"fares"`
	Quantity int          `json:"quantity"`
	Mileage  int          `json:"mileage"`
	Duration int          `json:"duration"`
	Segments []SegmentRow `json:"segments"`
}

// SegmentRow is one flight leg of an award row.
type SegmentRow struct {
	Airline   string `json:"airline"`
	Flight    string `json:"flight"`
	Aircraft  string `json:"aircraft"`
	Cabin     string `json:"cabin"`
	FromCity  string `json:"from_city"`
	ToCity    string `json:"to_city"`
	Departure string `json:"departure"`
	Arrival   string `json:"arrival"`
	Duration  int    `json:"duration"`
	Stops     int    `json:"stops"`
	LagDays   int    `json:"lag_days"`
}
