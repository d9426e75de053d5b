package models

// LegendFare is one fare column in the legend: a (code, status) pair with its
// assigned palette index. Available and waitlisted variants of one product
// share a color index and differ only in the Waitlisted flag.
type LegendFare struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Status     string `json:"status"` // "+" or "@"
	ColorIndex int    `json:"color_index"`
	Waitlisted bool   `json:"waitlisted"`
}

// Token returns the fare column's token form ("J+", "Y@").
func (f LegendFare) Token() FareToken {
	return FareToken{Code: f.Code, Status: f.Status[0]}
}

// LegendEntry is the legend block for one engine: its display name plus the
// ordered, color-indexed fare columns observed in the current visible set.
type LegendEntry struct {
	EngineID EngineID     `json:"engine_id"`
	Name     string       `json:"name"`
	Fares    []LegendFare `json:"fares"`
}

// Legend is the full color-assigned fare legend, one entry per engine with at
// least one visible award, ordered by engine display name.
type Legend struct {
	Entries []LegendEntry `json:"entries"`
}

// EngineFares returns the ordered fare columns for one engine, or nil if the
// engine has no visible awards.
func (l *Legend) EngineFares(id EngineID) []LegendFare {
	for _, e := range l.Entries {
		if e.EngineID == id {
			return e.Fares
		}
	}
	return nil
}
