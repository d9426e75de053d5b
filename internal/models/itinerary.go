package models

// FareCell is one cell of an itinerary's fare-availability matrix.
// Quantity 0 means the fare column is not available on this itinerary.
// Mileage is nil when matching awards disagree on the price -- the table
// renders a blank rather than guessing.
type FareCell struct {
	Quantity int  `json:"quantity"`
	Mileage  *int `json:"mileage,omitempty"`
	Mixed    bool `json:"mixed,omitempty"`
}

// ItinerarySegment is a flight leg annotated with the mixed-cabin label set
// computed across the itinerary's member awards: the cabins reported below
// the best cabin seen at this position, deduplicated and in cabin order.
type ItinerarySegment struct {
	Segment
	BestCabin   CabinCode   `json:"best_cabin"`
	MixedCabins []CabinCode `json:"mixed_cabins,omitempty"`
}

// Itinerary is a group of awards for one calendar day sharing an identical
// ordered flight-number sequence, with a per-fare-column availability matrix.
type Itinerary struct {
	Key      string              `json:"key"` // joined flight-number sequence
	Engine   EngineID            `json:"engine"`
	Segments []ItinerarySegment  `json:"segments"`
	Duration int                 `json:"duration"` // minutes
	Fares    map[string]FareCell `json:"fares"`    // fare token -> cell, columns ordered by the legend
}
