package services

import (
	"sort"
	"strings"

	"github.com/mfong/awardcal/internal/models"
)

// SelectionIndex layers airline and flight inclusion toggles on top of the
// filter pipeline. The two maps are independent overrides, not a hierarchy:
// absent means included, and only explicit exclusions change the visible set.
//
// The toggle asymmetry is deliberate and mirrors the search UI: re-including
// a single flight re-includes its parent airline (otherwise the flight could
// never reappear), but excluding a flight never excludes the airline.
type SelectionIndex struct {
	airlineIncluded map[string]bool
	flightIncluded  map[string]bool
}

// NewSelectionIndex starts with everything included.
func NewSelectionIndex() *SelectionIndex {
	return &SelectionIndex{
		airlineIncluded: make(map[string]bool),
		flightIncluded:  make(map[string]bool),
	}
}

// AirlineIncluded reports the toggle state for an airline code.
func (s *SelectionIndex) AirlineIncluded(code string) bool {
	if inc, ok := s.airlineIncluded[code]; ok {
		return inc
	}
	return true
}

// FlightIncluded reports the toggle state for a flight number.
func (s *SelectionIndex) FlightIncluded(flight string) bool {
	if inc, ok := s.flightIncluded[flight]; ok {
		return inc
	}
	return true
}

// SetAirline toggles an airline and bulk-propagates the same state to every
// flight currently associated with it in the visible set.
func (s *SelectionIndex) SetAirline(code string, included bool, visible []models.AwardResult) {
	s.airlineIncluded[code] = included
	for _, row := range visible {
		if row.Airline == code {
			s.flightIncluded[row.Flight] = included
		}
	}
}

// SetFlight toggles one flight. Re-including a flight re-includes its parent
// airline(s) so the flight can actually show up; excluding one does not touch
// the airline.
func (s *SelectionIndex) SetFlight(flight string, included bool, visible []models.AwardResult) {
	s.flightIncluded[flight] = included
	if !included {
		return
	}
	for _, row := range visible {
		if row.Flight == flight {
			s.airlineIncluded[row.Airline] = true
		}
	}
}

// Apply filters the visible set down to rows whose airline and flight are
// both included.
func (s *SelectionIndex) Apply(visible []models.AwardResult) []models.AwardResult {
	selected := make([]models.AwardResult, 0, len(visible))
	for _, row := range visible {
		if s.AirlineIncluded(row.Airline) && s.FlightIncluded(row.Flight) {
			selected = append(selected, row)
		}
	}
	return selected
}

// Key returns a deterministic identity for the selection state, used to key
// the derived-value cache. Only exclusions matter: an explicit "included"
// entry behaves exactly like an absent one.
func (s *SelectionIndex) Key() string {
	var excluded []string
	for code, inc := range s.airlineIncluded {
		if !inc {
			excluded = append(excluded, "a:"+code)
		}
	}
	for flight, inc := range s.flightIncluded {
		if !inc {
			excluded = append(excluded, "f:"+flight)
		}
	}
	sort.Strings(excluded)
	return strings.Join(excluded, "|")
}

// AirlineOptions derives the distinct airlines present in the visible set,
// resolved to display names and sorted by name with a locale-agnostic
// case-sensitive ordinal comparison.
func AirlineOptions(catalog *models.Catalog, visible []models.AwardResult, sel *SelectionIndex) []models.AirlineOption {
	seen := make(map[string]bool)
	var options []models.AirlineOption
	for _, row := range visible {
		if seen[row.Airline] {
			continue
		}
		seen[row.Airline] = true
		options = append(options, models.AirlineOption{
			Code:     row.Airline,
			Name:     catalog.AirlineName(row.Airline),
			Included: sel.AirlineIncluded(row.Airline),
		})
	}
	sort.Slice(options, func(i, j int) bool {
		return options[i].Name < options[j].Name
	})
	return options
}

// FlightOptions derives the distinct (flight, aircraft) pairs in the visible
// set, sorted by flight number then aircraft type (ordinal).
func FlightOptions(visible []models.AwardResult, sel *SelectionIndex) []models.FlightOption {
	type pair struct{ flight, aircraft string }
	seen := make(map[pair]bool)
	var options []models.FlightOption
	for _, row := range visible {
		p := pair{row.Flight, row.Aircraft}
		if seen[p] {
			continue
		}
		seen[p] = true
		options = append(options, models.FlightOption{
			Flight:   row.Flight,
			Aircraft: row.Aircraft,
			Included: sel.FlightIncluded(row.Flight),
		})
	}
	sort.Slice(options, func(i, j int) bool {
		if options[i].Flight != options[j].Flight {
			return options[i].Flight < options[j].Flight
		}
		return options[i].Aircraft < options[j].Aircraft
	})
	return options
}
