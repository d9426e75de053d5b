package services

import (
	"fmt"
	"regexp"
	"time"

	"github.com/mfong/awardcal/internal/models"
)

const (
	maxPassengers = 9
	// Searches may start at most twelve months out -- the calendar horizon.
	horizonMonths = 12
)

var cityCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidateSearchRequest is the validity predicate gating whether a search is
// issued at all. It reports the first problem found; it never corrects the
// input.
func ValidateSearchRequest(req *models.SearchRequest, now time.Time) error {
	if !cityCodeRe.MatchString(req.From) {
		return fmt.Errorf("invalid origin city code %q", req.From)
	}
	if !cityCodeRe.MatchString(req.To) {
		return fmt.Errorf("invalid destination city code %q", req.To)
	}
	if req.Passengers < 1 || req.Passengers > maxPassengers {
		return fmt.Errorf("passenger count %d out of range 1-%d", req.Passengers, maxPassengers)
	}

	start := midnightUTC(req.Start.Time)
	end := midnightUTC(req.End.Time)
	today := midnightUTC(now)
	if end.Before(start) {
		return fmt.Errorf("end date %s before start date %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	if start.Before(today) {
		return fmt.Errorf("start date %s is in the past", start.Format("2006-01-02"))
	}
	if end.After(today.AddDate(0, horizonMonths, 0)) {
		return fmt.Errorf("end date %s beyond the %d-month booking horizon",
			end.Format("2006-01-02"), horizonMonths)
	}

	return nil
}
