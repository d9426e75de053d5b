package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mfong/awardcal/internal/models"
)

// UnlimitedStops disables the stop-count filter.
const UnlimitedStops = -1

// FilterConfig holds the user's result-filter toggles. The zero value is not
// useful; construct with DefaultFilterConfig.
type FilterConfig struct {
	ShowWaitlisted bool
	ShowNonSaver   bool
	Cabins         map[models.CabinCode]bool // empty = all cabins
	MaxStops       int                       // UnlimitedStops = no limit
	Passengers     int
}

// DefaultFilterConfig shows everything for one passenger.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		ShowWaitlisted: true,
		ShowNonSaver:   true,
		Cabins:         map[models.CabinCode]bool{},
		MaxStops:       UnlimitedStops,
		Passengers:     1,
	}
}

// Key returns a deterministic string identity for the configuration, used to
// key the derived-value cache. Cabin codes are sorted so two configs with the
// same set always produce the same key.
func (c FilterConfig) Key() string {
	cabins := make([]string, 0, len(c.Cabins))
	for cc, on := range c.Cabins {
		if on {
			cabins = append(cabins, string(cc))
		}
	}
	sort.Strings(cabins)
	return fmt.Sprintf("wl=%t|ns=%t|cab=%s|stops=%d|pax=%d",
		c.ShowWaitlisted, c.ShowNonSaver, strings.Join(cabins, ","), c.MaxStops, c.Passengers)
}

// cabinAllowed reports whether a cabin passes the cabin-class toggle set.
// An empty set means no restriction.
func (c FilterConfig) cabinAllowed(cabin models.CabinCode) bool {
	if len(c.Cabins) == 0 {
		return true
	}
	return c.Cabins[cabin]
}

// ApplyFilters runs the result-filter pipeline over raw award rows and
// returns the visible award set. The function is pure: input rows are never
// mutated, and two calls with identical inputs produce identical output.
//
// Per row: stop-count, cabin-class and passenger-count violations exclude the
// row outright. Otherwise each fare token is retained iff
// (ShowNonSaver || saver-tier) && (ShowWaitlisted || not waitlisted); tokens
// whose base code is absent from the engine's published fare table are
// dropped silently. Rows whose retained fare list is empty are dropped.
func ApplyFilters(catalog *models.Catalog, cfg FilterConfig, rows []models.AwardResult) []models.AwardResult {
	visible := make([]models.AwardResult, 0, len(rows))

	for _, row := range rows {
		if cfg.MaxStops != UnlimitedStops && row.TotalStops() > cfg.MaxStops {
			continue
		}
		if cfg.Passengers > 0 && row.Quantity < cfg.Passengers {
			continue
		}
		if !rowCabinsAllowed(cfg, &row) {
			continue
		}

		retained := retainFares(catalog, cfg, row.Engine, row.Fares)
		if len(retained) == 0 {
			continue
		}

		filtered := row
		filtered.Fares = models.JoinFareList(retained)
		visible = append(visible, filtered)
	}

	return visible
}

// rowCabinsAllowed checks every segment cabin against the configured set; a
// single out-of-set segment excludes the row. Rows without segment detail are
// checked against the row-level cabin.
func rowCabinsAllowed(cfg FilterConfig, row *models.AwardResult) bool {
	if len(row.Segments) == 0 {
		return cfg.cabinAllowed(row.Cabin)
	}
	for _, seg := range row.Segments {
		if !cfg.cabinAllowed(seg.Cabin) {
			return false
		}
	}
	return true
}

// retainFares applies the token-level toggles against one row's fare list.
func retainFares(catalog *models.Catalog, cfg FilterConfig, engine models.EngineID, fares string) []models.FareToken {
	tokens := models.SplitFareList(fares)
	retained := tokens[:0:0]
	for _, tok := range tokens {
		saver, known := catalog.FareSaver(engine, tok.Code)
		if !known {
			// Unknown fare code: a data gap, not an error.
			continue
		}
		if !cfg.ShowNonSaver && !saver {
			continue
		}
		if !cfg.ShowWaitlisted && tok.Waitlisted() {
			continue
		}
		retained = append(retained, tok)
	}
	return retained
}
