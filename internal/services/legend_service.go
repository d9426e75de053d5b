package services

import (
	"sort"

	"github.com/mfong/awardcal/internal/models"
)

// BuildLegend assigns palette indices to the fare products observed in the
// doubly-filtered award set (pipeline + airline/flight selection).
//
// Color assignment is a pure function of the sorted engine order, each
// engine's fixed fare-table order and the set of observed base codes -- never
// of the arrival order of raw rows -- so re-running on an unchanged observed
// set reproduces identical indices. The waitlisted variant of a product
// shares its color index and renders with the secondary waitlist palette.
func BuildLegend(catalog *models.Catalog, cfg FilterConfig, awards []models.AwardResult) *models.Legend {
	observed := make(map[models.EngineID]map[string]bool)
	for _, row := range awards {
		codes := observed[row.Engine]
		if codes == nil {
			codes = make(map[string]bool)
			observed[row.Engine] = codes
		}
		for _, tok := range models.SplitFareList(row.Fares) {
			codes[tok.Code] = true
		}
	}

	type engineRef struct {
		id  models.EngineID
		ref *models.Engine
	}
	engines := make([]engineRef, 0, len(observed))
	for id := range observed {
		ref, ok := catalog.Engine(id)
		if !ok {
			// No reference entry for the engine: skip its awards silently.
			continue
		}
		engines = append(engines, engineRef{id: id, ref: ref})
	}
	sort.Slice(engines, func(i, j int) bool {
		return engines[i].ref.Name < engines[j].ref.Name
	})

	legend := &models.Legend{}
	colorIndex := 0
	for _, e := range engines {
		entry := models.LegendEntry{EngineID: e.id, Name: e.ref.Name}
		for _, fare := range e.ref.Fares {
			if !observed[e.id][fare.Code] {
				continue
			}
			entry.Fares = append(entry.Fares, models.LegendFare{
				Code:       fare.Code,
				Name:       fare.Name,
				Status:     string(models.StatusAvailable),
				ColorIndex: colorIndex,
			})
			if cfg.ShowWaitlisted {
				entry.Fares = append(entry.Fares, models.LegendFare{
					Code:       fare.Code,
					Name:       fare.Name,
					Status:     string(models.StatusWaitlisted),
					ColorIndex: colorIndex,
					Waitlisted: true,
				})
			}
			colorIndex++
		}
		if len(entry.Fares) > 0 {
			legend.Entries = append(legend.Entries, entry)
		}
	}

	return legend
}
