package services

import (
	"sort"

	"github.com/mfong/awardcal/internal/models"
)

// GroupItineraries groups one calendar day's awards for a single engine into
// itineraries and computes each itinerary's fare-availability matrix against
// the legend's fare columns.
//
// The legend must already be built: the column order here is read from the
// legend's sorted fare list, which is what keeps the calendar coloring and
// the table columns consistent.
func GroupItineraries(catalog *models.Catalog, columns []models.LegendFare, engine models.EngineID, awards []models.AwardResult) []models.Itinerary {
	// Group by the ordered flight-number sequence, keeping encounter order:
	// the later duration sort is stable, so ties preserve this order.
	var keys []string
	groups := make(map[string][]*models.AwardResult)
	for i := range awards {
		row := &awards[i]
		if row.Engine != engine {
			continue
		}
		key := row.FlightKey()
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], row)
	}

	itineraries := make([]models.Itinerary, 0, len(keys))
	for _, key := range keys {
		itineraries = append(itineraries, buildItinerary(catalog, columns, engine, key, groups[key]))
	}

	sort.SliceStable(itineraries, func(i, j int) bool {
		return itineraries[i].Duration < itineraries[j].Duration
	})

	return itineraries
}

// buildItinerary assembles one itinerary from its member awards. All members
// share identical routing and timing by construction, so segments and
// duration come from an arbitrary representative (the first member).
func buildItinerary(catalog *models.Catalog, columns []models.LegendFare, engine models.EngineID, key string, members []*models.AwardResult) models.Itinerary {
	rep := members[0]
	it := models.Itinerary{
		Key:      key,
		Engine:   engine,
		Duration: rep.Duration,
		Fares:    make(map[string]models.FareCell, len(columns)),
	}

	memberMixed := make([]bool, len(members))
	it.Segments = make([]models.ItinerarySegment, len(rep.Segments))
	for i, seg := range rep.Segments {
		it.Segments[i] = models.ItinerarySegment{Segment: seg, BestCabin: seg.Cabin}

		// Best cabin across members at this position.
		best := seg.Cabin
		for _, m := range members {
			if i < len(m.Segments) {
				best = catalog.Cabins.Best(best, m.Segments[i].Cabin)
			}
		}
		it.Segments[i].BestCabin = best

		// Members seated below the best cabin make the segment mixed.
		mixedSet := make(map[models.CabinCode]bool)
		for j, m := range members {
			if i >= len(m.Segments) {
				continue
			}
			cabin := m.Segments[i].Cabin
			if catalog.Cabins.Rank(cabin) > catalog.Cabins.Rank(best) {
				mixedSet[cabin] = true
				memberMixed[j] = true
			}
		}
		if len(mixedSet) > 0 {
			mixed := make([]models.CabinCode, 0, len(mixedSet))
			for c := range mixedSet {
				mixed = append(mixed, c)
			}
			sort.Slice(mixed, func(a, b int) bool {
				return catalog.Cabins.Rank(mixed[a]) < catalog.Cabins.Rank(mixed[b])
			})
			it.Segments[i].MixedCabins = mixed
		}
	}

	for _, col := range columns {
		it.Fares[col.Token().String()] = buildFareCell(col.Token(), members, memberMixed)
	}

	return it
}

// buildFareCell fills one cell of the fare matrix. Quantity takes the maximum
// across matching members -- engines may report different remaining counts
// per fare bucket, and the most optimistic one wins. Mileage is only reported
// when every match agrees; disagreement renders blank rather than a guess.
func buildFareCell(token models.FareToken, members []*models.AwardResult, memberMixed []bool) models.FareCell {
	var cell models.FareCell
	var mileage *int
	consistent := true

	for j, m := range members {
		if !m.HasFareToken(token) {
			continue
		}
		if m.Quantity > cell.Quantity {
			cell.Quantity = m.Quantity
		}
		if memberMixed[j] {
			cell.Mixed = true
		}
		if mileage == nil {
			v := m.Mileage
			mileage = &v
		} else if *mileage != m.Mileage {
			consistent = false
		}
	}

	if consistent {
		cell.Mileage = mileage
	}
	return cell
}
