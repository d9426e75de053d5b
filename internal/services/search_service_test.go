package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfong/awardcal/internal/models"
)

func newTestState(rows []models.AwardResult) *SearchState {
	state := NewSearchState(testCatalog())
	state.SetClock(func() time.Time { return day(2026, 8, 28) })
	if rows != nil {
		state.SetResults(rows)
	}
	return state
}

func TestSearchStateMemoizesDerivedValues(t *testing.T) {
	state := newTestState([]models.AwardResult{
		award("AM", "CX", "CX100", day(2026, 9, 10), "J", "J+", 4, 60000),
	})

	// Unchanged inputs: the cached value is reused, not recomputed.
	assert.Same(t, state.Legend(), state.Legend())
	assert.Same(t, state.Calendar(), state.Calendar())
}

func TestSearchStateFilterChangeInvalidates(t *testing.T) {
	state := newTestState([]models.AwardResult{
		award("AM", "CX", "CX100", day(2026, 9, 10), "J", "J+ Y@", 4, 60000),
	})

	before := state.Legend()
	require.Len(t, before.Entries[0].Fares, 4) // J and Y, each with waitlist variant

	cfg := state.Filters()
	cfg.ShowWaitlisted = false
	state.SetFilters(cfg)

	after := state.Legend()
	assert.NotSame(t, before, after)
	require.Len(t, after.Entries, 1)
	assert.Len(t, after.Entries[0].Fares, 1) // J+ only

	// Restoring the old configuration may serve the memoized value again.
	cfg.ShowWaitlisted = true
	state.SetFilters(cfg)
	assert.Equal(t, before, state.Legend())
}

func TestSearchStateNewResultsInvalidateEverything(t *testing.T) {
	state := newTestState([]models.AwardResult{
		award("AM", "CX", "CX100", day(2026, 9, 10), "J", "J+", 4, 60000),
	})
	state.ToggleAirline("CX", false)
	before := state.Calendar()

	v := state.SetResults([]models.AwardResult{
		award("KF", "SQ", "SQ1", day(2026, 9, 12), "J", "J+", 2, 85000),
	})
	assert.Equal(t, uint64(2), v)

	after := state.Calendar()
	assert.NotSame(t, before, after)

	// Selection toggles refer to the old search and are reset.
	sel := state.Selection()
	require.Len(t, sel.Airlines, 1)
	assert.True(t, sel.Airlines[0].Included)
}

func TestSearchStateSelectionFiltersViews(t *testing.T) {
	state := newTestState([]models.AwardResult{
		award("AM", "CX", "CX100", day(2026, 9, 10), "J", "J+", 4, 60000),
		award("KF", "SQ", "SQ1", day(2026, 9, 12), "J", "J+", 2, 85000),
	})

	state.ToggleAirline("SQ", false)

	legend := state.Legend()
	require.Len(t, legend.Entries, 1)
	assert.Equal(t, models.EngineID("AM"), legend.Entries[0].EngineID)

	cell := state.Calendar().Cell(day(2026, 9, 12))
	require.NotNil(t, cell)
	assert.Empty(t, cell.Awards)
	assert.Equal(t, models.CellInactive, cell.Type)
}

func TestSearchStateDayItineraries(t *testing.T) {
	state := newTestState([]models.AwardResult{
		award("AM", "CX", "CX100", day(2026, 9, 10), "J", "J+", 2, 60000),
		award("AM", "CX", "CX100", day(2026, 9, 10), "J", "J+", 4, 60000),
	})

	resp, err := state.DayItineraries(day(2026, 9, 10), "AM")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-10", resp.Date)
	require.Len(t, resp.Itineraries, 1)

	// Fare columns come from the legend, so table and calendar agree.
	assert.Equal(t, state.Legend().EngineFares("AM"), resp.Columns)

	cell := resp.Itineraries[0].Fares["J+"]
	assert.Equal(t, 4, cell.Quantity)
	require.NotNil(t, cell.Mileage)
	assert.Equal(t, 60000, *cell.Mileage)
}

func TestSearchStateDayOutOfHorizon(t *testing.T) {
	state := newTestState(nil)

	_, err := state.DayItineraries(day(2031, 1, 1), "AM")
	assert.ErrorIs(t, err, ErrOutOfHorizon)
}

func TestSessionManagerIsolatesSessions(t *testing.T) {
	mgr := NewSessionManager(testCatalog())

	a := mgr.Get("alice")
	b := mgr.Get("bob")
	assert.NotSame(t, a, b)
	assert.Same(t, a, mgr.Get("alice"))

	a.SetResults([]models.AwardResult{
		award("AM", "CX", "CX100", day(2026, 9, 10), "J", "J+", 4, 60000),
	})
	assert.Equal(t, uint64(1), a.Version())
	assert.Equal(t, uint64(0), b.Version())
}
