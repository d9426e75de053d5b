package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfong/awardcal/internal/models"
)

// testCatalog builds the shared reference fixture: two engines with
// tier-ordered fare tables, airline names and the cabin order.
func testCatalog() *models.Catalog {
	return &models.Catalog{
		Engines: map[models.EngineID]*models.Engine{
			"AM": {
				ID:   "AM",
				Name: "Asia Miles",
				Fares: []models.Fare{
					{Code: "F", Name: "First Saver", Saver: true},
					{Code: "J", Name: "Business Saver", Saver: true},
					{Code: "JT", Name: "Business Tailored", Saver: false},
					{Code: "W", Name: "Premium Saver", Saver: true},
					{Code: "Y", Name: "Economy Saver", Saver: true},
					{Code: "YT", Name: "Economy Tailored", Saver: false},
				},
			},
			"KF": {
				ID:   "KF",
				Name: "KrisFlyer",
				Fares: []models.Fare{
					{Code: "J", Name: "Business Saver", Saver: true},
					{Code: "Y", Name: "Economy Saver", Saver: true},
				},
			},
		},
		Airlines: map[string]string{
			"CX": "Cathay Pacific",
			"SQ": "Singapore Airlines",
		},
		Cabins: models.CabinOrder{"F", "J", "W", "Y"},
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// award builds a single-segment test row.
func award(engine models.EngineID, airline, flight string, date time.Time, cabin models.CabinCode, fares string, qty, mileage int) models.AwardResult {
	return models.AwardResult{
		Engine:   engine,
		Airline:  airline,
		Flight:   flight,
		Aircraft: "77W",
		Date:     date,
		Cabin:    cabin,
		Fares:    fares,
		Quantity: qty,
		Mileage:  mileage,
		Duration: 300,
		Segments: []models.Segment{
			{Airline: airline, Flight: flight, Aircraft: "77W", Cabin: cabin, FromCity: "HKG", ToCity: "NRT", Duration: 300},
		},
	}
}

func TestApplyFiltersSubsetAndPurity(t *testing.T) {
	catalog := testCatalog()
	raw := []models.AwardResult{
		award("AM", "CX", "CX100", day(2026, 9, 10), "J", "J+ JT+ Y@", 4, 60000),
		award("AM", "CX", "CX102", day(2026, 9, 11), "Y", "Y@", 2, 30000),
	}

	cfg := DefaultFilterConfig()
	visible := ApplyFilters(catalog, cfg, raw)

	// Never invents rows.
	assert.LessOrEqual(t, len(visible), len(raw))
	// Never mutates input rows.
	assert.Equal(t, "J+ JT+ Y@", raw[0].Fares)
	assert.Equal(t, "Y@", raw[1].Fares)

	// Identical inputs produce identical output.
	again := ApplyFilters(catalog, cfg, raw)
	assert.Equal(t, visible, again)
}

func TestApplyFiltersWaitlistToggle(t *testing.T) {
	catalog := testCatalog()
	raw := []models.AwardResult{
		award("AM", "CX", "CX100", day(2026, 9, 10), "J", "J+ Y@", 4, 60000),
		award("AM", "CX", "CX102", day(2026, 9, 11), "Y", "Y@", 2, 30000),
	}

	cfg := DefaultFilterConfig()
	cfg.ShowWaitlisted = false
	visible := ApplyFilters(catalog, cfg, raw)

	// The "@" tokens disappear; the row whose only token was "Y@" vanishes.
	require.Len(t, visible, 1)
	assert.Equal(t, "J+", visible[0].Fares)
}

func TestApplyFiltersNonSaverToggle(t *testing.T) {
	catalog := testCatalog()
	raw := []models.AwardResult{
		award("AM", "CX", "CX100", day(2026, 9, 10), "J", "J+ JT+", 4, 60000),
	}

	cfg := DefaultFilterConfig()
	cfg.ShowNonSaver = false
	visible := ApplyFilters(catalog, cfg, raw)

	require.Len(t, visible, 1)
	assert.Equal(t, "J+", visible[0].Fares)
}

func TestApplyFiltersMonotonicity(t *testing.T) {
	catalog := testCatalog()
	raw := []models.AwardResult{
		award("AM", "CX", "CX100", day(2026, 9, 10), "J", "J+ JT+ Y@", 4, 60000),
		award("AM", "CX", "CX102", day(2026, 9, 11), "Y", "Y@", 2, 30000),
		award("AM", "CX", "CX104", day(2026, 9, 12), "Y", "YT+", 1, 45000),
	}

	strict := DefaultFilterConfig()
	strict.ShowWaitlisted = false
	strict.ShowNonSaver = false

	countTokens := func(rows []models.AwardResult) int {
		n := 0
		for _, r := range rows {
			n += len(models.SplitFareList(r.Fares))
		}
		return n
	}

	base := ApplyFilters(catalog, strict, raw)

	withWaitlist := strict
	withWaitlist.ShowWaitlisted = true
	moreWL := ApplyFilters(catalog, withWaitlist, raw)

	withNonSaver := strict
	withNonSaver.ShowNonSaver = true
	moreNS := ApplyFilters(catalog, withNonSaver, raw)

	// Enabling a toggle only ever adds tokens/rows.
	assert.GreaterOrEqual(t, len(moreWL), len(base))
	assert.GreaterOrEqual(t, countTokens(moreWL), countTokens(base))
	assert.GreaterOrEqual(t, len(moreNS), len(base))
	assert.GreaterOrEqual(t, countTokens(moreNS), countTokens(base))
}

func TestApplyFiltersUnknownFareCodeDropped(t *testing.T) {
	catalog := testCatalog()
	raw := []models.AwardResult{
		award("AM", "CX", "CX100", day(2026, 9, 10), "J", "ZZ+ J+", 4, 60000),
		award("AM", "CX", "CX102", day(2026, 9, 11), "Y", "ZZ+", 2, 30000),
	}

	visible := ApplyFilters(catalog, DefaultFilterConfig(), raw)

	// Unknown base codes vanish silently; a row left with nothing is dropped.
	require.Len(t, visible, 1)
	assert.Equal(t, "J+", visible[0].Fares)
}

func TestApplyFiltersCabinAndStops(t *testing.T) {
	catalog := testCatalog()
	twoLeg := award("AM", "CX", "CX100", day(2026, 9, 10), "J", "J+", 4, 60000)
	twoLeg.Segments = append(twoLeg.Segments, models.Segment{
		Airline: "CX", Flight: "CX530", Aircraft: "333", Cabin: "Y", FromCity: "NRT", ToCity: "TPE", Duration: 200,
	})
	raw := []models.AwardResult{
		twoLeg,
		award("AM", "CX", "CX102", day(2026, 9, 11), "Y", "Y+", 2, 30000),
	}

	// A single out-of-set segment cabin excludes the whole row.
	cfg := DefaultFilterConfig()
	cfg.Cabins = map[models.CabinCode]bool{"J": true}
	visible := ApplyFilters(catalog, cfg, raw)
	assert.Len(t, visible, 0)

	cfg.Cabins = map[models.CabinCode]bool{"J": true, "Y": true}
	visible = ApplyFilters(catalog, cfg, raw)
	assert.Len(t, visible, 2)

	// Non-stop only: the two-leg row goes away.
	cfg = DefaultFilterConfig()
	cfg.MaxStops = 0
	visible = ApplyFilters(catalog, cfg, raw)
	require.Len(t, visible, 1)
	assert.Equal(t, "CX102", visible[0].Flight)
}

func TestApplyFiltersPassengerCount(t *testing.T) {
	catalog := testCatalog()
	raw := []models.AwardResult{
		award("AM", "CX", "CX100", day(2026, 9, 10), "J", "J+", 1, 60000),
		award("AM", "CX", "CX102", day(2026, 9, 11), "Y", "Y+", 4, 30000),
	}

	cfg := DefaultFilterConfig()
	cfg.Passengers = 2
	visible := ApplyFilters(catalog, cfg, raw)

	require.Len(t, visible, 1)
	assert.Equal(t, "CX102", visible[0].Flight)
}

func TestFilterConfigKeyDeterministic(t *testing.T) {
	a := DefaultFilterConfig()
	a.Cabins = map[models.CabinCode]bool{"J": true, "Y": true, "F": true}
	b := DefaultFilterConfig()
	b.Cabins = map[models.CabinCode]bool{"F": true, "Y": true, "J": true}

	if a.Key() != b.Key() {
		t.Errorf("equal configs produced different keys: %q vs %q", a.Key(), b.Key())
	}

	b.ShowWaitlisted = false
	if a.Key() == b.Key() {
		t.Error("different configs produced the same key")
	}
}
