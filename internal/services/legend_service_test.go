package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfong/awardcal/internal/models"
)

func TestBuildLegendOrderingAndColors(t *testing.T) {
	catalog := testCatalog()
	awards := []models.AwardResult{
		// Arrival order deliberately scrambled relative to fare-table order.
		award("KF", "SQ", "SQ1", day(2026, 9, 10), "Y", "Y+", 2, 35000),
		award("AM", "CX", "CX100", day(2026, 9, 10), "Y", "Y+ J+", 4, 30000),
		award("AM", "CX", "CX102", day(2026, 9, 11), "F", "F+", 1, 110000),
	}

	cfg := DefaultFilterConfig()
	legend := BuildLegend(catalog, cfg, awards)

	// Engines sorted by display name: Asia Miles before KrisFlyer.
	require.Len(t, legend.Entries, 2)
	assert.Equal(t, models.EngineID("AM"), legend.Entries[0].EngineID)
	assert.Equal(t, models.EngineID("KF"), legend.Entries[1].EngineID)

	// AM fares follow the published tier order (F, J, Y observed), each with
	// an available and a waitlisted variant sharing one color index.
	am := legend.Entries[0].Fares
	require.Len(t, am, 6)
	assert.Equal(t, "F", am[0].Code)
	assert.Equal(t, "+", am[0].Status)
	assert.Equal(t, 0, am[0].ColorIndex)
	assert.Equal(t, "F", am[1].Code)
	assert.Equal(t, "@", am[1].Status)
	assert.Equal(t, 0, am[1].ColorIndex)
	assert.True(t, am[1].Waitlisted)
	assert.Equal(t, "J", am[2].Code)
	assert.Equal(t, 1, am[2].ColorIndex)
	assert.Equal(t, "Y", am[4].Code)
	assert.Equal(t, 2, am[4].ColorIndex)

	// Color indices keep increasing across engines.
	kf := legend.Entries[1].Fares
	require.Len(t, kf, 2)
	assert.Equal(t, "Y", kf[0].Code)
	assert.Equal(t, 3, kf[0].ColorIndex)
}

func TestBuildLegendStableAcrossRowOrder(t *testing.T) {
	catalog := testCatalog()
	rows := []models.AwardResult{
		award("AM", "CX", "CX100", day(2026, 9, 10), "Y", "Y+ J+", 4, 30000),
		award("KF", "SQ", "SQ1", day(2026, 9, 10), "J", "J+", 2, 85000),
		award("AM", "CX", "CX102", day(2026, 9, 11), "F", "F+", 1, 110000),
	}
	reversed := []models.AwardResult{rows[2], rows[1], rows[0]}

	cfg := DefaultFilterConfig()
	a := BuildLegend(catalog, cfg, rows)
	b := BuildLegend(catalog, cfg, reversed)

	assert.Equal(t, a, b, "legend must not depend on row arrival order")
}

func TestBuildLegendWithoutWaitlist(t *testing.T) {
	catalog := testCatalog()
	awards := []models.AwardResult{
		award("AM", "CX", "CX100", day(2026, 9, 10), "J", "J+", 4, 60000),
	}

	cfg := DefaultFilterConfig()
	cfg.ShowWaitlisted = false
	legend := BuildLegend(catalog, cfg, awards)

	require.Len(t, legend.Entries, 1)
	require.Len(t, legend.Entries[0].Fares, 1)
	assert.False(t, legend.Entries[0].Fares[0].Waitlisted)
}

func TestBuildLegendSkipsUnknownEngine(t *testing.T) {
	catalog := testCatalog()
	awards := []models.AwardResult{
		award("XX", "CX", "CX100", day(2026, 9, 10), "J", "J+", 4, 60000),
		award("AM", "CX", "CX102", day(2026, 9, 11), "Y", "Y+", 2, 30000),
	}

	legend := BuildLegend(catalog, DefaultFilterConfig(), awards)

	// No reference entry for engine "XX": silently excluded.
	require.Len(t, legend.Entries, 1)
	assert.Equal(t, models.EngineID("AM"), legend.Entries[0].EngineID)
}

func TestLegendEngineFares(t *testing.T) {
	catalog := testCatalog()
	awards := []models.AwardResult{
		award("AM", "CX", "CX100", day(2026, 9, 10), "J", "J+", 4, 60000),
	}
	legend := BuildLegend(catalog, DefaultFilterConfig(), awards)

	assert.NotNil(t, legend.EngineFares("AM"))
	assert.Nil(t, legend.EngineFares("KF"))
}
