package cache

import (
	"sync"

	"github.com/mfong/awardcal/internal/models"
)

// DerivedCache memoizes the derived pipeline values (visible set, legend,
// calendar, itinerary groups) keyed on the identity of their inputs: raw-set
// version, filter-configuration key and selection key. A key mismatch means
// an input changed and the stale value is simply not found; nothing is ever
// patched in place.
type DerivedCache struct {
	mu          sync.RWMutex
	visible     map[string][]models.AwardResult
	legends     map[string]*models.Legend
	calendars   map[string]*models.Calendar
	itineraries map[string][]models.Itinerary
}

// NewDerivedCache creates an empty derived-value cache.
func NewDerivedCache() *DerivedCache {
	c := &DerivedCache{}
	c.reset()
	return c
}

func (c *DerivedCache) reset() {
	c.visible = make(map[string][]models.AwardResult)
	c.legends = make(map[string]*models.Legend)
	c.calendars = make(map[string]*models.Calendar)
	c.itineraries = make(map[string][]models.Itinerary)
}

// GetVisible retrieves a memoized visible award set.
func (c *DerivedCache) GetVisible(key string) ([]models.AwardResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.visible[key]
	return v, ok
}

// SetVisible memoizes a visible award set.
func (c *DerivedCache) SetVisible(key string, rows []models.AwardResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.visible[key] = rows
}

// GetLegend retrieves a memoized legend.
func (c *DerivedCache) GetLegend(key string) (*models.Legend, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	l, ok := c.legends[key]
	return l, ok
}

// SetLegend memoizes a legend.
func (c *DerivedCache) SetLegend(key string, legend *models.Legend) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.legends[key] = legend
}

// GetCalendar retrieves a memoized calendar grid.
func (c *DerivedCache) GetCalendar(key string) (*models.Calendar, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cal, ok := c.calendars[key]
	return cal, ok
}

// SetCalendar memoizes a calendar grid.
func (c *DerivedCache) SetCalendar(key string, cal *models.Calendar) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calendars[key] = cal
}

// GetItineraries retrieves a memoized itinerary grouping.
func (c *DerivedCache) GetItineraries(key string) ([]models.Itinerary, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	its, ok := c.itineraries[key]
	return its, ok
}

// SetItineraries memoizes an itinerary grouping.
func (c *DerivedCache) SetItineraries(key string, its []models.Itinerary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.itineraries[key] = its
}

// Clear drops every memoized value. Called when a new raw result set
// arrives: all downstream derived values are invalidated unconditionally.
func (c *DerivedCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}
