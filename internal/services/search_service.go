package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mfong/awardcal/internal/cache"
	"github.com/mfong/awardcal/internal/models"
)

var ErrOutOfHorizon = errors.New("date outside the indexed calendar horizon")

// SearchState owns one search session's raw result set and every value
// derived from it. Each derived structure is a memoized pure function of its
// declared inputs; the memo key carries the raw-set version plus the filter
// and selection keys, so any input change makes every downstream value
// recompute. Within one recomputation the legend is always finalized before
// itinerary fare matrices are built.
type SearchState struct {
	mu        sync.Mutex
	catalog   *models.Catalog
	raw       []models.AwardResult
	version   uint64
	filters   FilterConfig
	selection *SelectionIndex
	derived   *cache.DerivedCache
	now       func() time.Time
}

// NewSearchState creates an empty session against the shared read-only
// catalogue.
func NewSearchState(catalog *models.Catalog) *SearchState {
	return &SearchState{
		catalog:   catalog,
		filters:   DefaultFilterConfig(),
		selection: NewSelectionIndex(),
		derived:   cache.NewDerivedCache(),
		now:       time.Now,
	}
}

// SetClock overrides the reference clock (tests pin "today").
func (s *SearchState) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// SetResults installs a new raw result set as one atomic input change. All
// derived values are invalidated unconditionally and the selection toggles
// reset, since they refer to airlines/flights of the previous search.
func (s *SearchState) SetResults(rows []models.AwardResult) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.raw = make([]models.AwardResult, len(rows))
	copy(s.raw, rows)
	s.version++
	s.selection = NewSelectionIndex()
	s.derived.Clear()
	return s.version
}

// Version returns the raw-set version counter.
func (s *SearchState) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Filters returns the current filter configuration.
func (s *SearchState) Filters() FilterConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// SetFilters replaces the filter configuration. Stale derived values are left
// in the cache; their keys no longer match, so they are dead weight until the
// next SetResults drops them.
func (s *SearchState) SetFilters(cfg FilterConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = cfg
}

// ToggleAirline sets an airline's inclusion state, propagating it to the
// airline's flights.
func (s *SearchState) ToggleAirline(code string, included bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.SetAirline(code, included, s.visibleLocked())
}

// ToggleFlight sets one flight's inclusion state. Re-including a flight
// re-includes its parent airline; excluding it leaves the airline alone.
func (s *SearchState) ToggleFlight(flight string, included bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.SetFlight(flight, included, s.visibleLocked())
}

// Selection derives the airline and flight option lists for the filter UI.
func (s *SearchState) Selection() models.SelectionResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	visible := s.visibleLocked()
	return models.SelectionResponse{
		Airlines: AirlineOptions(s.catalog, visible, s.selection),
		Flights:  FlightOptions(visible, s.selection),
	}
}

// Legend returns the color-assigned fare legend for the current inputs.
func (s *SearchState) Legend() *models.Legend {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.legendLocked()
}

// Calendar returns the annotated ring-calendar grid for the current inputs.
func (s *SearchState) Calendar() *models.Calendar {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calendarLocked()
}

// DayItineraries expands one calendar day into itinerary groups for an
// engine, with fare columns taken from the already-built legend.
func (s *SearchState) DayItineraries(date time.Time, engine models.EngineID) (models.DayItinerariesResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cal := s.calendarLocked()
	cell := cal.Cell(date)
	if cell == nil {
		return models.DayItinerariesResponse{}, ErrOutOfHorizon
	}

	columns := s.legendLocked().EngineFares(engine)

	key := fmt.Sprintf("%s|day=%s|eng=%s", s.selectionKeyLocked(), date.Format("2006-01-02"), engine)
	its, ok := s.derived.GetItineraries(key)
	if !ok {
		its = GroupItineraries(s.catalog, columns, engine, cell.Awards)
		s.derived.SetItineraries(key, its)
	}

	return models.DayItinerariesResponse{
		Date:        date.Format("2006-01-02"),
		Engine:      engine,
		Columns:     columns,
		Itineraries: its,
	}, nil
}

// Memo keys. visibleKey identifies the pipeline output; selectionKey layers
// the airline/flight toggles on top for the doubly-filtered structures.

func (s *SearchState) visibleKeyLocked() string {
	return fmt.Sprintf("v%d|%s", s.version, s.filters.Key())
}

func (s *SearchState) selectionKeyLocked() string {
	return s.visibleKeyLocked() + "|sel=" + s.selection.Key()
}

func (s *SearchState) visibleLocked() []models.AwardResult {
	key := s.visibleKeyLocked()
	if rows, ok := s.derived.GetVisible(key); ok {
		return rows
	}
	defer TrackTime("ApplyFilters", time.Now())
	rows := ApplyFilters(s.catalog, s.filters, s.raw)
	s.derived.SetVisible(key, rows)
	return rows
}

func (s *SearchState) selectedLocked() []models.AwardResult {
	return s.selection.Apply(s.visibleLocked())
}

func (s *SearchState) legendLocked() *models.Legend {
	key := s.selectionKeyLocked()
	if legend, ok := s.derived.GetLegend(key); ok {
		return legend
	}
	defer TrackTime("BuildLegend", time.Now())
	legend := BuildLegend(s.catalog, s.filters, s.selectedLocked())
	s.derived.SetLegend(key, legend)
	return legend
}

func (s *SearchState) calendarLocked() *models.Calendar {
	today := midnightUTC(s.now())
	key := s.selectionKeyLocked() + "|today=" + today.Format("2006-01-02")
	if cal, ok := s.derived.GetCalendar(key); ok {
		return cal
	}
	defer TrackTime("BuildCalendar", time.Now())
	cal := BuildCalendar(today, s.selectedLocked())
	s.derived.SetCalendar(key, cal)
	return cal
}

// SessionManager hands out one SearchState per session ID on demand. All
// sessions share the read-only reference catalogue.
type SessionManager struct {
	mu       sync.RWMutex
	catalog  *models.Catalog
	sessions map[string]*SearchState
}

// NewSessionManager creates an empty session manager.
func NewSessionManager(catalog *models.Catalog) *SessionManager {
	return &SessionManager{
		catalog:  catalog,
		sessions: make(map[string]*SearchState),
	}
}

// Get returns the session's state, creating it on first use.
func (m *SessionManager) Get(id string) *SearchState {
	m.mu.RLock()
	state, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return state
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if state, ok := m.sessions[id]; ok {
		return state
	}
	state = NewSearchState(m.catalog)
	m.sessions[id] = state
	return state
}
