package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mfong/awardcal/internal/middleware"
	"github.com/mfong/awardcal/internal/models"
	"github.com/mfong/awardcal/internal/services"
)

// CalendarHandler serves the derived read-only snapshots: legend, calendar
// grid, itinerary tables and the airline/flight selection lists.
type CalendarHandler struct {
	sessions *services.SessionManager
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(sessions *services.SessionManager) *CalendarHandler {
	return &CalendarHandler{sessions: sessions}
}

func (h *CalendarHandler) state(c *gin.Context) *services.SearchState {
	return h.sessions.Get(middleware.GetSessionID(c))
}

// Legend handles GET /legend
// @Summary Get the fare legend
// @Description The ordered, color-indexed catalogue of fare products visible under the current filters and selection
// @Tags calendar
// @Produce json
// @Success 200 {object} models.Legend
// @Router /legend [get]
func (h *CalendarHandler) Legend(c *gin.Context) {
	c.JSON(http.StatusOK, h.state(c).Legend())
}

// Calendar handles GET /calendar
// @Summary Get the ring-calendar grid
// @Description One fixed-shape ring per month from today through twelve months forward, with award presence per day cell
// @Tags calendar
// @Produce json
// @Success 200 {object} models.Calendar
// @Router /calendar [get]
func (h *CalendarHandler) Calendar(c *gin.Context) {
	c.JSON(http.StatusOK, h.state(c).Calendar())
}

// DayItineraries handles GET /calendar/:date/itineraries
// @Summary Expand one day into itinerary tables
// @Description Group one calendar day's awards into itineraries for an engine, with mixed-cabin flags and the per-fare-column availability matrix
// @Tags calendar
// @Produce json
// @Param date path string true "Day (YYYY-MM-DD)"
// @Param engine query string true "Engine ID"
// @Success 200 {object} models.DayItinerariesResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /calendar/{date}/itineraries [get]
func (h *CalendarHandler) DayItineraries(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "date must be YYYY-MM-DD",
		})
		return
	}
	engine := models.EngineID(c.Query("engine"))
	if engine == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "engine query parameter is required",
		})
		return
	}

	resp, err := h.state(c).DayItineraries(date, engine)
	if err != nil {
		if errors.Is(err, services.ErrOutOfHorizon) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "not_found",
				Message: "date outside the calendar horizon",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Selection handles GET /selection
// @Summary Get the airline/flight selection lists
// @Description The distinct airlines and (flight, aircraft) pairs present in the visible set, with their inclusion state
// @Tags selection
// @Produce json
// @Success 200 {object} models.SelectionResponse
// @Router /selection [get]
func (h *CalendarHandler) Selection(c *gin.Context) {
	c.JSON(http.StatusOK, h.state(c).Selection())
}

// ToggleAirline handles PUT /selection/airlines/:code
// @Summary Toggle an airline
// @Description Include or exclude an airline; the state propagates to every flight currently under it
// @Tags selection
// @Accept json
// @Produce json
// @Param code path string true "Airline code"
// @Param request body models.ToggleRequest true "Inclusion state"
// @Success 200 {object} models.SelectionResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /selection/airlines/{code} [put]
func (h *CalendarHandler) ToggleAirline(c *gin.Context) {
	var req models.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	state := h.state(c)
	state.ToggleAirline(c.Param("code"), *req.Included)
	c.JSON(http.StatusOK, state.Selection())
}

// ToggleFlight handles PUT /selection/flights/:number
// @Summary Toggle a flight
// @Description Include or exclude one flight; re-including a flight re-includes its airline, excluding it leaves the airline untouched
// @Tags selection
// @Accept json
// @Produce json
// @Param number path string true "Flight number"
// @Param request body models.ToggleRequest true "Inclusion state"
// @Success 200 {object} models.SelectionResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /selection/flights/{number} [put]
func (h *CalendarHandler) ToggleFlight(c *gin.Context) {
	var req models.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	state := h.state(c)
	state.ToggleFlight(c.Param("number"), *req.Included)
	c.JSON(http.StatusOK, state.Selection())
}
