package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/mfong/awardcal/internal/middleware"
	"github.com/mfong/awardcal/internal/models"
	"github.com/mfong/awardcal/internal/searchclient"
	"github.com/mfong/awardcal/internal/services"
)

// SearchHandler handles search issuing, raw-result ingest and filter updates.
type SearchHandler struct {
	sessions *services.SessionManager
	client   *searchclient.Client
	catalog  *models.Catalog
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(sessions *services.SessionManager, client *searchclient.Client, catalog *models.Catalog) *SearchHandler {
	return &SearchHandler{
		sessions: sessions,
		client:   client,
		catalog:  catalog,
	}
}

// Search handles POST /searches
// @Summary Issue an award search
// @Description Validate the search input, query the award-search backend for every requested engine, and install the merged rows as the session's raw result set
// @Tags search
// @Accept json
// @Produce json
// @Param request body models.SearchRequest true "Search parameters"
// @Success 200 {object} models.IngestResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /searches [post]
func (h *SearchHandler) Search(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	if err := services.ValidateSearchRequest(&req, time.Now()); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_search",
			Message: err.Error(),
		})
		return
	}

	// No engine list means "search everything we know".
	if len(req.Engines) == 0 {
		for id := range h.catalog.Engines {
			req.Engines = append(req.Engines, id)
		}
	}

	rows, err := h.client.Fetch(c.Request.Context(), &req)
	if err != nil {
		log.Errorf("award search failed: %v", err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "search_failed",
			Message: err.Error(),
		})
		return
	}

	state := h.sessions.Get(middleware.GetSessionID(c))
	version := state.SetResults(rows)

	c.JSON(http.StatusOK, models.IngestResponse{
		Accepted: len(rows),
		Version:  version,
	})
}

// Ingest handles POST /results
// @Summary Ingest raw award rows
// @Description Install a raw award-result list directly, bypassing the search backend (push from a scraping boundary)
// @Tags search
// @Accept json
// @Produce json
// @Param request body models.IngestRequest true "Raw award rows"
// @Success 200 {object} models.IngestResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /results [post]
func (h *SearchHandler) Ingest(c *gin.Context) {
	var req models.IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	state := h.sessions.Get(middleware.GetSessionID(c))
	version := state.SetResults(req.Results)

	c.JSON(http.StatusOK, models.IngestResponse{
		Accepted: len(req.Results),
		Version:  version,
	})
}

// UpdateFilters handles PUT /filters
// @Summary Replace the result-filter configuration
// @Description Replace the session's filter toggles; derived views recompute on next read
// @Tags filters
// @Accept json
// @Produce json
// @Param request body models.FiltersRequest true "Filter configuration"
// @Success 204
// @Failure 400 {object} models.ErrorResponse
// @Router /filters [put]
func (h *SearchHandler) UpdateFilters(c *gin.Context) {
	var req models.FiltersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	cfg := services.FilterConfig{
		ShowWaitlisted: req.ShowWaitlisted,
		ShowNonSaver:   req.ShowNonSaver,
		Cabins:         make(map[models.CabinCode]bool, len(req.Cabins)),
		MaxStops:       req.MaxStops,
		Passengers:     req.Passengers,
	}
	for _, cc := range req.Cabins {
		cfg.Cabins[cc] = true
	}

	state := h.sessions.Get(middleware.GetSessionID(c))
	state.SetFilters(cfg)

	c.Status(http.StatusNoContent)
}
