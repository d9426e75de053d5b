package searchclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/mfong/awardcal/internal/models"
)

// Client is an HTTP client for the award-search backend. The backend answers
// one query per engine; Fetch fans the engines out concurrently and merges
// whatever comes back.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new search client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Fetch queries every requested engine and merges the rows, in engine order.
// A failing engine logs a warning and contributes nothing -- the pipeline
// just sees fewer rows, never an error, unless every engine failed.
func (c *Client) Fetch(ctx context.Context, req *models.SearchRequest) ([]models.AwardResult, error) {
	engines := req.Engines
	if len(engines) == 0 {
		return nil, fmt.Errorf("no engines requested")
	}

	perEngine := make([][]models.AwardResult, len(engines))
	var mu sync.Mutex
	var lastErr error

	g, gctx := errgroup.WithContext(ctx)
	for i, engine := range engines {
		g.Go(func() error {
			rows, err := c.fetchEngine(gctx, engine, req)
			if err != nil {
				log.Warnf("engine %s search failed: %v", engine, err)
				mu.Lock()
				lastErr = err
				mu.Unlock()
				return nil
			}
			perEngine[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []models.AwardResult
	for _, rows := range perEngine {
		merged = append(merged, rows...)
	}
	if len(merged) == 0 && lastErr != nil {
		return nil, fmt.Errorf("all engines failed: %w", lastErr)
	}
	return merged, nil
}

// fetchEngine runs one engine's query.
func (c *Client) fetchEngine(ctx context.Context, engine models.EngineID, req *models.SearchRequest) ([]models.AwardResult, error) {
	params := url.Values{}
	params.Set("engine", string(engine))
	params.Set("from", req.From)
	params.Set("to", req.To)
	params.Set("start", req.Start.Format("2006-01-02"))
	params.Set("end", req.End.Format("2006-01-02"))
	params.Set("pax", strconv.Itoa(req.Passengers))
	if c.apiKey != "" {
		params.Set("apikey", c.apiKey)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var sr SearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if sr.Error != "" {
		return nil, fmt.Errorf("backend error: %s", sr.Error)
	}

	return parseRows(engine, sr.Results), nil
}

// parseRows converts wire rows to immutable result rows. Rows with unparsable
// dates are skipped: one malformed row must not sink the response.
func parseRows(engine models.EngineID, rows []AwardRow) []models.AwardResult {
	out := make([]models.AwardResult, 0, len(rows))
	for _, row := range rows {
		date, err := time.Parse("2006-01-02", row.Date)
		if err != nil {
			log.Debugf("skipping row with bad date %q from engine %s", row.Date, engine)
			continue
		}
		out = append(out, models.AwardResult{
			Engine:   engine,
			Airline:  row.Airline,
			Flight:   row.Flight,
			Aircraft: row.Aircraft,
			Date:     date,
			Cabin:    models.CabinCode(row.Cabin),
			Fares:    row.Fares,
			Quantity: row.Quantity,
			Mileage:  row.Mileage,
			Duration: row.Duration,
			Segments: parseSegments(row.Segments),
		})
	}
	return out
}

func parseSegments(rows []SegmentRow) []models.Segment {
	segs := make([]models.Segment, 0, len(rows))
	for _, s := range rows {
		dep, _ := time.Parse(time.RFC3339, s.Departure)
		arr, _ := time.Parse(time.RFC3339, s.Arrival)
		segs = append(segs, models.Segment{
			Airline:   s.Airline,
			Flight:    s.Flight,
			Aircraft:  s.Aircraft,
			Cabin:     models.CabinCode(s.Cabin),
			FromCity:  s.FromCity,
			ToCity:    s.ToCity,
			Departure: dep,
			Arrival:   arr,
			Duration:  s.Duration,
			Stops:     s.Stops,
			LagDays:   s.LagDays,
		})
	}
	return segs
}
