package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mfong/awardcal/internal/models"
)

var ErrEngineNotFound = errors.New("engine not found")

// ReferenceRepository loads the read-only reference catalogue: engine fare
// tables, airline display names and the cabin order. The catalogue is loaded
// once at startup and shared across all sessions; the pipeline never writes
// it back.
type ReferenceRepository struct {
	pool *pgxpool.Pool
}

// NewReferenceRepository creates a new ReferenceRepository.
func NewReferenceRepository(pool *pgxpool.Pool) *ReferenceRepository {
	return &ReferenceRepository{pool: pool}
}

// LoadCatalog assembles the full catalogue from the dim_ tables.
func (r *ReferenceRepository) LoadCatalog(ctx context.Context) (*models.Catalog, error) {
	engines, err := r.loadEngines(ctx)
	if err != nil {
		return nil, err
	}
	airlines, err := r.loadAirlines(ctx)
	if err != nil {
		return nil, err
	}
	cabins, err := r.loadCabinOrder(ctx)
	if err != nil {
		return nil, err
	}
	return &models.Catalog{Engines: engines, Airlines: airlines, Cabins: cabins}, nil
}

// loadEngines fetches every engine with its published fare table in product
// tier order.
func (r *ReferenceRepository) loadEngines(ctx context.Context) (map[models.EngineID]*models.Engine, error) {
	query := `
		SELECT e.id, e.name, f.code, f.name, f.saver
		FROM dim_engine e
		JOIN dim_fare f ON f.engine_id = e.id
		ORDER BY e.id, f.tier
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query engine fare tables: %w", err)
	}
	defer rows.Close()

	engines := make(map[models.EngineID]*models.Engine)
	for rows.Next() {
		var (
			id       string
			name     string
			fareCode string
			fareName string
			saver    bool
		)
		if err := rows.Scan(&id, &name, &fareCode, &fareName, &saver); err != nil {
			return nil, fmt.Errorf("failed to scan engine fare: %w", err)
		}
		eid := models.EngineID(id)
		e, ok := engines[eid]
		if !ok {
			e = &models.Engine{ID: eid, Name: name}
			engines[eid] = e
		}
		e.Fares = append(e.Fares, models.Fare{Code: fareCode, Name: fareName, Saver: saver})
	}
	return engines, rows.Err()
}

// loadAirlines fetches the airline code to display-name mapping.
func (r *ReferenceRepository) loadAirlines(ctx context.Context) (map[string]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT code, name FROM dim_airline`)
	if err != nil {
		return nil, fmt.Errorf("failed to query airlines: %w", err)
	}
	defer rows.Close()

	airlines := make(map[string]string)
	for rows.Next() {
		var code, name string
		if err := rows.Scan(&code, &name); err != nil {
			return nil, fmt.Errorf("failed to scan airline: %w", err)
		}
		airlines[code] = name
	}
	return airlines, rows.Err()
}

// loadCabinOrder fetches the cabin codes ordered most to least premium.
func (r *ReferenceRepository) loadCabinOrder(ctx context.Context) (models.CabinOrder, error) {
	rows, err := r.pool.Query(ctx, `SELECT code FROM dim_cabin ORDER BY rank`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cabin order: %w", err)
	}
	defer rows.Close()

	var order models.CabinOrder
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan cabin: %w", err)
		}
		order = append(order, models.CabinCode(code))
	}
	return order, rows.Err()
}

// GetEngine fetches a single engine with its fare table.
func (r *ReferenceRepository) GetEngine(ctx context.Context, id models.EngineID) (*models.Engine, error) {
	engines, err := r.loadEngines(ctx)
	if err != nil {
		return nil, err
	}
	e, ok := engines[id]
	if !ok {
		return nil, ErrEngineNotFound
	}
	return e, nil
}
