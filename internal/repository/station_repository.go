package repository

import (
	"context"
	"fmt"
	"time"

	"weather-testdata/pkg/database"
	"weather-testdata/pkg/logging"
	"weather-testdata/pkg/metrics"
)

// StationRepository provides access to the station name catalogue
type StationRepository interface {
	ListStationNames(ctx context.Context) ([]string, error)
	CreateStationsBatch(ctx context.Context, names []string) (int, error)
	HealthCheck(ctx context.Context) error
}

// stationRepository implements StationRepository on PostgreSQL
type stationRepository struct {
	db      *database.PostgresDB
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewStationRepository creates a new station repository
func NewStationRepository(db *database.PostgresDB, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) StationRepository {
	return &stationRepository{
		db:      db,
		logger:  logger,
		metrics: metricsCollector,
	}
}

// ListStationNames returns every catalogued station name ordered by name.
// An empty catalogue is reported as a NotFoundError.
func (r *stationRepository) ListStationNames(ctx context.Context) ([]string, error) {
	query := `
		SELECT station_id
		FROM weather_stations
		ORDER BY station_id
	`

	var names []string
	if err := r.db.SelectContext(ctx, "list_station_names", &names, query); err != nil {
		return nil, fmt.Errorf("failed to list station names: %w", err)
	}

	if len(names) == 0 {
		return nil, &NotFoundError{
			Resource: "weather_stations",
			ID:       "*",
		}
	}

	r.logger.Debug(ctx, "[REPO_LIST_STATIONS] Station names loaded", logging.Fields{
		"count": len(names),
	})

	return names, nil
}

// CreateStationsBatch inserts names in a single transaction, skipping ones
// already present. It returns the number of rows actually inserted.
func (r *stationRepository) CreateStationsBatch(ctx context.Context, names []string) (int, error) {
	if len(names) == 0 {
		return 0, nil
	}

	timer := time.Now()
	inserted := 0
	defer func() {
		r.logger.Debug(ctx, "[REPO_BATCH_INSERT] Station batch insert completed", logging.Fields{
			"count":       len(names),
			"inserted":    inserted,
			"duration_ms": time.Since(timer).Milliseconds(),
		})
	}()

	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO weather_stations (station_id, created_at, updated_at)
		VALUES ($1, $2, $2)
		ON CONFLICT (station_id) DO NOTHING
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, name := range names {
		res, err := stmt.ExecContext(ctx, name, now)
		if err != nil {
			r.metrics.RecordDBError("insert_station_error")
			return 0, fmt.Errorf("failed to insert station %q: %w", name, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return inserted, nil
}

// HealthCheck verifies database connectivity
func (r *stationRepository) HealthCheck(ctx context.Context) error {
	return r.db.HealthCheck(ctx)
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) IsTransient() bool {
	return false
}
