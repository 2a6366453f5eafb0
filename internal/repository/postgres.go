package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/odyssey/internal/models"
	"github.com/jackc/pgx/v5"
)

// Schema creates the tables used by Repository. It is idempotent.
const Schema = `
	CREATE TABLE IF NOT EXISTS route_plans (
		id UUID PRIMARY KEY,
		anchor_id INTEGER NOT NULL,
		total_distance_km DOUBLE PRECISION NOT NULL,
		optimal_cost_km DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);
	CREATE TABLE IF NOT EXISTS route_plan_stops (
		plan_id UUID NOT NULL REFERENCES route_plans(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		stop_id INTEGER NOT NULL,
		address TEXT NOT NULL,
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		geocoding_error TEXT,
		PRIMARY KEY (plan_id, position)
	);
	CREATE TABLE IF NOT EXISTS geocoding_failures (
		address TEXT PRIMARY KEY,
		attempts INTEGER NOT NULL DEFAULT 1,
		last_error TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

const (
	insertPlanQuery = `
		INSERT INTO route_plans (id, anchor_id, total_distance_km, optimal_cost_km, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	insertStopQuery = `
		INSERT INTO route_plan_stops
			(plan_id, position, stop_id, address, latitude, longitude, geocoding_error)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	selectPlanQuery = `
		SELECT anchor_id, total_distance_km, optimal_cost_km, created_at
		FROM route_plans
		WHERE id = $1;
	`
	selectStopsQuery = `
		SELECT stop_id, address, latitude, longitude, geocoding_error
		FROM route_plan_stops
		WHERE plan_id = $1
		ORDER BY position ASC;
	`
	upsertFailureQuery = `
		INSERT INTO geocoding_failures (address, attempts, last_error, updated_at)
		VALUES ($1, 1, $2, now())
		ON CONFLICT (address) DO UPDATE
		SET
			attempts = geocoding_failures.attempts + 1,
			last_error = EXCLUDED.last_error,
			updated_at = now();
	`
)

// Migrate applies Schema.
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	return nil
}

// SaveRoutePlan stores the plan header and its ordered stops in one transaction.
// Unresolved stops are stored with NULL coordinates and their geocoding error.
func (r *Repository) SaveRoutePlan(ctx context.Context, plan models.RoutePlan) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	_, err = tx.Exec(ctx, insertPlanQuery,
		plan.ID, plan.AnchorID, plan.TotalDistanceKm, plan.OptimalCostKm, plan.CreatedAt)
	if err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("failed to insert route plan: %w", err)
	}

	for pos, stop := range plan.Stops {
		lat, lng, reason := stopColumns(stop)
		_, err = tx.Exec(ctx, insertStopQuery, plan.ID, pos, stop.ID, stop.Address, lat, lng, reason)
		if err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("failed to insert route stop %d: %w", pos, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit route plan: %w", err)
	}

	r.log.DebugContext(ctx, "Route plan saved", "plan", plan.ID, "stops", len(plan.Stops))

	return nil
}

// GetRoutePlan loads a plan by id, returning ErrNotFound when it does not exist.
func (r *Repository) GetRoutePlan(ctx context.Context, id string) (*models.RoutePlan, error) {
	plan := models.RoutePlan{ID: id}

	err := r.db.QueryRow(ctx, selectPlanQuery, id).
		Scan(&plan.AnchorID, &plan.TotalDistanceKm, &plan.OptimalCostKm, &plan.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query route plan: %w", err)
	}

	rows, err := r.db.Query(ctx, selectStopsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query route stops: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			stop     models.Stop
			lat, lng *float64
			reason   *string
		)
		if errScan := rows.Scan(&stop.ID, &stop.Address, &lat, &lng, &reason); errScan != nil {
			return nil, fmt.Errorf("failed to scan route stop: %w", errScan)
		}
		stop.Resolution = resolutionFromColumns(lat, lng, reason)
		plan.Stops = append(plan.Stops, stop)
		if _, ok := stop.Resolution.(models.Unresolved); ok {
			plan.Unresolved = append(plan.Unresolved, stop)
		}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	plan.CreatedAt = plan.CreatedAt.UTC()

	return &plan, nil
}

// RecordGeocodingFailure increments the failure count for address and keeps the latest error.
func (r *Repository) RecordGeocodingFailure(ctx context.Context, address, errMsg string) error {
	if _, err := r.db.Exec(ctx, upsertFailureQuery, address, errMsg); err != nil {
		return fmt.Errorf("failed to update geocoding error and number of attempts: %w", err)
	}

	return nil
}

func stopColumns(stop models.Stop) (*float64, *float64, *string) {
	switch res := stop.Resolution.(type) {
	case models.Resolved:
		lat, lng := res.Point.Latitude, res.Point.Longitude
		return &lat, &lng, nil
	case models.Unresolved:
		reason := res.Reason
		return nil, nil, &reason
	default:
		return nil, nil, nil
	}
}

func resolutionFromColumns(lat, lng *float64, reason *string) models.Resolution {
	if lat != nil && lng != nil {
		return models.Resolved{Point: models.Coordinates{Latitude: *lat, Longitude: *lng}}
	}
	if reason != nil {
		return models.Unresolved{Reason: *reason}
	}

	return models.Unresolved{}
}

