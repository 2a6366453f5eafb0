package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/UnknownOlympus/odyssey/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a route plan does not exist.
var ErrNotFound = errors.New("route plan not found")

// Database is the subset of *pgxpool.Pool used by Repository; pgxmock implements it in tests.
type Database interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Interface is the persistence contract used by the route service and the HTTP API.
type Interface interface {
	SaveRoutePlan(ctx context.Context, plan models.RoutePlan) error
	GetRoutePlan(ctx context.Context, id string) (*models.RoutePlan, error)
	RecordGeocodingFailure(ctx context.Context, address, errMsg string) error
}

// Repository persists route plans and geocoding failures in PostgreSQL.
type Repository struct {
	db  Database
	log *slog.Logger
}

// NewRepository creates a new instance of Repository with the provided Database.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}
