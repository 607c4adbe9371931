package itinerary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/tripscheduler/tripscheduler/internal/types"
)

var _ Repository = (*RepositoryImpl)(nil)

// Repository persists generated itineraries. Each itinerary is written
// once as a single document keyed by its generated identifier; the read
// path lives elsewhere.
type Repository interface {
	SaveItinerary(ctx context.Context, it *types.Itinerary) error
}

// Execer is the subset of pgxpool.Pool the repository needs; also
// satisfied by pgxmock pools in tests.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type RepositoryImpl struct {
	logger *slog.Logger
	pgpool Execer
}

func NewRepository(pgpool Execer, logger *slog.Logger) *RepositoryImpl {
	return &RepositoryImpl{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *RepositoryImpl) SaveItinerary(ctx context.Context, it *types.Itinerary) error {
	ctx, span := otel.Tracer("ItineraryRepository").Start(ctx, "SaveItinerary")
	defer span.End()
	span.SetAttributes(attribute.String("itinerary.id", it.ID.String()))

	document, err := json.Marshal(it)
	if err != nil {
		return fmt.Errorf("failed to marshal itinerary %s: %w", it.ID, err)
	}

	query := `
        INSERT INTO itineraries (
            id, city, start_date, end_date, num_persons, nationality, document
        ) VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	if _, err := r.pgpool.Exec(ctx, query,
		it.ID,
		it.City,
		it.StartDate,
		it.EndDate,
		it.NumPersons,
		it.Nationality,
		document,
	); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "itinerary insert failed")
		return fmt.Errorf("failed to insert itinerary %s: %w", it.ID, err)
	}

	return nil
}
