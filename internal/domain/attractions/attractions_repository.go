package attractions

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/tripscheduler/tripscheduler/internal/types"
)

var _ Repository = (*RepositoryImpl)(nil)

// Repository provides read-only access to the per-city attraction
// catalog.
type Repository interface {
	GetByCity(ctx context.Context, city string, filters types.AttractionFilters) ([]types.Attraction, error)
	ListCities(ctx context.Context) ([]string, error)
}

// Querier is the subset of pgxpool.Pool the repository needs. It is
// also satisfied by pgxmock pools in tests.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type RepositoryImpl struct {
	logger *slog.Logger
	pgpool Querier
}

func NewRepository(pgpool Querier, logger *slog.Logger) *RepositoryImpl {
	return &RepositoryImpl{
		logger: logger,
		pgpool: pgpool,
	}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// GetByCity returns the catalog entries for a city in stable catalog
// order, narrowed by the given filter predicates. A city with no catalog
// at all yields types.ErrNotFound; a known city filtered down to zero
// rows yields an empty slice.
func (r *RepositoryImpl) GetByCity(ctx context.Context, city string, filters types.AttractionFilters) ([]types.Attraction, error) {
	ctx, span := otel.Tracer("AttractionRepository").Start(ctx, "GetByCity")
	defer span.End()
	span.SetAttributes(attribute.String("catalog.city", city))

	city = strings.ToLower(strings.TrimSpace(city))

	var exists bool
	if err := r.pgpool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM attractions WHERE city = $1)", city).Scan(&exists); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "city existence check failed")
		return nil, fmt.Errorf("failed to check city %q: %w", city, err)
	}
	if !exists {
		return nil, fmt.Errorf("no attraction data for city %q: %w", city, types.ErrNotFound)
	}

	builder := psql.Select(
		"id", "city", "name", "category", "indoor_outdoor", "tags",
		"opening_hours", "avg_visit_duration", "entry_fee",
		"latitude", "longitude", "address", "description", "images",
	).
		From("attractions").
		Where(squirrel.Eq{"city": city}).
		OrderBy("seq")

	if filters.AvoidCrowd {
		builder = builder.Where(squirrel.Expr("NOT (tags @> ARRAY['crowded']::text[])"))
	}
	if filters.IndoorOnly {
		builder = builder.Where(squirrel.Eq{"indoor_outdoor": types.SettingIndoor})
	}
	if filters.PhotographyOnly {
		builder = builder.Where(squirrel.Expr("tags @> ARRAY['photography']::text[]"))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build attractions query: %w", err)
	}

	rows, err := r.pgpool.Query(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "attractions query failed")
		return nil, fmt.Errorf("failed to query attractions for city %q: %w", city, err)
	}
	defer rows.Close()

	var out []types.Attraction
	for rows.Next() {
		var a types.Attraction
		if err := rows.Scan(
			&a.ID, &a.City, &a.Name, &a.Category, &a.IndoorOutdoor, &a.Tags,
			&a.OpeningHours, &a.AvgVisitDuration, &a.EntryFee,
			&a.Latitude, &a.Longitude, &a.Address, &a.Description, &a.Images,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attraction row: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attraction rows: %w", err)
	}

	span.SetAttributes(attribute.Int("catalog.count", len(out)))
	return out, nil
}

// ListCities returns the distinct cities the catalog covers.
func (r *RepositoryImpl) ListCities(ctx context.Context) ([]string, error) {
	ctx, span := otel.Tracer("AttractionRepository").Start(ctx, "ListCities")
	defer span.End()

	rows, err := r.pgpool.Query(ctx, "SELECT DISTINCT city FROM attractions ORDER BY city")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "cities query failed")
		return nil, fmt.Errorf("failed to query cities: %w", err)
	}
	defer rows.Close()

	var cities []string
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, fmt.Errorf("failed to scan city row: %w", err)
		}
		cities = append(cities, city)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating city rows: %w", err)
	}

	return cities, nil
}
