package attractions

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/tripscheduler/tripscheduler/internal/types"
)

// Service exposes catalog reads to the rest of the application.
type Service interface {
	GetAttractions(ctx context.Context, city string, filters types.AttractionFilters) ([]types.Attraction, error)
	ListCities(ctx context.Context) ([]string, error)
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
	cache  *cache.Cache
}

func NewService(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
		cache:  cache.New(5*time.Minute, 10*time.Minute),
	}
}

// GetAttractions returns a city's catalog with the given filters
// applied, serving repeated reads from a short-lived cache. The catalog
// is read-only for the duration of one generation call, so a stale
// entry only delays new catalog rows, never corrupts a run.
func (s *ServiceImpl) GetAttractions(ctx context.Context, city string, filters types.AttractionFilters) ([]types.Attraction, error) {
	ctx, span := otel.Tracer("AttractionService").Start(ctx, "GetAttractions")
	defer span.End()

	l := s.logger.With(slog.String("method", "GetAttractions"), slog.String("city", city))

	cacheKey := fmt.Sprintf("attractions:%s:%t:%t:%t", city, filters.AvoidCrowd, filters.IndoorOnly, filters.PhotographyOnly)
	span.SetAttributes(attribute.String("cache.key", cacheKey))

	if cached, found := s.cache.Get(cacheKey); found {
		if attractions, ok := cached.([]types.Attraction); ok {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return attractions, nil
		}
	}

	attractions, err := s.repo.GetByCity(ctx, city, filters)
	if err != nil {
		l.ErrorContext(ctx, "failed to fetch attractions", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository operation failed")
		return nil, fmt.Errorf("failed to fetch attractions: %w", err)
	}

	s.cache.Set(cacheKey, attractions, cache.DefaultExpiration)

	l.InfoContext(ctx, "fetched attractions", slog.Int("count", len(attractions)))
	span.SetAttributes(attribute.Int("catalog.count", len(attractions)))
	return attractions, nil
}

// ListCities returns the cities the catalog covers.
func (s *ServiceImpl) ListCities(ctx context.Context) ([]string, error) {
	ctx, span := otel.Tracer("AttractionService").Start(ctx, "ListCities")
	defer span.End()

	cities, err := s.repo.ListCities(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list cities", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository operation failed")
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	return cities, nil
}
