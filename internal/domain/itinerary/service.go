package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/tripscheduler/tripscheduler/internal/domain/attractions"
	"github.com/tripscheduler/tripscheduler/internal/suitability"
	"github.com/tripscheduler/tripscheduler/internal/types"
)

const dateLayout = "2006-01-02"

// ErrPersistence marks a persistence failure after a successful
// generation. The computed itinerary is still returned alongside it.
var ErrPersistence = errors.New("itinerary persistence failed")

// GenerateParams is one itinerary request.
type GenerateParams struct {
	City                  string
	ArrivalDate           string
	DepartureDate         string
	NumPersons            int
	Nationality           string
	WeatherForecast       []types.DayForecast
	Filters               types.AttractionFilters
	SelectedAttractionIDs []uuid.UUID
	Optimize              bool
}

// Service builds, optionally optimizes, and persists itineraries.
type Service interface {
	Generate(ctx context.Context, params GenerateParams) (*types.Itinerary, error)
}

type ServiceImpl struct {
	logger  *slog.Logger
	catalog attractions.Service
	model   *suitability.Model
	repo    Repository
}

// NewService wires the generator. The suitability model is injected so
// tests and parallel deployments can hold independently trained models.
func NewService(catalog attractions.Service, model *suitability.Model, repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:  logger,
		catalog: catalog,
		model:   model,
		repo:    repo,
	}
}

// Generate builds a multi-day itinerary. Days are processed in
// chronological order with a single accumulating set of used attraction
// ids, so no attraction appears twice across the trip. A day with no
// schedulable attraction is omitted from the result, which is valid
// output rather than an error.
//
// On persistence failure the computed itinerary is returned together
// with an error wrapping ErrPersistence; construction and persistence
// are deliberately decoupled.
func (s *ServiceImpl) Generate(ctx context.Context, params GenerateParams) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "Generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("itinerary.city", params.City),
		attribute.String("itinerary.arrival", params.ArrivalDate),
		attribute.String("itinerary.departure", params.DepartureDate),
	)

	l := s.logger.With(slog.String("method", "Generate"), slog.String("city", params.City))

	startDate, err := time.Parse(dateLayout, params.ArrivalDate)
	if err != nil {
		return nil, fmt.Errorf("invalid arrival date %q: %w", params.ArrivalDate, types.ErrBadRequest)
	}
	endDate, err := time.Parse(dateLayout, params.DepartureDate)
	if err != nil {
		return nil, fmt.Errorf("invalid departure date %q: %w", params.DepartureDate, types.ErrBadRequest)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("departure %s precedes arrival %s: %w", params.DepartureDate, params.ArrivalDate, types.ErrBadRequest)
	}
	numDays := int(endDate.Sub(startDate).Hours()/24) + 1

	if params.NumPersons <= 0 {
		params.NumPersons = 1
	}
	if params.Nationality == "" {
		params.Nationality = types.FeeTierIndian
	}

	catalog, err := s.catalog.GetAttractions(ctx, params.City, params.Filters)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "catalog fetch failed")
		return nil, err
	}
	if len(params.SelectedAttractionIDs) > 0 {
		catalog = restrictToSelection(catalog, params.SelectedAttractionIDs)
	}

	weatherByDay, err := forecastByDay(params.WeatherForecast, startDate, numDays)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid weather forecast")
		return nil, err
	}

	prefs := types.PreferencesFromFilters(params.Filters)

	it := &types.Itinerary{
		ID:          uuid.New(),
		City:        params.City,
		StartDate:   params.ArrivalDate,
		EndDate:     params.DepartureDate,
		NumDays:     numDays,
		NumPersons:  params.NumPersons,
		Nationality: params.Nationality,
		CreatedAt:   time.Now().UTC(),
	}

	usedIDs := make(map[uuid.UUID]struct{})
	for day := 0; day < numDays; day++ {
		date := startDate.AddDate(0, 0, day).Format(dateLayout)
		dayWeather, ok := weatherByDay[date]
		if !ok {
			dayWeather = suitability.ConditionSunny
		}

		visits, err := scheduleDay(ctx, s.model, catalog, scheduleParams{
			weather:     dayWeather,
			prefs:       prefs,
			nationality: params.Nationality,
			numPersons:  params.NumPersons,
			usedIDs:     usedIDs,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "day scheduling failed")
			return nil, fmt.Errorf("scheduling day %s: %w", date, err)
		}
		if len(visits) == 0 {
			continue
		}

		plan := types.DayPlan{
			Date:        date,
			Weather:     string(dayWeather),
			Attractions: visits,
		}
		for _, v := range visits {
			usedIDs[v.AttractionID] = struct{}{}
			plan.TotalDuration += v.Duration
			plan.TotalCost += v.EntryFee
		}
		it.Days = append(it.Days, plan)
	}

	for _, day := range it.Days {
		it.TotalCost += day.TotalCost
		it.TotalAttractions += len(day.Attractions)
	}

	if params.Optimize {
		Optimize(it)
	}

	l.InfoContext(ctx, "itinerary generated",
		slog.Int("days", len(it.Days)),
		slog.Int("attractions", it.TotalAttractions),
		slog.Float64("total_cost", it.TotalCost),
	)
	span.SetAttributes(
		attribute.Int("itinerary.days", len(it.Days)),
		attribute.Int("itinerary.attractions", it.TotalAttractions),
	)

	if err := s.repo.SaveItinerary(ctx, it); err != nil {
		l.ErrorContext(ctx, "failed to persist itinerary", slog.Any("error", err))
		span.RecordError(err)
		return it, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	return it, nil
}

// forecastByDay maps forecast entries onto trip dates by index,
// validating every condition against the model vocabulary. An unseen
// label aborts generation rather than silently defaulting.
func forecastByDay(forecast []types.DayForecast, startDate time.Time, numDays int) (map[string]suitability.Condition, error) {
	byDay := make(map[string]suitability.Condition, len(forecast))
	for i, f := range forecast {
		if i >= numDays {
			break
		}
		cond := suitability.ConditionSunny
		if f.Condition != "" {
			var err error
			cond, err = suitability.ParseCondition(f.Condition)
			if err != nil {
				return nil, fmt.Errorf("forecast day %d: %w", i, err)
			}
		}
		byDay[startDate.AddDate(0, 0, i).Format(dateLayout)] = cond
	}
	return byDay, nil
}

func restrictToSelection(catalog []types.Attraction, ids []uuid.UUID) []types.Attraction {
	selected := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		selected[id] = struct{}{}
	}
	out := make([]types.Attraction, 0, len(ids))
	for _, a := range catalog {
		if _, ok := selected[a.ID]; ok {
			out = append(out, a)
		}
	}
	return out
}
