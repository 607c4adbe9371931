package itinerary

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tripscheduler/tripscheduler/internal/domain/attractions"
	"github.com/tripscheduler/tripscheduler/internal/types"
	"github.com/tripscheduler/tripscheduler/pkg/observability"
)

// Handler exposes itinerary generation and catalog reads over HTTP.
type Handler struct {
	svc      Service
	catalog  attractions.Service
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandler(svc Service, catalog attractions.Service, logger *slog.Logger) *Handler {
	return &Handler{
		svc:      svc,
		catalog:  catalog,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

type generateRequest struct {
	City                string              `json:"city" validate:"required"`
	ArrivalDate         string              `json:"arrival_date" validate:"required,datetime=2006-01-02"`
	DepartureDate       string              `json:"departure_date" validate:"required,datetime=2006-01-02"`
	NumPersons          int                 `json:"num_persons" validate:"omitempty,gte=1,lte=50"`
	Nationality         string              `json:"nationality"`
	WeatherForecast     []types.DayForecast `json:"weather_forecast"`
	Filters             types.AttractionFilters `json:"filters"`
	SelectedAttractions []string            `json:"selected_attractions"`
	Optimize            bool                `json:"optimize"`
}

type generateResponse struct {
	Itinerary *types.Itinerary `json:"itinerary"`
	Persisted bool             `json:"persisted"`
	Warning   string           `json:"warning,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// GenerateItinerary handles POST /api/itineraries.
func (h *Handler) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	selected := make([]uuid.UUID, 0, len(req.SelectedAttractions))
	for _, raw := range req.SelectedAttractions {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid attraction id: "+raw)
			return
		}
		selected = append(selected, id)
	}

	it, err := h.svc.Generate(r.Context(), GenerateParams{
		City:                  req.City,
		ArrivalDate:           req.ArrivalDate,
		DepartureDate:         req.DepartureDate,
		NumPersons:            req.NumPersons,
		Nationality:           req.Nationality,
		WeatherForecast:       req.WeatherForecast,
		Filters:               req.Filters,
		SelectedAttractionIDs: selected,
		Optimize:              req.Optimize,
	})

	switch {
	case err == nil:
		observability.ItinerariesGenerated.WithLabelValues(req.City).Inc()
		h.writeJSON(w, http.StatusCreated, generateResponse{Itinerary: it, Persisted: true})
	case errors.Is(err, ErrPersistence) && it != nil:
		observability.ItinerariesGenerated.WithLabelValues(req.City).Inc()
		// The itinerary was computed; only the write failed.
		h.logger.WarnContext(r.Context(), "itinerary computed but not persisted", slog.Any("error", err))
		h.writeJSON(w, http.StatusCreated, generateResponse{
			Itinerary: it,
			Persisted: false,
			Warning:   "itinerary could not be persisted",
		})
	case errors.Is(err, types.ErrNotFound):
		h.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, types.ErrBadRequest), errors.Is(err, types.ErrInvalidFeature):
		h.writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "itinerary generation failed", slog.Any("error", err))
		h.writeError(w, http.StatusInternalServerError, "itinerary generation failed")
	}
}

// GetAttractions handles GET /api/attractions/{city}.
func (h *Handler) GetAttractions(w http.ResponseWriter, r *http.Request) {
	city := chi.URLParam(r, "city")

	q := r.URL.Query()
	filters := types.AttractionFilters{
		AvoidCrowd:      q.Get("avoid_crowd") == "true",
		IndoorOnly:      q.Get("indoor_only") == "true",
		PhotographyOnly: q.Get("photography_only") == "true",
	}

	catalog, err := h.catalog.GetAttractions(r.Context(), city, filters)
	switch {
	case err == nil:
		h.writeJSON(w, http.StatusOK, catalog)
	case errors.Is(err, types.ErrNotFound):
		h.writeError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "attractions fetch failed", slog.Any("error", err))
		h.writeError(w, http.StatusInternalServerError, "failed to fetch attractions")
	}
}

// ListCities handles GET /api/cities.
func (h *Handler) ListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.catalog.ListCities(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "cities fetch failed", slog.Any("error", err))
		h.writeError(w, http.StatusInternalServerError, "failed to list cities")
		return
	}
	h.writeJSON(w, http.StatusOK, cities)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}
