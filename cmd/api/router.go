package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/tripscheduler/tripscheduler/pkg/middleware"
)

// SetupRouter configures all routes and returns the HTTP handler.
func SetupRouter(deps *Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Logging(deps.Logger))
	r.Use(middleware.Metrics)

	var limiter *rate.Limiter
	if deps.Config.Server.RateLimitPerSecond > 0 && deps.Config.Server.RateLimitBurst > 0 {
		limiter = rate.NewLimiter(
			rate.Limit(float64(deps.Config.Server.RateLimitPerSecond)),
			deps.Config.Server.RateLimitBurst,
		)
	}
	r.Use(middleware.RateLimit(limiter))

	r.Route("/api", func(r chi.Router) {
		r.Post("/itineraries", deps.ItineraryHandler.GenerateItinerary)
		r.Get("/attractions/{city}", deps.ItineraryHandler.GetAttractions)
		r.Get("/cities", deps.ItineraryHandler.ListCities)
		r.Get("/weather", forecastHandler(deps))
	})

	r.Get("/healthz", healthHandler(deps))
	r.Handle("/metrics", promhttp.Handler())

	// Enable CORS for browser clients (local frontend).
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"http://localhost:3000"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
	})

	return corsHandler.Handler(r)
}

// forecastHandler proxies the weather provider for the frontend. The
// itinerary endpoint takes the forecast in its request body, so this
// route exists only so clients can show and confirm it first.
func forecastHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		city := q.Get("city")
		if city == "" {
			http.Error(w, "city is required", http.StatusBadRequest)
			return
		}
		from, err := time.Parse("2006-01-02", q.Get("arrival"))
		if err != nil {
			http.Error(w, "invalid arrival date", http.StatusBadRequest)
			return
		}
		to, err := time.Parse("2006-01-02", q.Get("departure"))
		if err != nil {
			http.Error(w, "invalid departure date", http.StatusBadRequest)
			return
		}

		forecast, err := deps.WeatherProvider.Forecast(r.Context(), city, from, to)
		if err != nil {
			deps.Logger.ErrorContext(r.Context(), "forecast fetch failed", "error", err)
			http.Error(w, "weather provider error", http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"forecast": forecast})
	}
}

func healthHandler(deps *Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.DB.Health(r.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
