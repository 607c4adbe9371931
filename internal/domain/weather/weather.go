// Package weather adapts a third-party forecast API onto the condition
// vocabulary the itinerary engine understands. It is an external
// collaborator of the core: the generator consumes plain forecast
// slices and never talks to this package directly.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/tripscheduler/tripscheduler/internal/suitability"
	"github.com/tripscheduler/tripscheduler/internal/types"
)

const dateLayout = "2006-01-02"

// Provider fetches a day-by-day forecast for a city over a date range.
type Provider interface {
	Forecast(ctx context.Context, city string, from, to time.Time) ([]types.DayForecast, error)
}

// openWeatherResponse is the subset of the OpenWeatherMap 5-day
// forecast payload the adapter reads.
type openWeatherResponse struct {
	List []struct {
		DtTxt string `json:"dt_txt"`
		Main  struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Main string `json:"main"`
		} `json:"weather"`
	} `json:"list"`
}

var _ Provider = (*OpenWeatherClient)(nil)

// OpenWeatherClient is a Provider backed by the OpenWeatherMap 5-day /
// 3-hour forecast endpoint, with a short-lived response cache.
type OpenWeatherClient struct {
	logger  *slog.Logger
	client  *http.Client
	cache   *cache.Cache
	baseURL string
	apiKey  string
}

func NewOpenWeatherClient(baseURL, apiKey string, logger *slog.Logger) *OpenWeatherClient {
	return &OpenWeatherClient{
		logger:  logger,
		client:  &http.Client{Timeout: 10 * time.Second},
		cache:   cache.New(15*time.Minute, 30*time.Minute),
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// Forecast returns one entry per forecast day inside [from, to],
// chronologically. Each day's condition is the most frequent of its
// 3-hour slots, mapped into the model vocabulary, and the temperature
// is the day's mean.
func (c *OpenWeatherClient) Forecast(ctx context.Context, city string, from, to time.Time) ([]types.DayForecast, error) {
	cacheKey := fmt.Sprintf("forecast:%s:%s:%s", city, from.Format(dateLayout), to.Format(dateLayout))
	if cached, found := c.cache.Get(cacheKey); found {
		if forecast, ok := cached.([]types.DayForecast); ok {
			return forecast, nil
		}
	}

	endpoint := fmt.Sprintf("%s/data/2.5/forecast?q=%s&appid=%s&units=metric",
		c.baseURL, url.QueryEscape(city), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build forecast request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forecast request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast API returned status %d", resp.StatusCode)
	}

	var payload openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode forecast response: %w", err)
	}

	type dayAgg struct {
		temps  []float64
		counts map[string]int
	}
	byDay := map[string]*dayAgg{}
	var order []string

	for _, entry := range payload.List {
		dt, err := time.Parse("2006-01-02 15:04:05", entry.DtTxt)
		if err != nil {
			continue
		}
		if dt.Before(from) || dt.After(to.AddDate(0, 0, 1)) {
			continue
		}
		day := dt.Format(dateLayout)
		agg, ok := byDay[day]
		if !ok {
			agg = &dayAgg{counts: map[string]int{}}
			byDay[day] = agg
			order = append(order, day)
		}
		agg.temps = append(agg.temps, entry.Main.Temp)
		if len(entry.Weather) > 0 {
			agg.counts[entry.Weather[0].Main]++
		}
	}

	forecast := make([]types.DayForecast, 0, len(order))
	for _, day := range order {
		agg := byDay[day]

		var dominant string
		var best int
		for label, n := range agg.counts {
			if n > best || (n == best && label < dominant) {
				dominant, best = label, n
			}
		}

		var sum float64
		for _, t := range agg.temps {
			sum += t
		}
		var avg float64
		if len(agg.temps) > 0 {
			avg = sum / float64(len(agg.temps))
		}

		forecast = append(forecast, types.DayForecast{
			Date:      day,
			Condition: string(mapCondition(dominant)),
			TempC:     avg,
		})
	}

	c.cache.Set(cacheKey, forecast, cache.DefaultExpiration)
	c.logger.InfoContext(ctx, "forecast fetched",
		slog.String("city", city), slog.Int("days", len(forecast)))
	return forecast, nil
}

// mapCondition folds an OpenWeatherMap condition group into the model's
// closed vocabulary. Labels with no clear mapping count as sunny, which
// is also the engine's own default for missing forecast days.
func mapCondition(label string) suitability.Condition {
	switch strings.ToLower(label) {
	case "rain", "drizzle", "thunderstorm":
		return suitability.ConditionRainy
	case "snow":
		return suitability.ConditionSnowy
	case "clouds", "mist", "fog", "haze":
		return suitability.ConditionCloudy
	case "squall", "tornado", "wind":
		return suitability.ConditionWindy
	default:
		return suitability.ConditionSunny
	}
}
