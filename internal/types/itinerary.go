package types

import (
	"time"

	"github.com/google/uuid"
)

// ScheduledVisit is one attraction slotted into a day. Start and end are
// minute-of-day values rendered as HH:MM. EntryFee is already multiplied
// by the traveling party size.
type ScheduledVisit struct {
	AttractionID     uuid.UUID `json:"attraction_id"`
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	StartTime        string    `json:"start_time"`
	EndTime          string    `json:"end_time"`
	Duration         int       `json:"duration"`
	EntryFee         float64   `json:"entry_fee"`
	SuitabilityScore float64   `json:"suitability_score"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	Address          string    `json:"address,omitempty"`
	OpeningHours     string    `json:"opening_hours,omitempty"`
	Image            string    `json:"image,omitempty"`
	Description      string    `json:"description,omitempty"`
}

// DayPlan is the ordered set of visits for one calendar day.
type DayPlan struct {
	Date          string           `json:"date"`
	Weather       string           `json:"weather"`
	Attractions   []ScheduledVisit `json:"attractions"`
	TotalDuration int              `json:"total_duration"`
	TotalCost     float64          `json:"total_cost"`
}

// Itinerary is the complete multi-day schedule produced for one request.
// It is immutable after generation except for the optional optimizer
// pass, which rewrites visit start/end times only.
type Itinerary struct {
	ID               uuid.UUID `json:"id"`
	City             string    `json:"city"`
	StartDate        string    `json:"start_date"`
	EndDate          string    `json:"end_date"`
	NumDays          int       `json:"num_days"`
	NumPersons       int       `json:"num_persons"`
	Nationality      string    `json:"nationality"`
	Days             []DayPlan `json:"days"`
	TotalCost        float64   `json:"total_cost"`
	TotalAttractions int       `json:"total_attractions"`
	CreatedAt        time.Time `json:"created_at,omitempty"`
}

// DayForecast is one day of weather input, index-aligned with the trip
// days. Condition is matched against the model vocabulary before use.
type DayForecast struct {
	Date      string  `json:"date,omitempty"`
	Condition string  `json:"condition"`
	TempC     float64 `json:"temp_c,omitempty"`
}
