package itinerary

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripscheduler/tripscheduler/internal/types"
)

func TestOptimizeReordersByLocation(t *testing.T) {
	north := types.ScheduledVisit{
		AttractionID: uuid.New(), Name: "North Fort",
		StartTime: "09:00", EndTime: "10:00", Duration: 60,
		Latitude: 27.1, Longitude: 75.8, OpeningHours: "09:00–18:00",
	}
	south := types.ScheduledVisit{
		AttractionID: uuid.New(), Name: "South Palace",
		StartTime: "10:30", EndTime: "11:30", Duration: 60,
		Latitude: 26.5, Longitude: 75.8, OpeningHours: "09:00–18:00",
	}
	west := types.ScheduledVisit{
		AttractionID: uuid.New(), Name: "West Garden",
		StartTime: "12:00", EndTime: "12:45", Duration: 45,
		Latitude: 26.5, Longitude: 75.2, OpeningHours: "09:00–18:00",
	}

	it := &types.Itinerary{
		Days: []types.DayPlan{{
			Date:        "2026-10-01",
			Weather:     "sunny",
			Attractions: []types.ScheduledVisit{north, south, west},
			TotalCost:   250,
		}},
		TotalCost: 250,
	}

	got := Optimize(it)
	require.Same(t, it, got)

	day := got.Days[0]
	require.Len(t, day.Attractions, 3)

	// Ascending (latitude, longitude): West Garden shares South
	// Palace's latitude but sits further west.
	assert.Equal(t, "West Garden", day.Attractions[0].Name)
	assert.Equal(t, "South Palace", day.Attractions[1].Name)
	assert.Equal(t, "North Fort", day.Attractions[2].Name)

	// Times replayed in the new order with the 30-minute buffer.
	assert.Equal(t, "09:00", day.Attractions[0].StartTime)
	assert.Equal(t, "09:45", day.Attractions[0].EndTime)
	assert.Equal(t, "10:15", day.Attractions[1].StartTime)
	assert.Equal(t, "11:15", day.Attractions[1].EndTime)
	assert.Equal(t, "11:45", day.Attractions[2].StartTime)
	assert.Equal(t, "12:45", day.Attractions[2].EndTime)

	// Membership and totals are untouched.
	assert.Equal(t, 250.0, day.TotalCost)
	assert.Equal(t, 250.0, got.TotalCost)
}

func TestOptimizeRespectsOpeningTimeInReplay(t *testing.T) {
	early := types.ScheduledVisit{
		AttractionID: uuid.New(), Name: "Early",
		Duration: 60, Latitude: 26.9, Longitude: 75.9, OpeningHours: "09:00–18:00",
	}
	lateOpener := types.ScheduledVisit{
		AttractionID: uuid.New(), Name: "Late Opener",
		Duration: 60, Latitude: 26.1, Longitude: 75.1, OpeningHours: "11:00–18:00",
	}

	it := &types.Itinerary{
		Days: []types.DayPlan{{Attractions: []types.ScheduledVisit{early, lateOpener}}},
	}

	Optimize(it)

	day := it.Days[0]
	// Late Opener sorts first on latitude but cannot start before 11:00.
	assert.Equal(t, "Late Opener", day.Attractions[0].Name)
	assert.Equal(t, "11:00", day.Attractions[0].StartTime)
	assert.Equal(t, "12:00", day.Attractions[0].EndTime)
	assert.Equal(t, "12:30", day.Attractions[1].StartTime)
}

func TestOptimizeEmptyItinerary(t *testing.T) {
	it := &types.Itinerary{}
	assert.Same(t, it, Optimize(it))
	assert.Empty(t, it.Days)
}
