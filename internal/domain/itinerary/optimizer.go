package itinerary

import (
	"sort"

	"github.com/tripscheduler/tripscheduler/internal/timewindow"
	"github.com/tripscheduler/tripscheduler/internal/types"
)

// Optimize reorders each day's already-chosen visits by ascending
// (latitude, longitude) for geographic coherence, then replays the
// scheduler's time-advance rule to recompute start and end times in the
// new order. Membership, durations, and fees are untouched.
//
// The replay deliberately does not re-check closing times or the
// day-end cutoff: the original selection is trusted, and a reordering
// that pushes a visit past its window is accepted in exchange for
// shorter travel. The itinerary is modified in place and returned for
// chaining.
func Optimize(it *types.Itinerary) *types.Itinerary {
	for d := range it.Days {
		day := &it.Days[d]

		sort.SliceStable(day.Attractions, func(i, j int) bool {
			a, b := day.Attractions[i], day.Attractions[j]
			if a.Latitude != b.Latitude {
				return a.Latitude < b.Latitude
			}
			return a.Longitude < b.Longitude
		})

		currentTime := dayStartMinutes
		for v := range day.Attractions {
			visit := &day.Attractions[v]

			open, _ := timewindow.ParseOpeningHours(visit.OpeningHours)
			if openTime := timewindow.ToMinutes(open); currentTime < openTime {
				currentTime = openTime
			}

			visit.StartTime = timewindow.ToClock(currentTime)
			currentTime += visit.Duration
			visit.EndTime = timewindow.ToClock(currentTime)

			currentTime += travelBufferMinutes
		}
	}
	return it
}
