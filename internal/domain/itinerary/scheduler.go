package itinerary

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tripscheduler/tripscheduler/internal/suitability"
	"github.com/tripscheduler/tripscheduler/internal/timewindow"
	"github.com/tripscheduler/tripscheduler/internal/types"
)

const (
	// dayStartMinutes is when a day's first visit may begin.
	dayStartMinutes = 540
	// dayEndMinutes is the hard cutoff: no visit may end after 18:00.
	dayEndMinutes = 1080
	// travelBufferMinutes is the fixed transit gap between consecutive
	// visits.
	travelBufferMinutes = 30
	// crowdPenalty halves the score of crowd-tagged attractions for
	// travelers avoiding crowds.
	crowdPenalty = 0.5
)

// scorer is the suitability contract the scheduler needs; satisfied by
// *suitability.Model.
type scorer interface {
	Score(cond suitability.Condition, hour int, prefs types.Preferences) (float64, error)
}

// scheduleParams carries the per-day context for one scheduling call.
// usedIDs is the caller's accumulating cross-day state, passed in
// explicitly so the scheduler itself stays pure.
type scheduleParams struct {
	weather     suitability.Condition
	prefs       types.Preferences
	nationality string
	numPersons  int
	usedIDs     map[uuid.UUID]struct{}
}

type scoredAttraction struct {
	attraction types.Attraction
	score      float64
}

// scheduleDay selects and time-slots attractions for a single calendar
// day. Candidates are narrowed to indoor attractions on wet days,
// scored concurrently, stably sorted by score, and packed greedily from
// 09:00 with a 30-minute travel buffer. A candidate that does not fit
// its own window or the day-end cutoff is skipped without consuming
// time, leaving it eligible for a later day.
func scheduleDay(ctx context.Context, model scorer, candidates []types.Attraction, p scheduleParams) ([]types.ScheduledVisit, error) {
	eligible := make([]types.Attraction, 0, len(candidates))
	for _, a := range candidates {
		if _, used := p.usedIDs[a.ID]; used {
			continue
		}
		if p.weather.IsWet() && !a.IsIndoor() {
			continue
		}
		eligible = append(eligible, a)
	}

	// Each score call is pure given its inputs, so candidates are
	// scored concurrently. Results land by index to keep catalog order
	// for the stable tiebreak below.
	scored := make([]scoredAttraction, len(eligible))
	g, gctx := errgroup.WithContext(ctx)
	for i, a := range eligible {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			open, _ := timewindow.ParseOpeningHours(a.OpeningHours)
			hourOfDay := timewindow.ToMinutes(open) / 60

			score, err := model.Score(p.weather, hourOfDay, p.prefs)
			if err != nil {
				return fmt.Errorf("scoring attraction %q: %w", a.Name, err)
			}
			if a.HasTag("crowded") && !p.prefs.Crowded {
				score *= crowdPenalty
			}
			scored[i] = scoredAttraction{attraction: a, score: score}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	var visits []types.ScheduledVisit
	currentTime := dayStartMinutes
	for _, sc := range scored {
		a := sc.attraction
		open, closeAt := timewindow.ParseOpeningHours(a.OpeningHours)
		openTime := timewindow.ToMinutes(open)
		closeTime := timewindow.ToMinutes(closeAt)

		duration := a.AvgVisitDuration
		if duration <= 0 {
			duration = 60
		}

		if currentTime < openTime {
			currentTime = openTime
		}
		// A visit running past closing or past the day-end cutoff is
		// dropped, never clamped; the visit duration is not consumed so
		// the attraction stays available for another day.
		if currentTime+duration > closeTime || currentTime+duration > dayEndMinutes {
			continue
		}
		start := currentTime

		visits = append(visits, types.ScheduledVisit{
			AttractionID:     a.ID,
			Name:             a.Name,
			Category:         a.Category,
			StartTime:        timewindow.ToClock(start),
			EndTime:          timewindow.ToClock(start + duration),
			Duration:         duration,
			EntryFee:         entryFeeFor(a, p.nationality, p.numPersons),
			SuitabilityScore: sc.score,
			Latitude:         a.Latitude,
			Longitude:        a.Longitude,
			Address:          a.Address,
			OpeningHours:     a.OpeningHours,
			Image:            firstImage(a.Images),
			Description:      a.Description,
		})

		currentTime = start + duration + travelBufferMinutes
		if currentTime >= dayEndMinutes {
			break
		}
	}

	return visits, nil
}

// entryFeeFor resolves the fee tier for a nationality and multiplies by
// the party size. The lookup is case-insensitive and any nationality
// other than indian pays the foreigner tier.
func entryFeeFor(a types.Attraction, nationality string, numPersons int) float64 {
	tier := types.FeeTierForeigner
	if strings.EqualFold(nationality, types.FeeTierIndian) {
		tier = types.FeeTierIndian
	}
	return a.EntryFee[tier] * float64(numPersons)
}

func firstImage(images []string) string {
	if len(images) == 0 {
		return ""
	}
	return images[0]
}
